package upload

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/investordaily/blogd/internal/models"
	"github.com/investordaily/blogd/internal/pkg/response"
	"gorm.io/gorm"
)

// Handler exposes coordinated uploads and orphan bookkeeping.
type Handler struct {
	db          *gorm.DB
	coordinator *Coordinator
}

func NewHandler(db *gorm.DB, coordinator *Coordinator) *Handler {
	return &Handler{db: db, coordinator: coordinator}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/objects")

	g.POST("/upload", h.upload)
	g.GET("/orphans/list", h.listOrphans)
	g.GET("/orphans/count", h.countOrphans)
	g.POST("/orphans/cleanup", h.cleanupOrphans)
}

// upload POST /objects/upload?type=image|background
func (h *Handler) upload(c *gin.Context) {
	slot := slotForType(c.Query("type"))
	if slot == "" {
		response.BadRequest(c, "invalid upload type")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer file.Close()
	payload, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	name := buildFileName(fileHeader.Filename)
	contentType := detectContentType(fileHeader.Filename, payload, fileHeader.Header.Get("Content-Type"))

	url, err := h.coordinator.Upload(c.Request.Context(), slot, name, payload, contentType)
	if err != nil {
		if errors.Is(err, ErrUploadInFlight) {
			response.Conflict(c, err.Error())
			return
		}
		response.BadGateway(c, err.Error())
		return
	}

	if slot == "images" {
		_ = h.db.Create(&models.FileReferenceModel{
			FileURL:  url,
			FileName: name,
			Status:   "pending",
		}).Error
	}

	response.OK(c, gin.H{
		"url":  url,
		"name": name,
	})
}

// listOrphans GET /objects/orphans/list
func (h *Handler) listOrphans(c *gin.Context) {
	var refs []models.FileReferenceModel
	if err := h.db.Where("status = ?", "pending").
		Order("created_at DESC").Find(&refs).Error; err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]gin.H, 0, len(refs))
	for _, ref := range refs {
		items = append(items, gin.H{
			"id":       ref.ID,
			"fileName": ref.FileName,
			"fileUrl":  ref.FileURL,
			"created":  ref.CreatedAt,
		})
	}
	response.OK(c, items)
}

// countOrphans GET /objects/orphans/count
func (h *Handler) countOrphans(c *gin.Context) {
	var count int64
	if err := h.db.Model(&models.FileReferenceModel{}).Where("status = ?", "pending").Count(&count).Error; err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"count": count})
}

// cleanupOrphans POST /objects/orphans/cleanup?maxAgeMinutes=60
//
// Drops pending references older than the cutoff. The objects stay in the
// bucket; this only clears the bookkeeping so the orphan list stays useful.
func (h *Handler) cleanupOrphans(c *gin.Context) {
	maxAgeMinutes := 60
	if raw := strings.TrimSpace(c.Query("maxAgeMinutes")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			maxAgeMinutes = v
		}
	}

	cutoff := time.Now().Add(-time.Duration(maxAgeMinutes) * time.Minute)
	deleted, err := CleanupOrphans(h.db, cutoff)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": deleted})
}
