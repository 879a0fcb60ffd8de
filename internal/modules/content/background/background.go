package background

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/investordaily/blogd/internal/models"
	"github.com/investordaily/blogd/internal/pkg/response"
	"gorm.io/gorm"
)

// Service stores site background image records. The newest record wins; old
// ones are kept as history.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Latest returns the newest background, or (nil, nil) when none was ever set.
func (s *Service) Latest() (*models.BackgroundModel, error) {
	var bg models.BackgroundModel
	if err := s.db.Order("created_at DESC").Limit(1).First(&bg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bg, nil
}

// Set records a new background URL.
func (s *Service) Set(url string) (*models.BackgroundModel, error) {
	bg := models.BackgroundModel{URL: url}
	return &bg, s.db.Create(&bg).Error
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/backgrounds")
	g.GET("/latest", h.latest)
	g.POST("", h.set)
}

// latest GET /backgrounds/latest
func (h *Handler) latest(c *gin.Context) {
	bg, err := h.svc.Latest()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if bg == nil {
		response.OK(c, nil)
		return
	}
	response.OK(c, gin.H{"url": bg.URL, "timestamp": bg.CreatedAt})
}

type setBackgroundDTO struct {
	URL string `json:"url" binding:"required"`
}

// set POST /backgrounds
func (h *Handler) set(c *gin.Context) {
	var dto setBackgroundDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(dto.URL) == "" {
		response.BadRequest(c, "url is required")
		return
	}
	bg, err := h.svc.Set(dto.URL)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"id": bg.ID, "url": bg.URL, "timestamp": bg.CreatedAt})
}
