package draft

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/investordaily/blogd/internal/models"
	"github.com/investordaily/blogd/internal/modules/content/editor"
	"github.com/investordaily/blogd/internal/pkg/response"
	"gorm.io/gorm"
)

// documentDTO is the save-as-draft request body. Drafts accept anything; no
// field is required.
type documentDTO struct {
	Title            string           `json:"title"`
	LegacyContent    string           `json:"legacyContent"`
	HeroImageURL     string           `json:"heroImageUrl"`
	HeroImageCaption string           `json:"heroImageCaption"`
	Blocks           models.BlockList `json:"blocks"`
}

type draftResponse struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	LegacyContent    string           `json:"legacyContent,omitempty"`
	HeroImageURL     string           `json:"heroImageUrl"`
	HeroImageCaption string           `json:"heroImageCaption,omitempty"`
	Blocks           models.BlockList `json:"blocks"`
	Created          time.Time        `json:"created"`
	Modified         time.Time        `json:"modified"`
}

func toResponse(d *models.DraftModel) draftResponse {
	blocks := d.Blocks
	if blocks == nil {
		blocks = models.BlockList{}
	}
	return draftResponse{
		ID:               d.ID,
		Title:            d.Title,
		LegacyContent:    d.LegacyContent,
		HeroImageURL:     d.HeroImageURL,
		HeroImageCaption: d.HeroImageCaption,
		Blocks:           blocks,
		Created:          d.CreatedAt,
		Modified:         d.UpdatedAt,
	}
}

// Service reads the singleton draft. Writes (replace-on-save, clear-on-
// publish) live in the editor store so they stay transactional with the
// dependent insert.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Get returns the current draft, or (nil, nil) when none exists. Should the
// table ever hold more than one row, the newest wins.
func (s *Service) Get() (*models.DraftModel, error) {
	var d models.DraftModel
	if err := s.db.Order("updated_at DESC").First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// Discard removes every draft.
func (s *Service) Discard() error {
	return s.db.Unscoped().Where("1 = 1").Delete(&models.DraftModel{}).Error
}

type Handler struct {
	svc   *Service
	store *editor.Store
}

func NewHandler(svc *Service, store *editor.Store) *Handler {
	return &Handler{svc: svc, store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/drafts")
	g.GET("", h.get)
	g.POST("", h.save)
	g.DELETE("", h.discard)
}

// get GET /drafts returns the singleton draft, or null when none exists.
func (h *Handler) get(c *gin.Context) {
	d, err := h.svc.Get()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if d == nil {
		response.OK(c, nil)
		return
	}
	response.OK(c, toResponse(d))
}

// save POST /drafts replaces any existing draft. No validation applies.
func (h *Handler) save(c *gin.Context) {
	var dto documentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	composer := editor.New(h.store)
	if err := applyDTO(composer, &dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	id, err := composer.Submit(c.Request.Context(), editor.IntentDraft)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"id": id})
}

// discard DELETE /drafts
func (h *Handler) discard(c *gin.Context) {
	if err := h.svc.Discard(); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func applyDTO(composer *editor.Composer, dto *documentDTO) error {
	if err := composer.SetTitle(dto.Title); err != nil {
		return err
	}
	if err := composer.SetLegacyContent(dto.LegacyContent); err != nil {
		return err
	}
	if err := composer.SetHeroImage(dto.HeroImageURL); err != nil {
		return err
	}
	if err := composer.SetCaption(dto.HeroImageCaption); err != nil {
		return err
	}
	return composer.InitializeBlocks(dto.Blocks)
}
