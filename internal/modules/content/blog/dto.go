package blog

import (
	"time"

	"github.com/investordaily/blogd/internal/models"
	"github.com/investordaily/blogd/internal/modules/content/editor"
)

// documentDTO is the request body for publish and update. It mirrors the
// persisted record shape.
type documentDTO struct {
	Title            string           `json:"title"`
	LegacyContent    string           `json:"legacyContent"`
	HeroImageURL     string           `json:"heroImageUrl"`
	HeroImageCaption string           `json:"heroImageCaption"`
	Blocks           models.BlockList `json:"blocks"`
}

// apply drives the composer's mutation operations from the submitted body.
func (d *documentDTO) apply(c *editor.Composer) error {
	if err := c.SetTitle(d.Title); err != nil {
		return err
	}
	if err := c.SetLegacyContent(d.LegacyContent); err != nil {
		return err
	}
	if err := c.SetHeroImage(d.HeroImageURL); err != nil {
		return err
	}
	if err := c.SetCaption(d.HeroImageCaption); err != nil {
		return err
	}
	return c.InitializeBlocks(d.Blocks)
}

type blogResponse struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	LegacyContent    string           `json:"legacyContent,omitempty"`
	HeroImageURL     string           `json:"heroImageUrl"`
	HeroImageCaption string           `json:"heroImageCaption,omitempty"`
	Blocks           models.BlockList `json:"blocks"`
	Excerpt          string           `json:"excerpt"`
	Created          time.Time        `json:"created"`
	Modified         time.Time        `json:"modified"`
}

func toResponse(b *models.BlogModel) blogResponse {
	blocks := b.Blocks
	if blocks == nil {
		blocks = models.BlockList{}
	}
	return blogResponse{
		ID:               b.ID,
		Title:            b.Title,
		LegacyContent:    b.LegacyContent,
		HeroImageURL:     b.HeroImageURL,
		HeroImageCaption: b.HeroImageCaption,
		Blocks:           blocks,
		Excerpt:          b.Excerpt(),
		Created:          b.CreatedAt,
		Modified:         b.UpdatedAt,
	}
}
