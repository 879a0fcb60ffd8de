package editor

import (
	"context"

	"github.com/investordaily/blogd/internal/models"
	"gorm.io/gorm"
)

// Store hands finished documents to the database. It owns the draft
// singleton policy: every write path that produces or consumes a draft clears
// the predecessors inside the same transaction, so the drafts table never
// transiently holds more than one visible row.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// SaveDraft replaces whatever draft exists with doc and returns the new id.
func (s *Store) SaveDraft(ctx context.Context, doc Document) (string, error) {
	d := models.DraftModel{
		Title:            doc.Title,
		LegacyContent:    doc.LegacyContent,
		HeroImageURL:     doc.HeroImageURL,
		HeroImageCaption: doc.HeroImageCaption,
		Blocks:           doc.Blocks,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearDrafts(tx); err != nil {
			return err
		}
		if err := tx.Create(&d).Error; err != nil {
			return err
		}
		return markReferenceActive(tx, doc.HeroImageURL)
	})
	if err != nil {
		return "", err
	}
	return d.ID, nil
}

// Publish inserts doc into the blogs collection and clears any draft in the
// same transaction.
func (s *Store) Publish(ctx context.Context, doc Document) (string, error) {
	b := models.BlogModel{
		Title:            doc.Title,
		LegacyContent:    doc.LegacyContent,
		HeroImageURL:     doc.HeroImageURL,
		HeroImageCaption: doc.HeroImageCaption,
		Blocks:           doc.Blocks,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&b).Error; err != nil {
			return err
		}
		if err := clearDrafts(tx); err != nil {
			return err
		}
		return markReferenceActive(tx, doc.HeroImageURL)
	})
	if err != nil {
		return "", err
	}
	return b.ID, nil
}

// Update overwrites the persisted blog id with doc.
func (s *Store) Update(ctx context.Context, id string, doc Document) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Select forces cleared fields through; the struct form keeps the
		// blocks serializer in play.
		res := tx.Model(&models.BlogModel{}).
			Where("id = ?", id).
			Select("title", "legacy_content", "hero_image_url", "hero_image_caption", "blocks").
			Updates(models.BlogModel{
				Title:            doc.Title,
				LegacyContent:    doc.LegacyContent,
				HeroImageURL:     doc.HeroImageURL,
				HeroImageCaption: doc.HeroImageCaption,
				Blocks:           doc.Blocks,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return markReferenceActive(tx, doc.HeroImageURL)
	})
}

// clearDrafts hard-deletes every draft row. Draft replacement would otherwise
// pile up soft-deleted predecessors.
func clearDrafts(tx *gorm.DB) error {
	return tx.Unscoped().Where("1 = 1").Delete(&models.DraftModel{}).Error
}

func markReferenceActive(tx *gorm.DB, heroURL string) error {
	if heroURL == "" {
		return nil
	}
	return tx.Model(&models.FileReferenceModel{}).
		Where("file_url = ?", heroURL).
		Update("status", "active").Error
}
