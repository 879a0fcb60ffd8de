package blog

import (
	"errors"

	"github.com/investordaily/blogd/internal/models"
	"gorm.io/gorm"
)

// Service handles blog read and delete paths. Writes go through the editor's
// composer and store.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns all blogs in insertion order.
func (s *Service) List() ([]models.BlogModel, error) {
	var blogs []models.BlogModel
	err := s.db.Order("created_at ASC").Find(&blogs).Error
	return blogs, err
}

// Count returns the number of blogs, so the client can distinguish its empty
// state from loading.
func (s *Service) Count() (int64, error) {
	var n int64
	err := s.db.Model(&models.BlogModel{}).Count(&n).Error
	return n, err
}

// GetByID fetches a single blog by ID. Returns (nil, nil) when absent.
func (s *Service) GetByID(id string) (*models.BlogModel, error) {
	var b models.BlogModel
	if err := s.db.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// Delete removes a blog. Returns gorm.ErrRecordNotFound when no row matched.
func (s *Service) Delete(id string) error {
	res := s.db.Where("id = ?", id).Delete(&models.BlogModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
