package models

// BackgroundModel is one uploaded site background image. The newest record
// (by creation time) is the active background.
type BackgroundModel struct {
	Base
	URL string `json:"url" gorm:"not null"`
}

func (BackgroundModel) TableName() string { return "backgrounds" }
