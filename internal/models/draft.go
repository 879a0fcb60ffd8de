package models

// DraftModel is a not-yet-published document. It shares the blog record
// shape; the drafts table holds at most one row at a time, enforced by the
// editor store rather than a database constraint.
type DraftModel struct {
	Base
	Title            string    `json:"title"`
	LegacyContent    string    `json:"legacyContent,omitempty" gorm:"column:legacy_content;type:longtext"`
	HeroImageURL     string    `json:"heroImageUrl"            gorm:"column:hero_image_url"`
	HeroImageCaption string    `json:"heroImageCaption,omitempty"`
	Blocks           BlockList `json:"blocks"                  gorm:"type:longtext;serializer:json"`
}

func (DraftModel) TableName() string { return "drafts" }
