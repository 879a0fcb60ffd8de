package models

// BlogModel is a published post: a title, a hero image with optional caption,
// and the ordered block sequence. LegacyContent carries the old
// single-text-field format and is not required by current validation.
type BlogModel struct {
	Base
	Title            string    `json:"title"`
	LegacyContent    string    `json:"legacyContent,omitempty" gorm:"column:legacy_content;type:longtext"`
	HeroImageURL     string    `json:"heroImageUrl"            gorm:"column:hero_image_url"`
	HeroImageCaption string    `json:"heroImageCaption,omitempty"`
	Blocks           BlockList `json:"blocks"                  gorm:"type:longtext;serializer:json"`
}

func (BlogModel) TableName() string { return "blogs" }

// Excerpt derives the list-view excerpt: the first paragraph's text.
func (b BlogModel) Excerpt() string {
	return b.Blocks.FirstParagraph()
}
