package editor

import (
	"strings"

	"github.com/investordaily/blogd/internal/models"
)

// ValidationError is a user-correctable publish failure. Reason carries the
// first failing rule only.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ValidateForPublish checks a document against the publish rules in fixed
// order and short-circuits on the first failure. Draft submissions never run
// through here.
func ValidateForPublish(doc Document) error {
	if strings.TrimSpace(doc.Title) == "" {
		return &ValidationError{Reason: "title is required"}
	}
	if doc.HeroImageURL == "" {
		return &ValidationError{Reason: "image is required"}
	}
	if !doc.Blocks.HasNonEmpty(models.BlockSubheading) {
		return &ValidationError{Reason: "at least one subheading is required"}
	}
	if !doc.Blocks.HasNonEmpty(models.BlockParagraph) {
		return &ValidationError{Reason: "at least one paragraph is required"}
	}
	return nil
}
