package editor

import (
	"context"
	"errors"
	"strings"

	"github.com/investordaily/blogd/internal/models"
)

// State is the composer lifecycle state.
type State string

const (
	StateEmpty      State = "empty"
	StateHydrated   State = "hydrated"
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

// Intent identifies what the operator committed. It is passed explicitly by
// the triggering action and never inferred from document content.
type Intent string

const (
	IntentDraft   Intent = "draft"
	IntentPublish Intent = "publish"
	IntentUpdate  Intent = "update"
)

var (
	// ErrSubmitting is returned when Submit is called while a submission is
	// already in flight.
	ErrSubmitting = errors.New("submission already in flight")
	// ErrSubmitted is returned for any operation on a finished composer.
	ErrSubmitted = errors.New("composer already submitted")
	// ErrNoTarget is returned for an update intent without a hydrated source.
	ErrNoTarget = errors.New("update requires a document loaded for editing")
)

// Document is the in-memory composition state handed whole to a collaborator
// on submission.
type Document struct {
	Title            string
	LegacyContent    string
	HeroImageURL     string
	HeroImageCaption string
	Blocks           models.BlockList
}

// Sink is the set of collaborators a finished document can be handed to.
type Sink interface {
	SaveDraft(ctx context.Context, doc Document) (id string, err error)
	Publish(ctx context.Context, doc Document) (id string, err error)
	Update(ctx context.Context, id string, doc Document) error
}

// Composer owns one document from creation or hydration through submission.
// It is not safe for concurrent use; one editing session maps to one Composer.
type Composer struct {
	state    State
	targetID string
	doc      Document
	sink     Sink
}

// New returns an empty composer seeded with the block scaffold.
func New(sink Sink) *Composer {
	return &Composer{
		state: StateEmpty,
		doc:   Document{Blocks: models.DefaultScaffold()},
		sink:  sink,
	}
}

// HydrateBlog loads an existing published blog for editing. Absent fields
// come back as zero values and an empty block list becomes the scaffold.
func (c *Composer) HydrateBlog(b *models.BlogModel) {
	c.hydrate(Document{
		Title:            b.Title,
		LegacyContent:    b.LegacyContent,
		HeroImageURL:     b.HeroImageURL,
		HeroImageCaption: b.HeroImageCaption,
		Blocks:           b.Blocks,
	}, b.ID)
}

// HydrateDraft loads the singleton draft for editing. Drafts republish as new
// blogs, so no update target is retained.
func (c *Composer) HydrateDraft(d *models.DraftModel) {
	c.hydrate(Document{
		Title:            d.Title,
		LegacyContent:    d.LegacyContent,
		HeroImageURL:     d.HeroImageURL,
		HeroImageCaption: d.HeroImageCaption,
		Blocks:           d.Blocks,
	}, "")
}

func (c *Composer) hydrate(doc Document, targetID string) {
	var blocks models.BlockList
	blocks.Initialize(doc.Blocks)
	doc.Blocks = blocks
	c.doc = doc
	c.targetID = targetID
	c.state = StateHydrated
}

// State returns the current lifecycle state.
func (c *Composer) State() State { return c.state }

// Document returns a copy of the current composition state.
func (c *Composer) Document() Document {
	doc := c.doc
	doc.Blocks = append(models.BlockList(nil), c.doc.Blocks...)
	return doc
}

func (c *Composer) edit() error {
	switch c.state {
	case StateSubmitting:
		return ErrSubmitting
	case StateSubmitted:
		return ErrSubmitted
	}
	c.state = StateEditing
	return nil
}

// SetTitle sets the document title.
func (c *Composer) SetTitle(title string) error {
	if err := c.edit(); err != nil {
		return err
	}
	c.doc.Title = title
	return nil
}

// SetHeroImage sets the hero image URL. Pass "" to clear the slot.
func (c *Composer) SetHeroImage(url string) error {
	if err := c.edit(); err != nil {
		return err
	}
	c.doc.HeroImageURL = strings.TrimSpace(url)
	return nil
}

// SetCaption sets the hero image caption. Clearing the caption matches the
// caption toggle being switched off.
func (c *Composer) SetCaption(caption string) error {
	if err := c.edit(); err != nil {
		return err
	}
	c.doc.HeroImageCaption = caption
	return nil
}

// SetLegacyContent sets the backward-compatible single-text content field.
func (c *Composer) SetLegacyContent(content string) error {
	if err := c.edit(); err != nil {
		return err
	}
	c.doc.LegacyContent = content
	return nil
}

// AppendBlock adds a new empty block of the given kind to the end.
func (c *Composer) AppendBlock(kind models.BlockKind) error {
	if err := c.edit(); err != nil {
		return err
	}
	return c.doc.Blocks.Append(kind)
}

// InitializeBlocks resets the block sequence: to blocks when non-empty,
// otherwise back to the scaffold.
func (c *Composer) InitializeBlocks(blocks models.BlockList) error {
	if err := c.edit(); err != nil {
		return err
	}
	c.doc.Blocks.Initialize(blocks)
	return nil
}

// SetBlockText replaces the text of the block at index i.
func (c *Composer) SetBlockText(i int, text string) error {
	if err := c.edit(); err != nil {
		return err
	}
	return c.doc.Blocks.SetText(i, text)
}

// RemoveBlock deletes the block at index i.
func (c *Composer) RemoveBlock(i int) error {
	if err := c.edit(); err != nil {
		return err
	}
	return c.doc.Blocks.RemoveAt(i)
}

// Submit commits the document with the given intent. Publish and update run
// the publish validation; drafts bypass it. On a validation or collaborator
// failure the composer returns to Editing so the operator can retry; on
// success it is Submitted and must not be reused.
func (c *Composer) Submit(ctx context.Context, intent Intent) (string, error) {
	switch c.state {
	case StateSubmitting:
		return "", ErrSubmitting
	case StateSubmitted:
		return "", ErrSubmitted
	}
	c.state = StateSubmitting

	if intent == IntentPublish || intent == IntentUpdate {
		if err := ValidateForPublish(c.doc); err != nil {
			c.state = StateEditing
			return "", err
		}
	}

	var (
		id  string
		err error
	)
	switch intent {
	case IntentDraft:
		id, err = c.sink.SaveDraft(ctx, c.doc)
	case IntentPublish:
		id, err = c.sink.Publish(ctx, c.doc)
	case IntentUpdate:
		if c.targetID == "" {
			err = ErrNoTarget
		} else {
			id = c.targetID
			err = c.sink.Update(ctx, c.targetID, c.doc)
		}
	default:
		err = errors.New("unknown submission intent: " + string(intent))
	}

	if err != nil {
		c.state = StateEditing
		return "", err
	}
	c.state = StateSubmitted
	return id, nil
}
