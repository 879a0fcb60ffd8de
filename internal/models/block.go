package models

import (
	"errors"
	"fmt"
	"strings"
)

// BlockKind is the closed set of content block types.
type BlockKind string

const (
	BlockParagraph  BlockKind = "paragraph"
	BlockSubheading BlockKind = "subheading"
	BlockDivider    BlockKind = "divider"
)

// Valid reports whether k is one of the three known kinds.
func (k BlockKind) Valid() bool {
	switch k {
	case BlockParagraph, BlockSubheading, BlockDivider:
		return true
	}
	return false
}

// Block is one typed unit of post content. Text is unused for dividers.
type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
}

// BlockList is an ordered sequence of blocks. Identity is positional:
// removing a block shifts the indices of everything after it. The list
// serializes as JSON in MySQL, like the image lists elsewhere.
//
// There is no move operation; the only way to change order is
// remove-and-re-append, which loses position. Clients depend on this.
type BlockList []Block

// ErrBlockIndex is returned by SetText and RemoveAt for an out-of-range index.
var ErrBlockIndex = errors.New("block index out of range")

// DefaultScaffold returns the authoring scaffold a fresh document starts
// with: a divider, an empty subheading, and an empty paragraph.
func DefaultScaffold() BlockList {
	return BlockList{
		{Kind: BlockDivider},
		{Kind: BlockSubheading},
		{Kind: BlockParagraph},
	}
}

// Initialize resets the list to existing when non-empty, else to the scaffold.
func (l *BlockList) Initialize(existing BlockList) {
	if len(existing) > 0 {
		*l = append(BlockList(nil), existing...)
		return
	}
	*l = DefaultScaffold()
}

// Append adds a new empty block of the given kind to the end of the list.
func (l *BlockList) Append(kind BlockKind) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown block kind: %q", kind)
	}
	*l = append(*l, Block{Kind: kind})
	return nil
}

// SetText replaces the text of the block at index i.
func (l BlockList) SetText(i int, text string) error {
	if i < 0 || i >= len(l) {
		return ErrBlockIndex
	}
	l[i].Text = text
	return nil
}

// RemoveAt deletes the block at index i, shifting later blocks down by one.
func (l *BlockList) RemoveAt(i int) error {
	if i < 0 || i >= len(*l) {
		return ErrBlockIndex
	}
	*l = append((*l)[:i], (*l)[i+1:]...)
	return nil
}

// HasNonEmpty reports whether any block of the given kind has non-blank text.
func (l BlockList) HasNonEmpty(kind BlockKind) bool {
	for _, b := range l {
		if b.Kind == kind && strings.TrimSpace(b.Text) != "" {
			return true
		}
	}
	return false
}

// FirstParagraph returns the text of the first paragraph block, or "" when
// the list has none. Used for list-view excerpts.
func (l BlockList) FirstParagraph() string {
	for _, b := range l {
		if b.Kind == BlockParagraph {
			return b.Text
		}
	}
	return ""
}
