package upload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFileName(t *testing.T) {
	name := buildFileName("photo.JPG")
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.Len(t, name, 18+len(".jpg"))

	// names never collide in practice
	assert.NotEqual(t, buildFileName("photo.jpg"), buildFileName("photo.jpg"))

	assert.True(t, strings.HasSuffix(buildFileName("noext"), ".dat"))
	assert.True(t, strings.HasSuffix(buildFileName("weird.thisextensionistoolong"), ".dat"))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "image/png", detectContentType("a.jpg", nil, "image/png"), "explicit header wins")
	assert.Equal(t, "image/jpeg", detectContentType("a.jpg", nil, ""))

	// PNG magic bytes
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	assert.Equal(t, "image/png", detectContentType("noext", png, ""))

	assert.Equal(t, "application/octet-stream", detectContentType("noext", nil, ""))
}

func TestSlotForType(t *testing.T) {
	assert.Equal(t, "images", slotForType(""))
	assert.Equal(t, "images", slotForType("image"))
	assert.Equal(t, "images", slotForType(" Image "))
	assert.Equal(t, "backgrounds", slotForType("background"))
	assert.Empty(t, slotForType("video"))
}
