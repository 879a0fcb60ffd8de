package upload

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// SlotState is the lifecycle of one logical upload slot.
type SlotState string

const (
	SlotIdle      SlotState = "idle"
	SlotUploading SlotState = "uploading"
	SlotDone      SlotState = "done"
	SlotFailed    SlotState = "failed"
)

// ErrUploadInFlight is returned when an upload is requested for a slot that
// is already busy. First caller wins; the second request is rejected rather
// than raced.
var ErrUploadInFlight = errors.New("an upload for this slot is already in flight")

// Uploader is the object store behind the coordinator.
type Uploader interface {
	Put(ctx context.Context, key string, payload []byte, contentType string) (string, error)
}

// Coordinator manages asynchronous binary uploads, one logical slot per
// namespace (hero images, backgrounds). Each upload runs to exactly one
// terminal outcome: a durable public URL or an error, after which the slot is
// free again so the operator can retry. There is no mid-flight cancellation.
type Coordinator struct {
	mu       sync.Mutex
	uploader Uploader
	slots    map[string]SlotState
	logger   *zap.Logger
}

func NewCoordinator(uploader Uploader, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		uploader: uploader,
		slots:    make(map[string]SlotState),
		logger:   logger,
	}
}

// SlotState reports the current state of a slot; unknown slots are idle.
func (c *Coordinator) SlotState(slot string) SlotState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.slots[slot]; ok {
		return s
	}
	return SlotIdle
}

// Upload uploads payload to <slot>/<name> and returns the public URL. A slot
// that is already uploading rejects the call with ErrUploadInFlight.
func (c *Coordinator) Upload(ctx context.Context, slot, name string, payload []byte, contentType string) (string, error) {
	if err := c.acquire(slot); err != nil {
		return "", err
	}

	key := slot + "/" + name
	url, err := c.uploader.Put(ctx, key, payload, contentType)

	c.mu.Lock()
	if err != nil {
		c.slots[slot] = SlotFailed
	} else {
		c.slots[slot] = SlotDone
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("upload failed", zap.String("key", key), zap.Error(err))
		return "", err
	}
	c.logger.Info("upload complete", zap.String("key", key), zap.String("url", url))
	return url, nil
}

func (c *Coordinator) acquire(slot string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.slots[slot] == SlotUploading {
		return ErrUploadInFlight
	}
	c.slots[slot] = SlotUploading
	return nil
}
