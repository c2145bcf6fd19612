package playback

import (
	"context"
	"sync"
)

// NoopMediaEngine is a stand-in media engine for deployments that drive the
// daemon without a platform player attached. It tracks transport state but
// produces no audio. Real installations inject their own MediaEngine.
type NoopMediaEngine struct {
	mu       sync.Mutex
	source   string
	position float64
	duration float64
	paused   bool
}

// NewNoopMediaEngine creates a no-op media engine.
func NewNoopMediaEngine() *NoopMediaEngine {
	return &NoopMediaEngine{paused: true}
}

func (n *NoopMediaEngine) SetSource(url string) {
	n.mu.Lock()
	n.source = url
	n.position = 0
	n.paused = true
	n.mu.Unlock()
}

func (n *NoopMediaEngine) Load() {}

func (n *NoopMediaEngine) Play(ctx context.Context) error {
	n.mu.Lock()
	n.paused = false
	n.mu.Unlock()
	return nil
}

func (n *NoopMediaEngine) Pause() {
	n.mu.Lock()
	n.paused = true
	n.mu.Unlock()
}

func (n *NoopMediaEngine) Position() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.position
}

func (n *NoopMediaEngine) SetPosition(seconds float64) {
	n.mu.Lock()
	n.position = seconds
	n.mu.Unlock()
}

func (n *NoopMediaEngine) Duration() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.duration
}

func (n *NoopMediaEngine) ReadyLevel() ReadyLevel {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.source == "" {
		return ReadyNothing
	}
	return ReadyEnoughData
}

func (n *NoopMediaEngine) Paused() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.paused
}

func (n *NoopMediaEngine) OnCanPlay(fn func()) (cancel func()) {
	// Readiness is immediate for a source that never buffers.
	fn()
	return func() {}
}
