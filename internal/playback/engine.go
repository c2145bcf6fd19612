// Package playback coordinates one media engine instance: loading episodes,
// transport controls, readiness detection for auto-start, and durable resume
// position. All state transitions flow through the engine's own handlers;
// callers never set playback state directly.
package playback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/killallgit/player-core/internal/models"
	"github.com/killallgit/player-core/internal/store"
)

// State is the engine's lifecycle phase.
type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
	StateEnded   State = "ended"
	StateError   State = "error"
)

var (
	// ErrInvalidEpisode is returned when LoadEpisode is given no episode or
	// one without an audio URL.
	ErrInvalidEpisode = errors.New("invalid episode")

	// ErrPlayRejected is returned when the media engine refuses to start.
	ErrPlayRejected = errors.New("play rejected by media engine")

	// ErrReadinessTimeout is recorded when auto-play could not confirm
	// buffering within the load timeout.
	ErrReadinessTimeout = errors.New("readiness timeout")
)

// Config holds the engine's timing knobs.
type Config struct {
	SkipBack          time.Duration // Default: 15s
	SkipForward       time.Duration // Default: 30s
	LoadTimeout       time.Duration // Default: 10s
	ReadyPollInterval time.Duration // Default: 250ms
	SessionMaxAge     time.Duration // Default: 24h
}

func (c Config) withDefaults() Config {
	if c.SkipBack == 0 {
		c.SkipBack = 15 * time.Second
	}
	if c.SkipForward == 0 {
		c.SkipForward = 30 * time.Second
	}
	if c.LoadTimeout == 0 {
		c.LoadTimeout = 10 * time.Second
	}
	if c.ReadyPollInterval == 0 {
		c.ReadyPollInterval = 250 * time.Millisecond
	}
	if c.SessionMaxAge == 0 {
		c.SessionMaxAge = 24 * time.Hour
	}
	return c
}

// Status is a read-only snapshot of the engine for callers and the API.
type Status struct {
	State           State           `json:"state"`
	Episode         *models.Episode `json:"episode,omitempty"`
	PodcastLabel    string          `json:"podcast_label,omitempty"`
	Position        float64         `json:"position"`
	Duration        float64         `json:"duration"`
	ControlsEnabled bool            `json:"controls_enabled"`
	LastError       string          `json:"last_error,omitempty"`
}

// Engine is the playback state machine. One instance exists per process;
// loading a new episode supersedes whatever was playing before.
type Engine struct {
	mu         sync.Mutex
	media      MediaEngine
	store      store.Store
	lockScreen LockScreenSurface
	announcer  Announcer
	cfg        Config
	now        func() time.Time

	state        State
	episode      *models.Episode
	podcastLabel string
	position     float64
	duration     float64
	lastError    string

	// loadGen invalidates readiness goroutines from superseded loads.
	loadGen int
}

// NewEngine creates an engine around one media engine and a persistent store.
func NewEngine(media MediaEngine, s store.Store, cfg Config) *Engine {
	return &Engine{
		media: media,
		store: s,
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		state: StateEmpty,
	}
}

// SetLockScreen attaches the optional lock-screen metadata surface.
func (e *Engine) SetLockScreen(surface LockScreenSurface) {
	e.mu.Lock()
	e.lockScreen = surface
	e.mu.Unlock()
}

// SetAnnouncer attaches the optional accessibility announcer.
func (e *Engine) SetAnnouncer(announcer Announcer) {
	e.mu.Lock()
	e.announcer = announcer
	e.mu.Unlock()
}

// LoadEpisode stops any prior playback and loads episode for playing.
// With autoPlay set, the engine races buffering-readiness polling against
// the engine's one-shot can-play notification; whichever fires first starts
// playback, bounded by the load timeout.
func (e *Engine) LoadEpisode(episode *models.Episode, podcastLabel string, autoPlay bool) error {
	if episode == nil || episode.AudioURL == "" {
		return ErrInvalidEpisode
	}

	e.mu.Lock()
	e.loadGen++
	gen := e.loadGen

	e.media.Pause()
	e.episode = episode
	e.podcastLabel = podcastLabel
	e.position = 0
	e.duration = 0
	e.lastError = ""
	e.setStateLocked(StateLoading)
	e.media.SetSource(episode.AudioURL)
	e.media.Load()
	e.mu.Unlock()

	e.persistCurrentEpisode(episode, podcastLabel)
	e.updateLockScreen(episode, podcastLabel)

	if autoPlay {
		go e.raceReadiness(gen)
	}
	return nil
}

// Play asks the media engine to start. No-op without a loaded episode.
func (e *Engine) Play(ctx context.Context) error {
	e.mu.Lock()
	if e.episode == nil {
		e.mu.Unlock()
		return nil
	}
	media := e.media
	e.mu.Unlock()

	if err := media.Play(ctx); err != nil {
		e.mu.Lock()
		e.lastError = "Playback could not be started"
		e.setStateLocked(StateError)
		e.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrPlayRejected, err)
	}
	return nil
}

// Pause requests a stop if currently playing. Idempotent.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.episode == nil {
		return
	}
	if !e.media.Paused() {
		e.media.Pause()
	}
}

// TogglePlayPause flips between play and pause. The media engine's own
// paused flag is the source of truth, not the engine's cached phase.
func (e *Engine) TogglePlayPause(ctx context.Context) error {
	e.mu.Lock()
	if e.episode == nil {
		e.mu.Unlock()
		return nil
	}
	paused := e.media.Paused()
	e.mu.Unlock()

	if paused {
		return e.Play(ctx)
	}
	e.Pause()
	return nil
}

// SkipBack jumps backward, clamped at the start of the episode.
func (e *Engine) SkipBack() {
	e.skip(-e.cfg.SkipBack.Seconds())
}

// SkipForward jumps forward, clamped at the live duration. With an unknown
// duration the forward target collapses to 0.
func (e *Engine) SkipForward() {
	e.skip(e.cfg.SkipForward.Seconds())
}

func (e *Engine) skip(delta float64) {
	e.mu.Lock()
	if e.episode == nil {
		e.mu.Unlock()
		return
	}

	target := e.media.Position() + delta
	if delta > 0 {
		if limit := e.media.Duration(); target > limit {
			target = limit
		}
	}
	if target < 0 {
		target = 0
	}

	e.media.SetPosition(target)
	e.position = target
	episode := e.episode
	e.mu.Unlock()

	e.persistPosition(episode.GUID, target)
}

// SeekPercent moves playback to a percentage of the episode duration.
// No-op without an episode or a known duration.
func (e *Engine) SeekPercent(percent float64) {
	e.mu.Lock()
	duration := e.media.Duration()
	if e.episode == nil || duration <= 0 {
		e.mu.Unlock()
		return
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	target := percent / 100 * duration
	e.media.SetPosition(target)
	e.position = target
	episode := e.episode
	e.mu.Unlock()

	e.persistPosition(episode.GUID, target)
}

// HandleEvent is the single dispatch entry point for media engine
// notifications, applied in the order the engine emits them.
func (e *Engine) HandleEvent(ev Event) {
	e.mu.Lock()

	switch ev.Kind {
	case EventLoadStart, EventWaiting:
		e.setStateLocked(StateLoading)

	case EventMetadataLoaded:
		e.duration = ev.Duration
		if e.state == StateLoading {
			e.setStateLocked(StateReady)
		}

	case EventCanPlayThrough:
		if e.state == StateLoading {
			e.setStateLocked(StateReady)
		}

	case EventTimeUpdate:
		e.position = ev.Position
		if e.episode != nil && ev.Position > 0 {
			guid := e.episode.GUID
			e.mu.Unlock()
			e.persistPosition(guid, ev.Position)
			return
		}

	case EventPlay:
		e.setStateLocked(StatePlaying)

	case EventPause:
		e.setStateLocked(StatePaused)

	case EventEnded:
		e.position = 0
		e.setStateLocked(StateEnded)

	case EventError:
		kind := TranslateErrorCode(ev.ErrorCode)
		e.lastError = kind.Message()
		log.Printf("[ERROR] Media engine reported %s (code %d): %s", kind.Message(), ev.ErrorCode, ev.ErrorMessage)
		e.setStateLocked(StateError)
	}

	e.mu.Unlock()
}

// Destroy stops playback and clears the loaded episode. Terminal.
func (e *Engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.loadGen++
	e.media.Pause()
	e.episode = nil
	e.podcastLabel = ""
	e.position = 0
	e.duration = 0
	e.setStateLocked(StateEmpty)
}

// Status returns a snapshot of the engine.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Status{
		State:           e.state,
		Episode:         e.episode,
		PodcastLabel:    e.podcastLabel,
		Position:        e.position,
		Duration:        e.duration,
		ControlsEnabled: e.episode != nil && e.state != StateLoading,
		LastError:       e.lastError,
	}
}

// raceReadiness polls the buffering indicator while listening for the
// one-shot can-play notification; the first signal starts playback and the
// loser is discarded. The load timeout bounds the whole race.
func (e *Engine) raceReadiness(gen int) {
	ready := make(chan struct{}, 1)
	cancel := e.media.OnCanPlay(func() {
		select {
		case ready <- struct{}{}:
		default:
		}
	})
	defer cancel()

	ticker := time.NewTicker(e.cfg.ReadyPollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(e.cfg.LoadTimeout)
	defer deadline.Stop()

	for {
		select {
		case <-ticker.C:
			if !e.generationCurrent(gen) {
				return
			}
			if e.media.ReadyLevel() >= ReadyFutureData {
				e.autoStart(gen)
				return
			}
		case <-ready:
			e.autoStart(gen)
			return
		case <-deadline.C:
			e.loadTimedOut(gen)
			return
		}
	}
}

func (e *Engine) autoStart(gen int) {
	if !e.generationCurrent(gen) {
		return
	}
	if err := e.Play(context.Background()); err != nil {
		log.Printf("[WARN] Auto-play failed: %v", err)
	}
}

// loadTimedOut exits Loading without starting playback. No automatic retry.
func (e *Engine) loadTimedOut(gen int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loadGen != gen || e.state != StateLoading {
		return
	}
	e.lastError = "Episode took too long to load"
	log.Printf("[WARN] %v after %s for %q", ErrReadinessTimeout, e.cfg.LoadTimeout, e.episode.Title)
	e.setStateLocked(StateReady)
}

func (e *Engine) generationCurrent(gen int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadGen == gen
}

// setStateLocked applies a phase change and its side effects. Callers hold mu.
func (e *Engine) setStateLocked(next State) {
	if e.state == next {
		return
	}
	e.state = next

	switch next {
	case StatePlaying:
		e.announce("Playing")
	case StatePaused:
		e.announce("Paused")
	case StateEnded:
		e.announce("Episode finished")
	case StateError:
		e.announce(e.lastError)
	}
}

func (e *Engine) announce(message string) {
	if e.announcer == nil || message == "" {
		return
	}
	e.announcer.Announce(message)
}

// updateLockScreen pushes now-playing metadata and transport handlers.
func (e *Engine) updateLockScreen(episode *models.Episode, podcastLabel string) {
	e.mu.Lock()
	surface := e.lockScreen
	e.mu.Unlock()
	if surface == nil {
		return
	}

	surface.SetMetadata(Metadata{
		Title:      episode.Title,
		Artist:     podcastLabel,
		Album:      podcastLabel,
		ArtworkURL: episode.ArtworkURL,
	})
	surface.SetActionHandler(ActionPlay, func() {
		if err := e.Play(context.Background()); err != nil {
			log.Printf("[WARN] Lock-screen play failed: %v", err)
		}
	})
	surface.SetActionHandler(ActionPause, e.Pause)
	surface.SetActionHandler(ActionSeekBackward, e.SkipBack)
	surface.SetActionHandler(ActionSeekForward, e.SkipForward)
}
