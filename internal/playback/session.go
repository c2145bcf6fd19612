package playback

import (
	"encoding/json"
	"log"

	"github.com/killallgit/player-core/internal/models"
)

// Session record keys in the persistent store. These keys are owned by the
// playback engine; cache invalidation never touches them.
const (
	keyCurrentEpisode   = "currentEpisode"
	keyPlaybackPosition = "playbackPosition"
)

// persistCurrentEpisode records what was loaded so the next process start
// can restore it.
func (e *Engine) persistCurrentEpisode(episode *models.Episode, podcastLabel string) {
	record := models.CurrentEpisodeRecord{
		Episode:      *episode,
		PodcastLabel: podcastLabel,
		Timestamp:    e.now(),
	}
	e.writeRecord(keyCurrentEpisode, record)
}

// persistPosition records the resume position for the episode. Positions at
// zero are not worth resuming and are never written.
func (e *Engine) persistPosition(guid string, position float64) {
	if position <= 0 {
		return
	}
	record := models.PlaybackPositionRecord{
		EpisodeGUID: guid,
		Position:    position,
		Timestamp:   e.now(),
	}
	e.writeRecord(keyPlaybackPosition, record)
}

func (e *Engine) writeRecord(key string, record any) {
	raw, err := json.Marshal(record)
	if err != nil {
		log.Printf("[WARN] Failed to marshal %s record: %v", key, err)
		return
	}
	if err := e.store.Set(key, raw); err != nil {
		log.Printf("[WARN] Failed to persist %s record: %v", key, err)
	}
}

// RestoreSession runs once at process start. It reloads the last episode
// (without auto-playing) when the record is younger than the session max
// age, then seeks to the persisted position if it belongs to that episode
// and is fresh enough.
func (e *Engine) RestoreSession() error {
	raw, exists, err := e.store.Get(keyCurrentEpisode)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	var current models.CurrentEpisodeRecord
	if err := json.Unmarshal(raw, &current); err != nil {
		log.Printf("[WARN] Dropping corrupt %s record: %v", keyCurrentEpisode, err)
		return e.store.Remove(keyCurrentEpisode)
	}

	if e.now().Sub(current.Timestamp) >= e.cfg.SessionMaxAge {
		log.Printf("[INFO] Ignoring stale session from %s", current.Timestamp.Format("2006-01-02 15:04"))
		return nil
	}

	episode := current.Episode
	e.mu.Lock()
	e.loadGen++
	e.episode = &episode
	e.podcastLabel = current.PodcastLabel
	e.position = 0
	e.media.SetSource(episode.AudioURL)
	e.media.Load()
	e.setStateLocked(StateReady)
	e.mu.Unlock()

	e.updateLockScreen(&episode, current.PodcastLabel)
	log.Printf("[INFO] Restored session for %q", episode.Title)

	e.restorePosition(episode.GUID)
	return nil
}

func (e *Engine) restorePosition(guid string) {
	raw, exists, err := e.store.Get(keyPlaybackPosition)
	if err != nil || !exists {
		return
	}

	var record models.PlaybackPositionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		log.Printf("[WARN] Dropping corrupt %s record: %v", keyPlaybackPosition, err)
		_ = e.store.Remove(keyPlaybackPosition)
		return
	}

	if record.EpisodeGUID != guid || record.Position <= 0 {
		return
	}
	if e.now().Sub(record.Timestamp) >= e.cfg.SessionMaxAge {
		return
	}

	e.mu.Lock()
	e.media.SetPosition(record.Position)
	e.position = record.Position
	e.mu.Unlock()
	log.Printf("[INFO] Resuming at %.0fs", record.Position)
}
