package playback

// Lock-screen transport actions the engine registers handlers for.
const (
	ActionPlay         = "play"
	ActionPause        = "pause"
	ActionSeekBackward = "seekbackward"
	ActionSeekForward  = "seekforward"
)

// Metadata is the now-playing information pushed to the lock-screen surface.
type Metadata struct {
	Title      string
	Artist     string
	Album      string
	ArtworkURL string
}

// LockScreenSurface is the optional platform now-playing display and remote
// control integration. May be absent entirely.
type LockScreenSurface interface {
	SetMetadata(meta Metadata)
	SetActionHandler(action string, handler func())
}

// Announcer delivers accessibility announcements. Fire-and-forget;
// at-least-once delivery is acceptable and ordering is not guaranteed.
type Announcer interface {
	Announce(message string)
}
