package playback

import "context"

// ReadyLevel is the media engine's ordinal buffering indicator. Playback can
// start once the engine reports ReadyFutureData or better.
type ReadyLevel int

const (
	ReadyNothing ReadyLevel = iota
	ReadyMetadata
	ReadyCurrentData
	ReadyFutureData
	ReadyEnoughData
)

// MediaEngine is the playback capability the engine orchestrates. The real
// implementation lives outside this repository (a platform audio element,
// an embedded player process); tests drive the engine with a scripted fake.
type MediaEngine interface {
	SetSource(url string)
	Load()

	// Play asks the engine to start. A returned error means the engine
	// refused (autoplay policy, decode failure) and playback did not begin.
	Play(ctx context.Context) error
	Pause()

	Position() float64
	SetPosition(seconds float64)
	Duration() float64
	ReadyLevel() ReadyLevel
	Paused() bool

	// OnCanPlay registers a one-shot notification fired when the engine
	// first becomes playable. The returned func cancels the registration.
	OnCanPlay(fn func()) (cancel func())
}

// EventKind identifies a media engine notification.
type EventKind int

const (
	EventLoadStart EventKind = iota
	EventMetadataLoaded
	EventTimeUpdate
	EventWaiting
	EventCanPlayThrough
	EventPlay
	EventPause
	EventEnded
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventLoadStart:
		return "loadstart"
	case EventMetadataLoaded:
		return "loadedmetadata"
	case EventTimeUpdate:
		return "timeupdate"
	case EventWaiting:
		return "waiting"
	case EventCanPlayThrough:
		return "canplaythrough"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one media engine notification, delivered to Engine.HandleEvent in
// emission order.
type Event struct {
	Kind         EventKind
	Position     float64
	Duration     float64
	ErrorCode    int
	ErrorMessage string
}

// ErrorKind classifies a vendor media error code into the engine's own
// taxonomy. The numeric codes follow the common media-element convention.
type ErrorKind int

const (
	ErrorUnknown ErrorKind = iota
	ErrorAborted
	ErrorNetwork
	ErrorDecode
	ErrorUnsupported
)

// TranslateErrorCode maps a vendor-defined numeric error code onto an
// ErrorKind at the media engine boundary.
func TranslateErrorCode(code int) ErrorKind {
	switch code {
	case 1:
		return ErrorAborted
	case 2:
		return ErrorNetwork
	case 3:
		return ErrorDecode
	case 4:
		return ErrorUnsupported
	default:
		return ErrorUnknown
	}
}

// Message returns the user-facing description for the error kind.
func (k ErrorKind) Message() string {
	switch k {
	case ErrorAborted:
		return "Playback was aborted"
	case ErrorNetwork:
		return "A network error interrupted playback"
	case ErrorDecode:
		return "The episode audio could not be decoded"
	case ErrorUnsupported:
		return "The episode audio format is not supported"
	default:
		return "Playback failed"
	}
}
