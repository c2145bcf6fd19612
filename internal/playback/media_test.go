package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateErrorCode(t *testing.T) {
	tests := []struct {
		code    int
		want    ErrorKind
		message string
	}{
		{1, ErrorAborted, "Playback was aborted"},
		{2, ErrorNetwork, "A network error interrupted playback"},
		{3, ErrorDecode, "The episode audio could not be decoded"},
		{4, ErrorUnsupported, "The episode audio format is not supported"},
		{0, ErrorUnknown, "Playback failed"},
		{99, ErrorUnknown, "Playback failed"},
	}

	for _, tt := range tests {
		kind := TranslateErrorCode(tt.code)
		assert.Equal(t, tt.want, kind)
		assert.Equal(t, tt.message, kind.Message())
	}
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "canplaythrough", EventCanPlayThrough.String())
	assert.Equal(t, "timeupdate", EventTimeUpdate.String())
	assert.Equal(t, "unknown", EventKind(42).String())
}
