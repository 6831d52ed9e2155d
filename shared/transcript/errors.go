package transcript

import (
	"errors"
	"fmt"
)

// ErrNoCaptions signals that the captioning service has no usable track
// for the video (captions disabled, video missing, or no track in the
// requested language). Failures are never cached, so a later retry may
// succeed once conditions change.
var ErrNoCaptions = errors.New("no captions available")

// CorruptError reports a cache file that exists but cannot be decoded.
// It is distinct from a cache miss so corruption is never silently
// masked by a re-fetch.
type CorruptError struct {
	VideoID string
	Path    string
	Err     error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("cached transcript for %s is corrupt (%s): %v", e.VideoID, e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}
