package youtube

import (
	"errors"
	"regexp"
)

// ErrNoVideoID signals that no video identifier could be extracted
// from a URL. The batch reports it per-URL and keeps going.
var ErrNoVideoID = errors.New("no YouTube video ID found in URL")

// Matches the 11-character video token after "v=" or a path separator,
// covering both watch?v= and youtu.be-style URLs.
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID pulls the 11-character video identifier out of a URL
// string.
func ExtractVideoID(url string) (string, error) {
	matches := videoIDPattern.FindStringSubmatch(url)
	if len(matches) < 2 {
		return "", ErrNoVideoID
	}
	return matches[1], nil
}
