// Package youtube is the single parser for YouTube references accepted by the console.
//
// Recognized forms, with optional http(s) scheme and optional "www." or "m." host prefix
// for youtube.com:
//
//	watch   https://www.youtube.com/watch?v=ID (v may follow other query parameters)
//	short   https://youtu.be/ID
//	embed   https://www.youtube.com/embed/ID
//	shorts  https://www.youtube.com/shorts/ID
//	bare    ID
//
// ID is always exactly 11 characters of [A-Za-z0-9_-].
package youtube

import (
	"errors"
	"regexp"
	"strings"
)

type Kind string

const (
	KindWatch  Kind = "watch"
	KindShort  Kind = "short"
	KindEmbed  Kind = "embed"
	KindShorts Kind = "shorts"
	KindBare   Kind = "bare"
)

const (
	embedBaseURL = "https://www.youtube.com/embed/"

	AspectLandscape = "16 / 9"
	AspectPortrait  = "9 / 16"
)

var ErrNotYouTube = errors.New("not a recognized YouTube URL")

const (
	idPattern   = `([A-Za-z0-9_-]{11})`
	tailPattern = `(?:[?&#/].*)?$`
	hostPattern = `^(?:https?://)?(?:www\.|m\.)?youtube\.com/`
)

var patterns = []struct {
	kind Kind
	re   *regexp.Regexp
}{
	{KindWatch, regexp.MustCompile(hostPattern + `watch\?(?:[^#]*&)?v=` + idPattern + `(?:[&#].*)?$`)},
	{KindShort, regexp.MustCompile(`^(?:https?://)?youtu\.be/` + idPattern + tailPattern)},
	{KindEmbed, regexp.MustCompile(hostPattern + `embed/` + idPattern + tailPattern)},
	{KindShorts, regexp.MustCompile(hostPattern + `shorts/` + idPattern + tailPattern)},
	{KindBare, regexp.MustCompile(`^` + idPattern + `$`)},
}

// Video is a parsed reference.
type Video struct {
	ID   string
	Kind Kind
}

// Parse recognizes ref against the documented pattern set.
func Parse(ref string) (Video, error) {
	ref = strings.TrimSpace(ref)

	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(ref); m != nil {
			return Video{ID: m[1], Kind: p.kind}, nil
		}
	}

	return Video{}, ErrNotYouTube
}

// ExtractID returns the video ID or "" when ref is not recognized.
func ExtractID(ref string) string {
	v, err := Parse(ref)
	if err != nil {
		return ""
	}

	return v.ID
}

func IsShorts(ref string) bool {
	v, err := Parse(ref)

	return err == nil && v.Kind == KindShorts
}

// IsYouTubeURL reports whether ref is a recognized YouTube URL. A bare ID is not a URL.
func IsYouTubeURL(ref string) bool {
	v, err := Parse(ref)

	return err == nil && v.Kind != KindBare
}

// EmbedURL builds the iframe source for ref, or "" when ref is not recognized.
func EmbedURL(ref string) string {
	id := ExtractID(ref)
	if id == "" {
		return ""
	}

	return embedBaseURL + id
}

// Aspect returns the CSS aspect-ratio for the player: portrait for shorts.
func Aspect(ref string) string {
	if IsShorts(ref) {
		return AspectPortrait
	}

	return AspectLandscape
}
