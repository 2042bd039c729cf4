// Package slug implements the canonical path identifier for wiki content.
//
// A Slug names one piece of content (game/category/topic/article) and
// converts losslessly between its on-disk source path and its public URL.
package slug

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

// SourceRoot is the directory prefix prepended by SourcePath.
const SourceRoot = "pages"

// SourceExt is the file extension appended by SourcePath.
const SourceExt = ".md"

// InvalidSlugError reports a path string that cannot form a Slug.
type InvalidSlugError struct {
	Input  string
	Reason string
}

func (e *InvalidSlugError) Error() string {
	return fmt.Sprintf("invalid slug %q: %s", e.Input, e.Reason)
}

// Slug is an immutable slash-delimited content identifier.
// The zero value is not a valid Slug; construct via Parse or New.
type Slug struct {
	segments []string
}

// Parse constructs a Slug from a slash-delimited path string.
// It fails with InvalidSlugError on empty input, empty segments, or
// path-traversal segments ("." / "..").
func Parse(s string) (Slug, error) {
	trimmed := strings.Trim(s, "/")
	if trimmed == "" {
		return Slug{}, &InvalidSlugError{Input: s, Reason: "empty path"}
	}

	segments := strings.Split(trimmed, "/")
	for _, seg := range segments {
		switch seg {
		case "":
			return Slug{}, &InvalidSlugError{Input: s, Reason: "empty segment"}
		case ".", "..":
			return Slug{}, &InvalidSlugError{Input: s, Reason: "path traversal segment"}
		}
	}

	return Slug{segments: segments}, nil
}

// New constructs a Slug directly from path segments, validating each one.
func New(segments ...string) (Slug, error) {
	return Parse(strings.Join(segments, "/"))
}

// Segments returns a copy of the slug's path components.
func (s Slug) Segments() []string {
	out := make([]string, len(s.segments))
	copy(out, s.segments)
	return out
}

// Len returns the number of segments.
func (s Slug) Len() int { return len(s.segments) }

// Game returns the first segment (the owning game id).
func (s Slug) Game() string {
	if len(s.segments) == 0 {
		return ""
	}
	return s.segments[0]
}

// Category returns the second segment, or "" for shorter slugs.
func (s Slug) Category() string {
	if len(s.segments) < 2 {
		return ""
	}
	return s.segments[1]
}

// SourcePath returns the on-disk path to the Markdown source backing
// this slug: SourceRoot + "/" + segments + SourceExt.
func (s Slug) SourcePath() string {
	return path.Join(SourceRoot, strings.Join(s.segments, "/")) + SourceExt
}

// URL returns the public URL path: forward-slash joined segments, no
// extension and no leading slash.
func (s Slug) URL() string {
	return strings.Join(s.segments, "/")
}

// Dir returns the URL path of the slug's parent (all segments but the
// last), or "" for a single-segment slug.
func (s Slug) Dir() string {
	if len(s.segments) < 2 {
		return ""
	}
	return strings.Join(s.segments[:len(s.segments)-1], "/")
}

// Base returns the final segment.
func (s Slug) Base() string {
	if len(s.segments) == 0 {
		return ""
	}
	return s.segments[len(s.segments)-1]
}

// Equal reports whether two slugs have identical segment sequences.
func (s Slug) Equal(other Slug) bool {
	if len(s.segments) != len(other.segments) {
		return false
	}
	for i, seg := range s.segments {
		if other.segments[i] != seg {
			return false
		}
	}
	return true
}

// String returns the URL form. Slugs marshal to JSON as this string.
func (s Slug) String() string { return s.URL() }

// MarshalJSON encodes the slug as its URL string, matching the artifact
// shape consumed by the client-side navigation code.
func (s Slug) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.URL() + `"`), nil
}

// UnmarshalJSON decodes a slug from its URL string form.
func (s *Slug) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
