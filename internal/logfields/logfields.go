package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyGame       = "game"
	KeyCategory   = "category"
	KeyTopic      = "topic"
	KeyArticle    = "article"
	KeySlug       = "slug"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Game(id string) slog.Attr        { return slog.String(KeyGame, id) }
func Category(id string) slog.Attr    { return slog.String(KeyCategory, id) }
func Topic(id string) slog.Attr       { return slog.String(KeyTopic, id) }
func Article(id string) slog.Attr     { return slog.String(KeyArticle, id) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
