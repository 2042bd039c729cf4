package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Badpoolinator/strata-wiki/internal/catalogue"
)

// exclusiveTransform rewrites `::: <game>` container blocks into div
// wrappers the site stylesheet can show or hide per game:
//
//	::: p2ce
//	This only applies to P2CE.
//	:::
//
// becomes a `<div class="p2ce-only exclusive">` with a header line.
// Containers naming an unknown game pass through untouched.
type exclusiveTransform struct {
	headers map[string]string // game id -> header display text
}

func newExclusiveTransform(games []*catalogue.Game) *exclusiveTransform {
	headers := make(map[string]string, len(games))
	for _, game := range games {
		headers[game.ID] = game.Label() + " only!"
	}
	return &exclusiveTransform{headers: headers}
}

// Apply rewrites exclusive containers line by line. An unterminated
// container is closed at end of input.
func (t *exclusiveTransform) Apply(body []byte) []byte {
	if !bytes.Contains(body, []byte(":::")) {
		return body
	}

	var out []string
	var open bool
	for _, line := range strings.Split(string(body), "\n") {
		trimmed := strings.TrimSpace(line)

		if open && trimmed == ":::" {
			out = append(out, "", "</div>", "")
			open = false
			continue
		}

		if !open && strings.HasPrefix(trimmed, ":::") {
			gameID := strings.TrimSpace(strings.TrimPrefix(trimmed, ":::"))
			if header, ok := t.headers[gameID]; ok {
				out = append(out,
					fmt.Sprintf(`<div class="%s-only exclusive"><div class="exclusive-header">%s</div>`, gameID, header),
					"")
				open = true
				continue
			}
		}

		out = append(out, line)
	}

	if open {
		out = append(out, "", "</div>", "")
	}

	return []byte(strings.Join(out, "\n"))
}
