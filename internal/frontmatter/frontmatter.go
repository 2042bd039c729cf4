// Package frontmatter splits YAML frontmatter (`---` delimited) off a
// Markdown document and decodes it into a metadata map.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates raw YAML frontmatter from the Markdown body.
//
// If the document does not start with a frontmatter delimiter, had is
// false and body is the full input. Both "\n" and "\r\n" newline styles
// are accepted.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[start:], closeLine) {
		return []byte{}, content[start+len(closeLine):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return content[start:end], content[bodyStart:], true, nil
}

// Parse splits a Markdown document and decodes its frontmatter into a
// map. Documents without frontmatter yield an empty, non-nil map.
func Parse(content []byte) (meta map[string]any, body []byte, err error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return nil, nil, err
	}
	if !had || len(fm) == 0 {
		return map[string]any{}, body, nil
	}

	if err := yaml.Unmarshal(fm, &meta); err != nil {
		return nil, nil, fmt.Errorf("decode frontmatter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, body, nil
}

// Features extracts the `features` list from a metadata map. A missing
// or empty entry yields nil; non-string elements are rejected.
func Features(meta map[string]any) ([]string, error) {
	raw, ok := meta["features"]
	if !ok || raw == nil {
		return nil, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("frontmatter features must be a list, got %T", raw)
	}

	out := make([]string, 0, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("frontmatter features[%d] must be a string, got %T", i, v)
		}
		out = append(out, s)
	}
	return out, nil
}

// Title extracts the `title` string from a metadata map, or "".
func Title(meta map[string]any) string {
	if v, ok := meta["title"].(string); ok {
		return v
	}
	return ""
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
