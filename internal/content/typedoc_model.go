package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Typedoc dump model. This mirrors the subset of the generated
// typedoc.json structure the wiki consumes: namespaces (recursively),
// their functions, signatures, parameters, and variables. Everything
// else in the dump is ignored.

// TypedocProject is a parsed typedoc.json dump with its namespaces
// flattened under fully-qualified dotted names.
type TypedocProject struct {
	Name       string              `json:"name"`
	Namespaces []*TypedocNamespace `json:"namespaces"`

	order  []string
	byName map[string]*TypedocNamespace
}

// TypedocNamespace is one documented namespace.
type TypedocNamespace struct {
	Name       string              `json:"name"`
	Comment    TypedocComment      `json:"comment"`
	Source     *TypedocSourceRef   `json:"source"`
	Namespaces []*TypedocNamespace `json:"namespaces"`
	Functions  []TypedocFunction   `json:"functions"`
	Variables  []TypedocVariable   `json:"variables"`
}

// TypedocSourceRef locates a namespace in the originating codebase.
// Path carries the per-game availability tag ("shared" means all games).
type TypedocSourceRef struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// TypedocComment carries a description plus tagged blocks
// (@deprecated, @example, @see).
type TypedocComment struct {
	Description  string            `json:"description"`
	BlockTags    []TypedocBlockTag `json:"blockTags"`
	ModifierTags []string          `json:"modifierTags"`
}

// TypedocBlockTag is one tagged comment block.
type TypedocBlockTag struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Deprecated returns the deprecation notice text and whether the
// symbol is deprecated at all.
func (c TypedocComment) Deprecated() (string, bool) {
	for _, tag := range c.BlockTags {
		if tag.Name == "deprecated" {
			return tag.Text, true
		}
	}
	for _, tag := range c.ModifierTags {
		if tag == "deprecated" {
			return "", true
		}
	}
	return "", false
}

// Examples returns the texts of all @example blocks.
func (c TypedocComment) Examples() []string {
	var out []string
	for _, tag := range c.BlockTags {
		if tag.Name == "example" {
			out = append(out, tag.Text)
		}
	}
	return out
}

// See returns the texts of all @see blocks.
func (c TypedocComment) See() []string {
	var out []string
	for _, tag := range c.BlockTags {
		if tag.Name == "see" {
			out = append(out, tag.Text)
		}
	}
	return out
}

// TypedocFunction is a documented function with its overload signatures.
type TypedocFunction struct {
	Name       string             `json:"name"`
	Signatures []TypedocSignature `json:"signatures"`
}

// TypedocSignature is one call signature.
type TypedocSignature struct {
	Name       string             `json:"name"`
	Comment    TypedocComment     `json:"comment"`
	Parameters []TypedocParameter `json:"parameters"`
	ReturnType TypedocTypeRef     `json:"returnType"`
}

// TypedocParameter is one signature parameter.
type TypedocParameter struct {
	Name     string         `json:"name"`
	Comment  TypedocComment `json:"comment"`
	Optional bool           `json:"optional"`
	Rest     bool           `json:"rest"`
	Type     TypedocTypeRef `json:"type"`
}

// TypedocVariable is a documented namespace-level variable.
type TypedocVariable struct {
	Name    string         `json:"name"`
	Comment TypedocComment `json:"comment"`
	Type    TypedocTypeRef `json:"type"`
}

// TypedocTypeRef is a flattened type reference. Intrinsic types carry
// the type name in Type; reference types carry it in Name.
type TypedocTypeRef struct {
	Kind string `json:"kind"`
	Type string `json:"type,omitempty"`
	Name string `json:"name,omitempty"`
}

// KindIntrinsic marks primitive types (string, number, boolean, ...).
const KindIntrinsic = "intrinsic"

func (t TypedocTypeRef) String() string {
	if t.Type != "" {
		return t.Type
	}
	if t.Name != "" {
		return t.Name
	}
	return t.Kind
}

// parseTypedocProject decodes a typedoc.json dump and flattens its
// namespace tree under dotted names ("game.ents.createEntity" style).
func parseTypedocProject(raw []byte) (*TypedocProject, error) {
	project := &TypedocProject{}
	if err := json.Unmarshal(raw, project); err != nil {
		return nil, fmt.Errorf("parse typedoc dump: %w", err)
	}

	project.byName = map[string]*TypedocNamespace{}
	var walk func(ns *TypedocNamespace, prefix string)
	walk = func(ns *TypedocNamespace, prefix string) {
		name := prefix + ns.Name
		project.order = append(project.order, name)
		project.byName[name] = ns
		for _, child := range ns.Namespaces {
			walk(child, name+".")
		}
	}
	for _, ns := range project.Namespaces {
		walk(ns, "")
	}

	return project, nil
}

// Namespace looks up a namespace by fully-qualified dotted name.
func (p *TypedocProject) Namespace(name string) (*TypedocNamespace, bool) {
	ns, ok := p.byName[name]
	return ns, ok
}

// NamespaceNames returns every dotted namespace name in registration
// order (parents before their children).
func (p *TypedocProject) NamespaceNames() []string {
	return p.order
}

// cleanType strips project-internal prefixes from a rendered type name.
func (p *TypedocProject) cleanType(t string) string {
	t = strings.ReplaceAll(t, p.Name+".", "")
	return strings.ReplaceAll(t, "typescript.", "")
}
