package content

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Badpoolinator/strata-wiki/internal/render"
)

// typedocNotice is prepended to every generated API-doc page.
const typedocNotice = "> [!NOTE]\n" +
	"Typedoc browsing is in early access and will probably change in the future."

// noDescription substitutes for symbols the dump documents without text.
const noDescription = "*No description provided.*"

// typedocMarkdown synthesizes the Markdown document for one namespace.
func typedocMarkdown(project *TypedocProject, name string, ns *TypedocNamespace) string {
	out := []string{typedocNotice, "# " + name}

	if ns.Source != nil && ns.Source.URL != "" {
		out = append(out, fmt.Sprintf("[View Source](%s)", ns.Source.URL))
	}
	if ns.Comment.Description != "" {
		out = append(out, ns.Comment.Description)
	}

	if len(ns.Functions) > 0 {
		out = append(out, "## Functions")
		for _, fn := range ns.Functions {
			out = append(out, functionMarkdown(project, name, fn)...)
		}
	}

	if len(ns.Variables) > 0 {
		out = append(out, "## Variables")
		rows := make([]tableRow, 0, len(ns.Variables))
		for _, v := range ns.Variables {
			rows = append(rows, tableRow{
				name: v.Name,
				typ:  v.Type,
				desc: v.Comment.Description,
			})
		}
		out = append(out, strings.Join(symbolTable(project, rows), "\n"))
	}

	return strings.Join(out, "\n\n")
}

func functionMarkdown(project *TypedocProject, namespace string, fn TypedocFunction) []string {
	if len(fn.Signatures) == 0 {
		return nil
	}
	sig := fn.Signatures[0]

	out := []string{"### " + sig.Name}

	if text, ok := sig.Comment.Deprecated(); ok {
		if text == "" {
			text = "Avoid using this function."
		}
		out = append(out, "> [!CAUTION]\n> DEPRECATED: "+text)
	}

	params := make([]string, 0, len(sig.Parameters))
	for _, p := range sig.Parameters {
		rendered := p.Name
		if p.Rest {
			rendered = "..." + rendered
		}
		if p.Optional {
			rendered += "?"
		}
		params = append(params, rendered+": "+project.cleanType(p.Type.String()))
	}
	out = append(out, fmt.Sprintf("```ts\n%s.%s(%s): %s\n```",
		namespace, fn.Name, strings.Join(params, ", "), project.cleanType(sig.ReturnType.String())))

	desc := sig.Comment.Description
	if desc == "" {
		desc = noDescription
		slog.Debug("Documented function has no description",
			slog.String("function", sig.Name),
			slog.String("anchor", namespace+"#"+render.Urlify(sig.Name)))
	}
	out = append(out, desc)

	if examples := sig.Comment.Examples(); len(examples) > 0 {
		header := "> #### Example"
		if len(examples) > 1 {
			header += "s"
		}
		lines := []string{header}
		for _, example := range examples {
			lines = append(lines, strings.Split(example, "\n")...)
		}
		out = append(out, strings.Join(lines, "\n> "))
	}

	if len(sig.Parameters) > 0 {
		rows := make([]tableRow, 0, len(sig.Parameters))
		for _, p := range sig.Parameters {
			name := p.Name
			if p.Rest {
				name = "..." + name
			}
			rows = append(rows, tableRow{
				name:     name,
				typ:      p.Type,
				optional: p.Optional,
				desc:     p.Comment.Description,
			})
		}
		header := "> #### Parameter"
		if len(sig.Parameters) > 1 {
			header += "s"
		}
		lines := append([]string{header}, symbolTable(project, rows)...)
		out = append(out, strings.Join(lines, "\n> "))
	}

	if see := sig.Comment.See(); len(see) > 0 {
		lines := []string{"> #### See also"}
		for _, ref := range see {
			lines = append(lines, "- "+ref)
		}
		out = append(out, strings.Join(lines, "\n> "))
	}

	return out
}

type tableRow struct {
	name     string
	typ      TypedocTypeRef
	optional bool
	desc     string
}

// symbolTable renders a Name/Type/Description Markdown table.
// Non-intrinsic types are wrapped in backticks.
func symbolTable(project *TypedocProject, rows []tableRow) []string {
	out := []string{
		"| Name | Type | Description |",
		"|---|---|---|",
	}

	for _, row := range rows {
		typ := project.cleanType(strings.ReplaceAll(row.typ.String(), "|", "\\|"))
		if row.typ.Kind != KindIntrinsic {
			typ = "`" + typ + "`"
		}
		optional := ""
		if row.optional {
			optional = " (optional)"
		}
		desc := row.desc
		if desc == "" {
			desc = noDescription
		}
		out = append(out, fmt.Sprintf("| `%s` | %s%s | %s |", row.name, typ, optional, desc))
	}

	return out
}

// typedocFeatures derives the feature requirement for a namespace from
// its source path: "shared" (or no source) means available everywhere,
// anything else requires the upper-cased path tag.
func typedocFeatures(ns *TypedocNamespace) []string {
	if ns.Source == nil || ns.Source.Path == "" || ns.Source.Path == typedocSharedPath {
		return nil
	}
	return []string{strings.ToUpper(ns.Source.Path)}
}

// typedocSharedPath is the source path tag meaning "supported everywhere".
const typedocSharedPath = "shared"
