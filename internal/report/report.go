// ABOUTME: Renders gateway lists as Markdown tables and converts them to HTML
// ABOUTME: HTML output goes through goldmark with the GFM table extension

// Package report renders the gateway lists of a lists.Store for humans.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/2389/gateway-editor/internal/codec"
	"github.com/2389/gateway-editor/internal/lists"
)

// Markdown renders one section per game. With no games given, every
// supported game is included.
func Markdown(store *lists.Store, games ...codec.GameID) string {
	if len(games) == 0 {
		games = codec.Games
	}

	var b strings.Builder
	b.WriteString("# Battle.net Gateways\n")
	for _, g := range games {
		fmt.Fprintf(&b, "\n## %s\n\n", g.Title())

		switch {
		case !store.HasData(g) && store.Len(g) == 0:
			b.WriteString("_No preferences found._\n")
			continue
		case store.Len(g) == 0:
			b.WriteString("_No gateways._\n")
			continue
		}

		b.WriteString("| # | Name | Address | Default |\n")
		b.WriteString("| ---: | --- | --- | :---: |\n")
		for i, e := range store.List(g) {
			def := ""
			if e.Default {
				def = "✓"
			}
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i, cell(e.Name), cell(e.Address), def)
		}
		if store.Changed(g) {
			b.WriteString("\n_Unsaved changes._\n")
		}
	}
	return b.String()
}

// HTML renders the Markdown report to an HTML fragment.
func HTML(store *lists.Store, games ...codec.GameID) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(store, games...)), &buf); err != nil {
		return "", fmt.Errorf("converting report: %w", err)
	}
	return buf.String(), nil
}

var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"<", "&lt;",
	">", "&gt;",
)

func cell(s string) string {
	return cellEscaper.Replace(s)
}
