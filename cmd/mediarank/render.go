package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/search"
)

// Column widths in terminal cells.
const (
	rankWidth   = 4
	scoreWidth  = 6
	titleWidth  = 36
	yearWidth   = 6
	typeWidth   = 12
	sourceWidth = 10
)

type tableStyles struct {
	header lipgloss.Style
	score  lipgloss.Style
	title  lipgloss.Style
	dim    lipgloss.Style
	hint   lipgloss.Style
}

// newTableStyles binds the styles to w so color is only emitted on terminals.
func newTableStyles(w io.Writer) tableStyles {
	r := lipgloss.NewRenderer(w)
	return tableStyles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		score:  r.NewStyle().Foreground(lipgloss.Color("2")),
		title:  r.NewStyle().Foreground(lipgloss.Color("15")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("8")),
		hint:   r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// fitCell truncates or pads s to exactly width terminal cells.
// CJK titles take two cells per rune.
func fitCell(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

func renderResults(w io.Writer, result *search.Result) {
	st := newTableStyles(w)

	if len(result.Items) == 0 {
		fmt.Fprintf(w, "No results for %q (%d candidates)\n", result.Query, result.Candidates)
		renderSuggestions(w, st, result.Suggestions)
		return
	}

	header := strings.Join([]string{
		fitCell("#", rankWidth),
		fitCell("Score", scoreWidth),
		fitCell("Title", titleWidth),
		fitCell("Year", yearWidth),
		fitCell("Type", typeWidth),
		fitCell("Source", sourceWidth),
	}, " ")
	fmt.Fprintln(w, st.header.Render(strings.TrimRight(header, " ")))

	for i, item := range result.Items {
		row := []string{
			st.dim.Render(fitCell(strconv.Itoa(i+1), rankWidth)),
			st.score.Render(fitCell(strconv.Itoa(item.RelevanceScore), scoreWidth)),
			st.title.Render(fitCell(item.Title, titleWidth)),
			fitCell(item.Year, yearWidth),
			fitCell(item.TypeName, typeWidth),
			st.dim.Render(strings.TrimRight(fitCell(item.Source, sourceWidth), " ")),
		}
		fmt.Fprintln(w, strings.Join(row, " "))
	}

	fmt.Fprintln(w, st.dim.Render(fmt.Sprintf("%d results from %d candidates", len(result.Items), result.Candidates)))
	renderSuggestions(w, st, result.Suggestions)
}

func renderSuggestions(w io.Writer, st tableStyles, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintln(w, st.hint.Render("Suggestions:"))
	for _, s := range suggestions {
		fmt.Fprintln(w, "  - "+s)
	}
}

func renderSnapshot(w io.Writer, snapshot *core.SourceQualitySnapshot) {
	st := newTableStyles(w)
	fmt.Fprintln(w, st.header.Render(fitCell("Source", sourceWidth)+" Bonus"))
	for _, source := range snapshot.Sources() {
		fmt.Fprintf(w, "%s %s\n", fitCell(source, sourceWidth), st.score.Render(strconv.FormatFloat(snapshot.Bonuses[source], 'g', -1, 64)))
	}
	fmt.Fprintln(w, st.dim.Render("Updated "+snapshot.UpdatedAt.Format("2006-01-02 15:04:05 MST")))
}
