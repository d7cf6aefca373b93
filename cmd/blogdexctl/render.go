package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	blogdex "github.com/wwwqqqzzz/blog-sub000/pkg/sdk"
)

// printer writes command output, styled only when attached to a terminal.
type printer struct {
	w      io.Writer
	styled bool
}

func (p printer) style(s lipgloss.Style, text string) string {
	if !p.styled || text == "" {
		return text
	}
	return s.Render(text)
}

func (p printer) line(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p printer) header(text string) {
	p.line("%s", p.style(HeaderStyle, text))
}

// highlighted renders text with matched query terms marked. Plain output uses [brackets].
func (p printer) highlighted(eng *blogdex.Engine, text, query string) string {
	var b strings.Builder
	for _, seg := range eng.Highlight(text, query) {
		switch {
		case !seg.Match:
			b.WriteString(seg.Text)
		case p.styled:
			b.WriteString(HighlightStyle.Render(seg.Text))
		default:
			b.WriteString("[" + seg.Text + "]")
		}
	}
	return b.String()
}

func (p printer) postLine(rank int, post blogdex.Post, title string) {
	date := post.Date
	if date == "" {
		date = "undated"
	}
	p.line("%2d. %s  %s  %s", rank, p.style(TitleStyle, title), p.style(DateStyle, date), p.style(LinkStyle, post.Link))
}

func (p printer) tags(tags []blogdex.Tag) string {
	labels := make([]string, len(tags))
	for i, t := range tags {
		labels[i] = "#" + t.Label
	}
	return p.style(TagStyle, strings.Join(labels, " "))
}

func (p printer) searchResults(eng *blogdex.Engine, query string, results []blogdex.SearchResult) {
	if len(results) == 0 {
		p.line("%s", p.style(DimStyle, "no results for "+fmt.Sprintf("%q", query)))
		return
	}
	p.header(fmt.Sprintf("%d result(s) for %q", len(results), query))
	for i, r := range results {
		p.postLine(i+1, r.Post, p.highlighted(eng, r.Post.Title, query))
		p.line("    %s %s  %s  %s",
			p.style(DimStyle, "distance"),
			p.style(ScoreStyle, fmt.Sprintf("%.3f", r.Distance)),
			p.style(DimStyle, strings.Join(r.MatchedFields, ",")),
			p.tags(r.Post.Tags),
		)
		for _, s := range r.Snippets {
			if s.Field == "title" {
				continue
			}
			p.line("    %s %s", p.style(DimStyle, s.Field+":"), p.highlighted(eng, s.Text, query))
		}
	}
}

func (p printer) related(ref blogdex.Post, items []blogdex.Related) {
	p.header("Related to " + ref.Title)
	for i, r := range items {
		p.postLine(i+1, r.Post, r.Post.Title)
		d := r.Score.Detail
		p.line("    %s  %s",
			p.style(ScoreStyle, fmt.Sprintf("%.1f", r.Score.Total)),
			p.style(DimStyle, fmt.Sprintf("tags %.1f  title %.1f  keywords %.1f  recency %.1f",
				d.Tags, d.Title, d.Keywords, d.Recency)),
		)
	}
}

func (p printer) popular(items []blogdex.Popular) {
	p.header("Popular posts")
	for i, r := range items {
		p.postLine(i+1, r.Post, r.Post.Title)
		d := r.Score.Detail
		p.line("    %s  %s",
			p.style(ScoreStyle, fmt.Sprintf("%.1f", r.Score.Total)),
			p.style(DimStyle, fmt.Sprintf("%d views  views %.1f  featured %.1f  recency %.1f",
				r.Views, d.Views, d.Featured, d.Recency)),
		)
	}
}

func (p printer) series(c blogdex.Collection, current string) {
	p.header(fmt.Sprintf("%s (%d posts)", c.Name, len(c.Posts)))
	p.line("%s", p.style(DimStyle, c.Description))
	for i, post := range c.Posts {
		marker := " "
		if post.Link == current {
			marker = "*"
			if p.styled {
				marker = CurrentStyle.String()
			}
		}
		p.line("%s %d. %s  %s", marker, i+1, post.Title, p.style(LinkStyle, post.Link))
	}
}

func (p printer) navigation(nav blogdex.Navigation) {
	p.line("%s", p.style(DimStyle, fmt.Sprintf("post %d of %d, %d%% through", nav.Index+1, nav.Total, nav.Progress)))
	if nav.Prev != nil {
		p.line("  prev: %s  %s", nav.Prev.Title, p.style(LinkStyle, nav.Prev.Link))
	}
	if nav.Next != nil {
		p.line("  next: %s  %s", nav.Next.Title, p.style(LinkStyle, nav.Next.Link))
	}
}

func (p printer) tagList(tags []blogdex.Tag) {
	p.header(fmt.Sprintf("%d tag(s)", len(tags)))
	for _, t := range tags {
		p.line("%s  %s  %s",
			p.style(TagStyle, fmt.Sprintf("%-24s", t.Label)),
			p.style(ScoreStyle, fmt.Sprintf("%3d", t.Count)),
			p.style(LinkStyle, t.Permalink),
		)
	}
}

func (p printer) fail(err error) {
	p.line("%s %v", p.style(ErrorStyle, "error:"), err)
}
