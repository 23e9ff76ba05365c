package render

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/innings/internal/domain/types"
	"github.com/okian/innings/internal/domain/views"
)

const (
	defaultBarWidth = 24
	notAvailable    = "N/A"
)

// Renderer turns query results into boxed text tables.
type Renderer struct {
	out      io.Writer
	theme    Theme
	lang     language.Tag
	barWidth int

	styles  styles
	printer *message.Printer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme overrides the palette.
func WithTheme(t Theme) Option {
	return func(r *Renderer) { r.theme = t }
}

// WithLanguage selects the locale used for number grouping.
func WithLanguage(tag language.Tag) Option {
	return func(r *Renderer) { r.lang = tag }
}

// WithBarWidth sets the width of the longest bar; zero hides bars.
func WithBarWidth(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.barWidth = n
		}
	}
}

// New creates a Renderer whose color profile follows out.
func New(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		out:      out,
		theme:    DefaultTheme(),
		lang:     language.English,
		barWidth: defaultBarWidth,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.styles = newStyles(out, r.theme)
	r.printer = message.NewPrinter(r.lang)
	return r
}

// Number formats n with locale digit grouping.
func (r *Renderer) Number(n int) string {
	return r.printer.Sprintf("%d", n)
}

// Percentage formats a team's win percentage, or N/A when undefined.
func (r *Renderer) Percentage(s types.TeamSummary) string {
	pct, err := s.WinPercentage()
	if errors.Is(err, types.ErrDivisionUndefined) {
		return notAvailable
	}
	return r.printer.Sprintf("%.2f%%", pct)
}

// Summary renders the headline numbers.
func (r *Renderer) Summary(s types.DatasetSummary) string {
	rows := [][]string{
		{"Matches", r.Number(s.TotalMatches)},
		{"Players", r.Number(s.UniquePlayers)},
		{"Seasons", r.Number(s.Seasons)},
		{"Teams", r.Number(s.Teams)},
	}
	return r.section("Dataset Summary", r.table(nil, rows, []bool{false, true}, nil))
}

// View renders one view result.
func (r *Renderer) View(res views.Result) string {
	switch res.Kind {
	case views.KindSeries:
		rows := make([][]string, len(res.Series))
		values := make([]int, len(res.Series))
		for i, p := range res.Series {
			rows[i] = []string{p.Season, r.Number(p.Value)}
			values[i] = p.Value
		}
		return r.section(res.Title, r.table([]string{"Season", "Matches"}, rows, []bool{false, true}, values))
	case views.KindRanking:
		rows := make([][]string, len(res.Ranking))
		values := make([]int, len(res.Ranking))
		for i, e := range res.Ranking {
			rows[i] = []string{r.Number(e.Rank), e.ID, r.Number(e.Total)}
			values[i] = e.Total
		}
		return r.section(res.Title, r.table([]string{"#", "Name", "Total"}, rows, []bool{true, false, true}, values))
	case views.KindMatches:
		rows := make([][]string, len(res.Matches))
		for i, m := range res.Matches {
			winner := m.Winner
			if !m.HasResult() {
				winner = r.styles.muted.Render("no result")
			}
			rows[i] = []string{m.ID, m.Season, m.Team1, m.Team2, winner, m.Venue}
		}
		return r.section(res.Title, r.table(
			[]string{"ID", "Season", "Team 1", "Team 2", "Winner", "Venue"},
			rows, []bool{true, false, false, false, false, false}, nil))
	default:
		return r.section(res.Title, r.styles.muted.Render("(nothing to show)"))
	}
}

// Team renders one team's record.
func (r *Renderer) Team(s types.TeamSummary) string {
	pct := r.Percentage(s)
	if pct == notAvailable {
		pct = r.styles.warning.Render(pct)
	}
	head := r.table(nil, [][]string{
		{"Played", r.Number(s.MatchesPlayed)},
		{"Won", r.Number(s.Wins)},
		{"Lost", r.Number(s.Losses)},
		{"No result", r.Number(s.NoResults)},
		{"Win %", pct},
	}, []bool{false, true}, nil)

	if len(s.WinsBySeason) == 0 {
		return r.section(s.Team, head)
	}
	rows := make([][]string, len(s.WinsBySeason))
	values := make([]int, len(s.WinsBySeason))
	for i, p := range s.WinsBySeason {
		rows[i] = []string{p.Season, r.Number(p.Value)}
		values[i] = p.Value
	}
	return r.section(s.Team, head+"\n\n"+r.table([]string{"Season", "Wins"}, rows, []bool{false, true}, values))
}

// Write renders blocks to the output, separated by blank lines.
func (r *Renderer) Write(blocks ...string) error {
	_, err := io.WriteString(r.out, strings.Join(blocks, "\n\n")+"\n")
	return err
}

func (r *Renderer) section(title, body string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		r.styles.header.Render(strings.ToUpper(title)),
		r.styles.box.Render(body),
	)
}

// table lays out rows in aligned columns. numeric marks right-aligned
// columns; values, when set, draws a bar after each row scaled to the max.
func (r *Renderer) table(headers []string, rows [][]string, numeric []bool, values []int) string {
	if len(rows) == 0 {
		return r.styles.muted.Render("(no rows)")
	}

	widths := make([]int, len(numeric))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	peak := 0
	for _, v := range values {
		peak = max(peak, v)
	}

	var sb strings.Builder
	line := func(cells []string, style *lipgloss.Style) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			if numeric[i] {
				parts[i] = padLeft(c, widths[i])
			} else {
				parts[i] = padRight(c, widths[i])
			}
			if style != nil {
				parts[i] = style.Render(parts[i])
			}
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	if headers != nil {
		line(headers, &r.styles.column)
		sb.WriteString("\n")
	}
	for i, row := range rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		line(row, nil)
		if values != nil && r.barWidth > 0 && peak > 0 {
			n := values[i] * r.barWidth / peak
			if n > 0 {
				sb.WriteString("  " + r.styles.bar.Render(strings.Repeat("█", n)))
			}
		}
	}
	return sb.String()
}
