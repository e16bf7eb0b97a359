package render

import (
	"embed"
	"html/template"
	"io"
	"time"

	"folio/internal/metrics"
	"folio/internal/models"
	"folio/internal/portfolio"
)

// Template names.
const (
	IndexTemplate    = "index.html"
	InsightsTemplate = "insights.html"
	ErrorTemplate    = "error.html"
)

const (
	fullTableID    = "portfolioTable"
	fullTableClass = "table table-striped table-bordered"
	digestClass    = "table table-bordered"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// Table is a rendered HTML table.
type Table struct {
	ID      string
	Class   string
	Columns []string
	Rows    [][]Cell
}

// Summary carries the portfolio totals shown above the full table.
type Summary struct {
	RunID            string
	GeneratedAt      string
	Holdings         int
	TotalMarketValue string
	TotalCostValue   string
	TotalPLDollar    string
	TotalPLPct       string
	TotalPLStyle     template.CSS
}

// IndexPage is the data for the full portfolio view.
type IndexPage struct {
	Summary Summary
	Table   Table
}

// InsightsPage is the data for the insights digest.
type InsightsPage struct {
	Summary       Summary
	Trims         Table
	Buys          Table
	Concentration Table
	Movers        Table
}

// ErrorPage is the data for a failed run.
type ErrorPage struct {
	Status  int
	Code    string
	Message string
}

// FullTable renders every row with P/L and decision coloring.
func FullTable(rows []models.ScoredHolding) Table {
	return newTable(fullTableID, fullTableClass, rows, true)
}

// DigestTable renders rows without coloring, as used by the insights page.
func DigestTable(rows []models.ScoredHolding) Table {
	return newTable("", digestClass, rows, false)
}

func newTable(id, class string, rows []models.ScoredHolding, styled bool) Table {
	t := Table{ID: id, Class: class, Columns: Columns, Rows: make([][]Cell, len(rows))}
	for i, h := range rows {
		t.Rows[i] = FormatRecord(h).Cells(styled)
	}
	return t
}

// NewSummary formats report totals.
func NewSummary(r *portfolio.Report) Summary {
	plPct := metrics.RoundNull(r.TotalPLPct, metrics.DisplayPlaces)
	return Summary{
		RunID:            r.RunID,
		GeneratedAt:      r.GeneratedAt.Format(time.RFC1123),
		Holdings:         len(r.Holdings),
		TotalMarketValue: money(r.TotalMarketValue),
		TotalCostValue:   money(r.TotalCostValue),
		TotalPLDollar:    money(r.TotalPLDollar),
		TotalPLPct:       percent(plPct),
		TotalPLStyle:     PLStyle(plPct),
	}
}

// NewIndexPage builds the full view, sorted by dollar P/L descending.
func NewIndexPage(r *portfolio.Report) IndexPage {
	return IndexPage{
		Summary: NewSummary(r),
		Table:   FullTable(r.SortedByPLDollar()),
	}
}

// NewInsightsPage builds the four digest tables.
func NewInsightsPage(r *portfolio.Report) InsightsPage {
	ins := r.Insights()
	return InsightsPage{
		Summary:       NewSummary(r),
		Trims:         DigestTable(ins.Trims),
		Buys:          DigestTable(ins.Buys),
		Concentration: DigestTable(ins.Concentration),
		Movers:        DigestTable(ins.Movers),
	}
}

// Write executes the named page template into w.
func Write(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}
