package formatter

// Report is a computed dashboard report ready for output. Sections feed
// the tabular renderers; Payload is the structured form JSON output and
// the HTTP API hand to a charting frontend.
type Report struct {
	Title    string
	Sections []Section
	Payload  any
}

// Section is one table of a report.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
}
