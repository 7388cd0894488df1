package formatter

import (
	"encoding/csv"
	"os"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(report *Report) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	for _, section := range report.Sections {
		headers := section.Headers
		if section.Title != "" {
			// Prefix each section's rows with its title so multi-grid
			// reports stay distinguishable in one CSV stream.
			headers = append([]string{"Section"}, headers...)
		}
		if err := w.Write(headers); err != nil {
			return err
		}
		for _, row := range section.Rows {
			record := row
			if section.Title != "" {
				record = append([]string{section.Title}, row...)
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	return nil
}
