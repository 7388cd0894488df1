package formatter

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fnErr := fn()
	require.NoError(t, w.Close())
	require.NoError(t, fnErr)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func sampleReport() *Report {
	return &Report{
		Title: "Overview",
		Sections: []Section{{
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Total calls", "42"},
				{"Total minutes", "1234.5"},
			},
		}},
		Payload: map[string]any{"totalCalls": 42},
	}
}

func TestCalculateColumnWidths(t *testing.T) {
	section := Section{
		Headers: []string{"Day", "00"},
		Rows: [][]string{
			{"Wednesday", "120.5"},
			{"Mon", "7"},
		},
	}
	assert.Equal(t, []int{9, 5}, calculateColumnWidths(section))
}

func TestTableFormat(t *testing.T) {
	out := captureStdout(t, func() error {
		return NewTableFormatter().Format(sampleReport())
	})

	assert.Contains(t, out, "Overview")
	assert.Contains(t, out, "Metric")
	assert.Contains(t, out, "Total calls")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "┘")
}

func TestJSONFormatEncodesPayload(t *testing.T) {
	out := captureStdout(t, func() error {
		return NewJSONFormatter().Format(sampleReport())
	})
	assert.Contains(t, out, `"totalCalls": 42`)
	assert.NotContains(t, out, "Sections")
}

func TestCSVFormat(t *testing.T) {
	out := captureStdout(t, func() error {
		return NewCSVFormatter().Format(sampleReport())
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Metric,Value", lines[0])
	assert.Equal(t, "Total calls,42", lines[1])
}

func TestCSVFormatPrefixesTitledSections(t *testing.T) {
	report := &Report{
		Sections: []Section{
			{Title: "Local", Headers: []string{"Day"}, Rows: [][]string{{"Sunday"}}},
			{Title: "Remote", Headers: []string{"Day"}, Rows: [][]string{{"Sunday"}}},
		},
	}
	out := captureStdout(t, func() error {
		return NewCSVFormatter().Format(report)
	})

	assert.Contains(t, out, "Section,Day")
	assert.Contains(t, out, "Local,Sunday")
	assert.Contains(t, out, "Remote,Sunday")
}
