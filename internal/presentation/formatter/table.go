package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

type TableFormatter struct{}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

func (f *TableFormatter) Format(report *Report) error {
	if report.Title != "" {
		fmt.Println(report.Title)
	}
	for i, section := range report.Sections {
		if i > 0 {
			fmt.Println()
		}
		if section.Title != "" {
			fmt.Println(section.Title)
		}
		f.printSection(section)
	}
	return nil
}

func (f *TableFormatter) printSection(section Section) {
	widths := calculateColumnWidths(section)
	padding := cellPadding(widths)

	printBorder(widths, padding, "top")
	printRow(section.Headers, widths, padding)
	printBorder(widths, padding, "middle")
	for _, row := range section.Rows {
		printRow(row, widths, padding)
	}
	printBorder(widths, padding, "bottom")
}

// calculateColumnWidths sizes each column to its widest cell, measured in
// display cells rather than bytes.
func calculateColumnWidths(section Section) []int {
	widths := make([]int, len(section.Headers))
	for i, header := range section.Headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range section.Rows {
		for i, value := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(value); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

// cellPadding drops cell padding when the terminal is too narrow for the
// padded table, which matters for the 25-column heatmap grid.
func cellPadding(widths []int) int {
	termWidth := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		termWidth = w
	}
	if termWidth == 0 {
		return 1
	}

	padded := 1 // left border
	for _, w := range widths {
		padded += w + 2 + 1 // value, two padding spaces, divider
	}
	if padded <= termWidth {
		return 1
	}
	return 0
}

func printBorder(widths []int, padding int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat("─", width+2*padding))
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

func printRow(values []string, widths []int, padding int) {
	pad := strings.Repeat(" ", padding)
	fmt.Print("│")
	for i, width := range widths {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		fill := width - runewidth.StringWidth(value)
		if fill < 0 {
			fill = 0
		}
		fmt.Print(pad + strings.Repeat(" ", fill) + value + pad + "│")
	}
	fmt.Println()
}
