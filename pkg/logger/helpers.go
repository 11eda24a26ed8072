package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Icons and symbols for different log types
const (
	IconSuccess = "✅"
	IconConfig  = "⚙️"
	IconDot     = "•"
)

var (
	colorSection    = color.New(color.FgCyan, color.Bold)
	colorSubSection = color.New(color.FgHiBlack)
	colorKey        = color.New(color.FgCyan)
)

// Success logs a success message with a green checkmark
func Success(args ...interface{}) {
	message := fmt.Sprint(args...)
	defaultLogger.Info(IconSuccess + " " + message)
}

// Successf logs a formatted success message
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Configf logs a configuration message with a gear icon
func Configf(format string, args ...interface{}) {
	defaultLogger.Info(IconConfig + " " + fmt.Sprintf(format, args...))
}

// defaultOutput returns the writer and color setting of the global logger
func defaultOutput() (io.Writer, bool) {
	l, ok := defaultLogger.(*logger)
	if !ok {
		return io.Discard, true
	}
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	return l.out.writer, l.out.noColor
}

// LogSection creates a visual section separator
func LogSection(title string) {
	w, noColor := defaultOutput()
	line := strings.Repeat("=", 50)

	if noColor {
		_, _ = fmt.Fprintf(w, "%s\n%s\n%s\n", line, title, line)
		return
	}
	_, _ = colorSection.Fprintf(w, "%s\n%s\n%s\n", line, title, line)
}

// LogSubSection creates a visual subsection separator
func LogSubSection(title string) {
	w, noColor := defaultOutput()
	line := strings.Repeat("-", 40)

	if noColor {
		_, _ = fmt.Fprintf(w, "%s\n%s\n%s\n", line, title, line)
		return
	}
	_, _ = colorSubSection.Fprintf(w, "%s\n%s\n%s\n", line, title, line)
}

// LogList logs a list of items with bullets
func LogList(title string, items []string) {
	Info(title)
	w, _ := defaultOutput()
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "  %s %s\n", IconDot, item)
	}
}

// LogKeyValue logs a key-value pair with nice formatting
func LogKeyValue(key string, value interface{}) {
	w, noColor := defaultOutput()
	if noColor {
		_, _ = fmt.Fprintf(w, "%s: %v\n", key, value)
		return
	}
	_, _ = fmt.Fprintf(w, "%s %v\n", colorKey.Sprint(key+":"), value)
}

// Table represents a simple table for logging
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a new table
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    [][]string{},
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, values)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Print writes the table to w
func (t *Table) Print(w io.Writer) {
	if len(t.headers) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}

	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, h := range t.headers {
		_, _ = fmt.Fprintf(w, "%-*s  ", widths[i], h)
	}
	_, _ = fmt.Fprintln(w)

	for i := range t.headers {
		_, _ = fmt.Fprint(w, strings.Repeat("-", widths[i])+"  ")
	}
	_, _ = fmt.Fprintln(w)

	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				_, _ = fmt.Fprintf(w, "%-*s  ", widths[i], cell)
			}
		}
		_, _ = fmt.Fprintln(w)
	}
}
