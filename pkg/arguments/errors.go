package arguments

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Kind classifies a configuration failure.
type Kind int

const (
	// KindGeneral covers unknown flags, duplicate flags and a missing
	// operation.
	KindGeneral Kind = iota
	// KindParse is a malformed token, reported with its row and column.
	KindParse
	// KindArgument is a well formed value that is missing or out of range.
	KindArgument
)

func (k Kind) String() string {
	switch k {
	case KindGeneral:
		return "general"
	case KindParse:
		return "parse"
	case KindArgument:
		return "argument"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// defaultProgramName stands in for argv[0] when it is missing.
const defaultProgramName = "onesamp"

// Error is a fatal configuration failure. Template's first verb is always
// the program name; Args fill the rest.
type Error struct {
	Kind     Kind
	Flag     byte
	Row      int
	Column   int
	Program  string
	Template string
	Args     []interface{}

	// Recommended is set on θ errors when a usable mutation-rate range
	// exists.
	Recommended *Range[float64]
}

// Message renders the template.
func (e *Error) Message() string {
	program := e.Program
	if program == "" {
		program = defaultProgramName
	}
	return fmt.Sprintf(e.Template, append([]interface{}{program}, e.Args...)...)
}

func (e *Error) Error() string {
	if e.Kind == KindParse {
		return fmt.Sprintf("line %d, column %d: %s", e.Row, e.Column, e.Message())
	}
	return e.Message()
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Reporter writes errors in the ONeSAMP format.
type Reporter struct {
	Out     io.Writer
	NoColor bool
}

var colorHeader = color.New(color.FgRed, color.Bold)

// Report writes err to w using fatih/color's global color setting.
func Report(w io.Writer, err error) {
	Reporter{Out: w, NoColor: color.NoColor}.Report(err)
}

// Report writes the header, the message, the README hint for argument
// errors and the trailing "Exiting..." line.
func (r Reporter) Report(err error) {
	if err == nil {
		return
	}

	var e *Error
	if !errors.As(err, &e) {
		r.header("ONESAMP ERROR")
		_, _ = fmt.Fprintf(r.Out, "%v\n", err)
		_, _ = fmt.Fprint(r.Out, "\nExiting...\n")
		return
	}

	switch e.Kind {
	case KindParse:
		r.header(fmt.Sprintf("ONESAMP PARSE ERROR, line %d, column %d", e.Row, e.Column))
		_, _ = fmt.Fprintln(r.Out, e.Message())
	case KindArgument:
		r.header("ONESAMP ERROR")
		_, _ = fmt.Fprintln(r.Out, e.Message())
		_, _ = fmt.Fprint(r.Out, "\nError reading inputs. Please see the README for details.\n")
	default:
		r.header("ONESAMP ERROR")
		_, _ = fmt.Fprintln(r.Out, e.Message())
	}
	_, _ = fmt.Fprint(r.Out, "\nExiting...\n")
}

func (r Reporter) header(text string) {
	if r.NoColor {
		_, _ = fmt.Fprintln(r.Out, text)
		return
	}
	_, _ = colorHeader.Fprintln(r.Out, text)
}
