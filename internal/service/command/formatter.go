package command

import (
	"fmt"
	"strings"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/internal/service/executor"
)

// Formatter renders command output as Markdown. Telegram converts it to HTML,
// the console prints it as is.
type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Title(title string) string {
	return "🩺 **" + title + "**\n"
}

func (f *Formatter) Done(message string) string {
	return "✅ " + message + "\n"
}

func (f *Formatter) Failure(command string, err error) string {
	return fmt.Sprintf("❌ **/%s failed**: %v\n", command, err)
}

func (f *Formatter) Field(name, value string) string {
	return fmt.Sprintf("%-12s `%s`\n", name, value)
}

func (f *Formatter) Usage(syntax string, examples ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Usage**: `%s`\n", syntax)
	for _, ex := range examples {
		fmt.Fprintf(&sb, "  `%s`\n", ex)
	}
	return sb.String()
}

func (f *Formatter) Bullets(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("• " + item + "\n")
	}
	return sb.String()
}

func (f *Formatter) Hint(text string) string {
	return "_" + text + "_\n"
}

// Join separates non-empty blocks with a blank line.
func (f *Formatter) Join(blocks ...string) string {
	out := blocks[:0:0]
	for _, b := range blocks {
		if b != "" {
			out = append(out, b)
		}
	}
	return strings.Join(out, "\n")
}

// Patient lists the record fields using the names the robot speaks.
func (f *Formatter) Patient(rec core.PatientRecord) string {
	return f.Join(
		f.Title(rec.Name),
		f.Field("edad", rec.Age)+
			f.Field("peso", rec.Weight)+
			f.Field("altura", rec.Height)+
			f.Field("temperatura", rec.Temperature)+
			f.Field("sexo", rec.Sex)+
			f.Field("comentario", rec.Notes),
	)
}

// Report summarizes one executed reply, one line per directive.
func (f *Formatter) Report(r executor.Report) string {
	var lines []string
	for _, d := range r.Executed {
		lines = append(lines, fmt.Sprintf("ok <%s %s>", d.Name, d.Value.Raw))
	}
	for _, d := range r.Unknown {
		lines = append(lines, fmt.Sprintf("unknown <%s %s>", d.Name, d.Value.Raw))
	}
	for _, fl := range r.Failed {
		lines = append(lines, fmt.Sprintf("failed <%s %s>: %v", fl.Directive.Name, fl.Directive.Value.Raw, fl.Err))
	}
	if r.Interrupted != nil {
		lines = append(lines, fmt.Sprintf("interrupted, %d segment(s) skipped", r.Skipped))
	}
	return f.Join(
		f.Done(fmt.Sprintf("Spoken %d segment(s)", len(r.Spoken))),
		f.Bullets(lines),
	)
}
