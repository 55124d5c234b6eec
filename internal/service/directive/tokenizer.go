package directive

import (
	"regexp"
	"strings"
)

var (
	tagPattern       = regexp.MustCompile(`<([A-Za-z_]+)\s+([^>]+)>`)
	strictTagPattern = regexp.MustCompile(`<([A-Za-z_]+)\s+(\d+)>`)
)

type SegmentType int

const (
	SegmentText SegmentType = iota
	SegmentDirective
)

// Directive is one parsed `<name value>` tag.
type Directive struct {
	Kind  Kind
	Name  string // lower-cased tag name, kept for unknown kinds
	Value Value
}

// Segment is either a text span to speak or a directive to dispatch.
// Raw is the exact source span, Text the trimmed text of a text segment.
type Segment struct {
	Type      SegmentType
	Text      string
	Directive Directive
	Raw       string
}

// Tokenize splits a reply into ordered text and directive segments.
// Whitespace-only text spans are dropped.
func Tokenize(reply string) []Segment {
	return tokenize(reply, tagPattern)
}

// TokenizeStrict only recognizes tags whose value is an unsigned integer.
// Everything else, including tags with text values, stays in the text spans.
func TokenizeStrict(reply string) []Segment {
	return tokenize(reply, strictTagPattern)
}

func tokenize(reply string, pattern *regexp.Regexp) []Segment {
	var segments []Segment
	last := 0

	appendText := func(raw string) {
		if text := strings.TrimSpace(raw); text != "" {
			segments = append(segments, Segment{Type: SegmentText, Text: text, Raw: raw})
		}
	}

	for _, m := range pattern.FindAllStringSubmatchIndex(reply, -1) {
		start, end := m[0], m[1]
		appendText(reply[last:start])

		name := strings.ToLower(reply[m[2]:m[3]])
		segments = append(segments, Segment{
			Type: SegmentDirective,
			Directive: Directive{
				Kind:  ParseKind(name),
				Name:  name,
				Value: ParseValue(reply[m[4]:m[5]]),
			},
			Raw: reply[start:end],
		})
		last = end
	}
	appendText(reply[last:])

	return segments
}

// Strip removes every strict tag from the reply and returns the remaining
// text together with the extracted directives.
func Strip(reply string) (string, []Directive) {
	var directives []Directive
	for _, seg := range TokenizeStrict(reply) {
		if seg.Type == SegmentDirective {
			directives = append(directives, seg.Directive)
		}
	}
	cleaned := strings.TrimSpace(strictTagPattern.ReplaceAllString(reply, ""))
	return cleaned, directives
}
