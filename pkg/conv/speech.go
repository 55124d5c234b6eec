package conv

import (
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown/html"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy = bluemonday.StrictPolicy()

	// A leading "2." is a spoken number, not an ordered list.
	orderedMarker = regexp.MustCompile(`(?m)^([ \t]*\d+)([.)])(\s)`)
)

// SpeechText turns a markdown fragment into plain text fit for a voice:
// emphasis markers, list bullets and headings are removed so the synthesizer
// does not read them out loud.
func SpeechText(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	md = orderedMarker.ReplaceAllString(md, `$1\$2$3`)
	rendered := render([]byte(md), html.FlagsNone)

	// Turn block ends into sentence breaks before the tags disappear.
	withBreaks := strings.NewReplacer("</li>", ", </li>", "</p>", " </p>", "</h1>", ". </h1>", "</h2>", ". </h2>", "</h3>", ". </h3>").
		Replace(string(rendered))

	stripped := stripPolicy.Sanitize(withBreaks)

	text, err := html2text.FromString(stripped, html2text.Options{OmitLinks: true})
	if err != nil {
		text = stripped
	}

	text = strings.Join(strings.Fields(text), " ")
	text = strings.TrimSuffix(text, ",")
	return strings.TrimSpace(strings.ReplaceAll(text, " ,", ","))
}
