package webqa

import "strings"

// OptionsMarker separates the question from an enumerated options block.
const OptionsMarker = "\n1."

// ParsedQuery is a query split into its bare question and options block.
type ParsedQuery struct {
	Question string
	Options  string
}

// HasOptions reports whether the query carried an options block.
func (q ParsedQuery) HasOptions() bool {
	return q.Options != ""
}

// ParseQuery splits text on the first occurrence of OptionsMarker.
// Text before the marker is the question and text after it is the options
// block; the marker itself belongs to neither. Without a marker the whole
// text is the question.
func ParseQuery(text string) ParsedQuery {
	question, options, found := strings.Cut(text, OptionsMarker)
	if !found {
		return ParsedQuery{Question: text}
	}
	return ParsedQuery{Question: question, Options: options}
}
