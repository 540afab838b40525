package webqa

// Extractor turns page markup into plain text suitable for an LLM prompt.
type Extractor interface {
	// Extract processes raw HTML and returns its visible text.
	// Returns EINVALID for empty input.
	Extract(html string) (text string, err error)
}
