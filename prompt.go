package webqa

import (
	"fmt"
	"strings"
)

// BuildPrompt composes the user prompt sent to the LLM. The options block
// is embedded verbatim and may be empty. The grounding context always comes
// last so that a long context never pushes the instructions out of view.
func BuildPrompt(question, options, context string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Answer the following question: %s\n\n", question)
	sb.WriteString("Choose the correct answer option:\n")
	fmt.Fprintf(&sb, "%s\n\n", options)
	sb.WriteString("Format the answer strictly as a JSON object:\n")
	sb.WriteString(`{ "answer": <number of the correct option>, "reasoning": <explanation of the choice>, "sources": [<list of sources used>] }`)
	sb.WriteString("\nIf there are no answer options, set the answer field to null.\n\n")
	sb.WriteString("Use the following information collected from web sources:\n")
	sb.WriteString(context)
	return sb.String()
}
