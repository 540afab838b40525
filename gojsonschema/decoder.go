// Package gojsonschema provides a webqa.AnswerDecoder that validates LLM
// replies against a JSON schema before decoding them.
package gojsonschema

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fwojciec/webqa"
	"github.com/xeipuuv/gojsonschema"
)

// AnswerSchema is the JSON schema an LLM reply must satisfy.
// Numeric strings are accepted for answer because models occasionally quote
// the option number. Extra keys such as sources are ignored.
const AnswerSchema = `{
	"type": "object",
	"properties": {
		"answer": {
			"type": ["integer", "string", "null"],
			"pattern": "^\\s*[0-9]+\\s*$"
		},
		"reasoning": {"type": "string"}
	},
	"required": ["reasoning"]
}`

// Ensure AnswerDecoder implements webqa.AnswerDecoder at compile time.
var _ webqa.AnswerDecoder = (*AnswerDecoder)(nil)

// AnswerDecoder decodes LLM replies into webqa.AgentAnswer values.
// AnswerDecoder is safe for concurrent use.
type AnswerDecoder struct {
	schema *gojsonschema.Schema
}

// NewAnswerDecoder compiles AnswerSchema and returns a decoder.
func NewAnswerDecoder() (*AnswerDecoder, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(AnswerSchema))
	if err != nil {
		return nil, err
	}
	return &AnswerDecoder{schema: schema}, nil
}

// Decode validates reply against AnswerSchema and decodes it.
func (d *AnswerDecoder) Decode(reply string) (*webqa.AgentAnswer, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, webqa.Errorf(webqa.EINVALID, "empty reply")
	}

	result, err := d.schema.Validate(gojsonschema.NewStringLoader(reply))
	if err != nil {
		return nil, webqa.Errorf(webqa.EINVALID, "reply is not valid JSON: %v", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, webqa.Errorf(webqa.EINVALID, "reply does not match answer schema: %s", strings.Join(errs, "; "))
	}

	var raw struct {
		Answer    any    `json:"answer"`
		Reasoning string `json:"reasoning"`
	}
	dec := json.NewDecoder(strings.NewReader(reply))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, webqa.Errorf(webqa.EINVALID, "decode reply: %v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, webqa.Errorf(webqa.EINVALID, "unexpected data after JSON object")
	}

	answer, err := optionNumber(raw.Answer)
	if err != nil {
		return nil, err
	}
	return &webqa.AgentAnswer{Answer: answer, Reasoning: raw.Reasoning}, nil
}

// optionNumber converts the schema-validated answer value to an option number.
func optionNumber(v any) (*int, error) {
	var n int
	switch v := v.(type) {
	case nil:
		return nil, nil
	case json.Number:
		i, err := numberInt(v)
		if err != nil {
			return nil, err
		}
		n = i
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, webqa.Errorf(webqa.EINVALID, "invalid answer %q", v)
		}
		n = i
	default:
		return nil, webqa.Errorf(webqa.EINVALID, "invalid answer type %T", v)
	}
	return &n, nil
}

// maxExactFloat is the largest magnitude at which every integer is exactly
// representable as a float64.
const maxExactFloat = 1 << 53

// numberInt converts v to an int. Integral floats such as 2.0 or 2e0 are
// accepted; values outside the int range are rejected.
func numberInt(v json.Number) (int, error) {
	if i, err := v.Int64(); err == nil {
		if n := int(i); int64(n) == i {
			return n, nil
		}
		return 0, webqa.Errorf(webqa.EINVALID, "answer %s out of range", v.String())
	}
	f, err := v.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, webqa.Errorf(webqa.EINVALID, "invalid answer %q", v.String())
	}
	if math.Abs(f) > maxExactFloat {
		return 0, webqa.Errorf(webqa.EINVALID, "answer %s out of range", v.String())
	}
	return int(f), nil
}
