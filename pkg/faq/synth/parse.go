package synth

import (
	"encoding/json"
	"regexp"

	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const itemsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["question", "answer"],
    "properties": {
      "question": {"type": "string", "minLength": 1},
      "answer": {"type": "string", "minLength": 1}
    }
  }
}`

var schema = jsonschema.MustCompileString("faq_items.json", itemsSchema)

var (
	pairPattern     = regexp.MustCompile(`\{[^{}]*"question"\s*:\s*"[^"]*"[^{}]*"answer"\s*:\s*"[^"]*"[^{}]*\}`)
	questionPattern = regexp.MustCompile(`"question"\s*:\s*"([^"]*)"`)
	answerPattern   = regexp.MustCompile(`"answer"\s*:\s*"([^"]*)"`)
)

// ParseItems repairs raw model output and decodes it as a list of
// question/answer pairs. When the repaired text is not a valid list it
// falls back to scanning for "question"/"answer" fragments. Finding no
// pairs at all is a parse_error.
func ParseItems(raw string) ([]faq.Item, error) {
	cleaned := Repair(raw)

	items, err := decodeItems(cleaned)
	if err == nil {
		return items, nil
	}

	items = ScanItems(cleaned)
	if len(items) == 0 {
		return nil, faq.Fail(faq.StageSynthesize, faq.KindParseError, "no FAQ content found in model output", err)
	}
	return items, nil
}

func decodeItems(s string) ([]faq.Item, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}

	// Some models wrap the list in an object with a single array field.
	if obj, ok := v.(map[string]any); ok && len(obj) == 1 {
		for _, inner := range obj {
			if list, ok := inner.([]any); ok {
				v = list
			}
		}
	}

	if err := schema.Validate(v); err != nil {
		return nil, err
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var items []faq.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, faq.Fail(faq.StageSynthesize, faq.KindParseError, "model returned an empty list", nil)
	}
	return items, nil
}

// ScanItems extracts pairs from text that is not valid JSON. Values may
// not contain escaped quotes.
func ScanItems(s string) []faq.Item {
	var items []faq.Item
	for _, m := range pairPattern.FindAllString(s, -1) {
		q := questionPattern.FindStringSubmatch(m)
		a := answerPattern.FindStringSubmatch(m)
		if q == nil || a == nil {
			continue
		}
		items = append(items, faq.Item{Question: q[1], Answer: a[1]})
	}
	return items
}
