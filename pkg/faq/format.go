package faq

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// MaxFormatDepth bounds how deep FormatContent descends.
const MaxFormatDepth = 3

const tooDeep = "[Content too deep to display]"

// field is one object member; objects keep their source order.
type field struct {
	key   string
	value any
}

type object []field

// FormatContent renders a structured record as indented plain text for
// the synthesis prompt. Keys are title-cased with underscores as spaces,
// null and empty-string values are skipped, scalars in lists become
// bullets and nested values become numbered items.
func FormatContent(record json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(record))
	dec.UseNumber()
	v, err := decodeOrdered(dec)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	formatValue(&b, v, 0)
	return b.String(), nil
}

func decodeOrdered(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := object{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := kt.(string)
				val, err := decodeOrdered(dec)
				if err != nil {
					return nil, err
				}
				obj = append(obj, field{key: key, value: val})
			}
			_, err := dec.Token()
			return obj, err
		case '[':
			arr := []any{}
			for dec.More() {
				val, err := decodeOrdered(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			_, err := dec.Token()
			return arr, err
		}
		return nil, io.ErrUnexpectedEOF
	default:
		return t, nil
	}
}

func isNested(v any) bool {
	switch v.(type) {
	case object, []any:
		return true
	}
	return false
}

func formatValue(b *strings.Builder, v any, depth int) {
	if depth > MaxFormatDepth {
		b.WriteString(tooDeep)
		return
	}

	switch t := v.(type) {
	case object:
		for _, f := range t {
			if f.value == nil || f.value == "" {
				continue
			}
			key := readableKey(f.key)
			switch val := f.value.(type) {
			case object:
				b.WriteString(key + ":\n")
				formatValue(b, val, depth+1)
				b.WriteString("\n")
			case []any:
				b.WriteString(key + ":\n")
				for i, item := range val {
					if isNested(item) {
						fmt.Fprintf(b, "  %d. ", i+1)
						formatValue(b, item, depth+1)
					} else {
						fmt.Fprintf(b, "  - %s\n", scalar(item))
					}
				}
				b.WriteString("\n")
			default:
				fmt.Fprintf(b, "%s: %s\n", key, scalar(val))
			}
		}
	case []any:
		for i, item := range t {
			if isNested(item) {
				fmt.Fprintf(b, "%d. ", i+1)
				formatValue(b, item, depth+1)
			} else {
				fmt.Fprintf(b, "- %s\n", scalar(item))
			}
		}
	default:
		b.WriteString(scalar(t) + "\n")
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprint(t)
	}
}

// readableKey turns "contact_info" into "Contact Info".
func readableKey(key string) string {
	key = strings.ReplaceAll(key, "_", " ")
	out := make([]rune, 0, len(key))
	prevLetter := false
	for _, r := range key {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToTitle(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		out = append(out, r)
	}
	return string(out)
}
