package synth

import (
	"regexp"
	"strings"
)

// RepairPass is one named rewrite applied to model output before it is
// parsed.
type RepairPass struct {
	Name  string
	Apply func(string) string
}

var (
	fenceOpenJSON = regexp.MustCompile("(?i)^```json\\s*")
	fenceOpen     = regexp.MustCompile("^```\\s*")
	fenceClose    = regexp.MustCompile("\\s*```$")
	controlChars  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
	bareKey       = regexp.MustCompile(`([{:,])\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*:`)
)

// RepairPasses run in this order. The last two only touch text outside
// string literals, so valid JSON passes through unchanged.
var RepairPasses = []RepairPass{
	{Name: "strip_code_fences", Apply: StripCodeFences},
	{Name: "strip_control_chars", Apply: StripControlChars},
	{Name: "drop_trailing_commas", Apply: DropTrailingCommas},
	{Name: "quote_bare_keys", Apply: QuoteBareKeys},
}

// Repair applies every pass and trims the result. Its output is a fixed
// point: Repair(Repair(x)) == Repair(x). Trimmed valid JSON comes back as is
// unless it carries raw control characters such as DEL, which the first
// call drops.
func Repair(raw string) string {
	s := raw
	for _, p := range RepairPasses {
		s = p.Apply(s)
	}
	return strings.TrimSpace(s)
}

// StripCodeFences removes a leading ```json (any case) or ``` fence and a
// trailing ``` fence.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = fenceOpenJSON.ReplaceAllString(s, "")
	s = fenceOpen.ReplaceAllString(s, "")
	return fenceClose.ReplaceAllString(s, "")
}

// StripControlChars removes ASCII control characters other than tab,
// line feed and carriage return.
func StripControlChars(s string) string {
	return controlChars.ReplaceAllString(s, "")
}

// DropTrailingCommas removes commas that directly precede a closing
// bracket or brace.
func DropTrailingCommas(s string) string {
	return outsideStrings(s, func(seg string) string {
		return trailingComma.ReplaceAllString(seg, "$1")
	})
}

// QuoteBareKeys wraps unquoted identifier keys in double quotes.
func QuoteBareKeys(s string) string {
	return outsideStrings(s, func(seg string) string {
		return bareKey.ReplaceAllString(seg, `${1} "${2}":`)
	})
}

// outsideStrings applies fn to every run of s that is not inside a
// double-quoted string literal. An unterminated literal extends to the
// end of s.
func outsideStrings(s string, fn func(string) string) string {
	var b strings.Builder
	b.Grow(len(s))

	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '"' {
			continue
		}
		b.WriteString(fn(s[start:i]))

		j := i + 1
		for j < len(s) {
			if s[j] == '\\' {
				j += 2
				continue
			}
			if s[j] == '"' {
				break
			}
			j++
		}
		if j >= len(s) {
			b.WriteString(s[i:])
			return b.String()
		}
		b.WriteString(s[i : j+1])
		i = j
		start = j + 1
	}
	b.WriteString(fn(s[start:]))
	return b.String()
}
