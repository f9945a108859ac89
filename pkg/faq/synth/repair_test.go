package synth_test

import (
	"encoding/json"
	"testing"

	"github.com/Abraxas-365/faqgen/pkg/faq/synth"
	"github.com/stretchr/testify/assert"
)

func TestRepairPasses_Order(t *testing.T) {
	names := make([]string, 0, len(synth.RepairPasses))
	for _, p := range synth.RepairPasses {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"strip_code_fences", "strip_control_chars", "drop_trailing_commas", "quote_bare_keys"}, names)
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `[{"a":1}]`, synth.StripCodeFences("```json\n[{\"a\":1}]\n```"))
	assert.Equal(t, `[1]`, synth.StripCodeFences("  ```\n[1]```  "))
	assert.Equal(t, `[1]`, synth.StripCodeFences(`[1]`))
}

func TestStripCodeFences_LanguageTagIgnoresCase(t *testing.T) {
	assert.Equal(t, `[{"a":1}]`, synth.StripCodeFences("```JSON\n[{\"a\":1}]\n```"))
	assert.Equal(t, `[{"a":1}]`, synth.StripCodeFences("```Json [{\"a\":1}]```"))
}

func TestRepair_UppercaseFenceParses(t *testing.T) {
	out := synth.Repair("```JSON\n[{\"question\": \"Q\", \"answer\": \"A\"}]\n```")
	assert.Equal(t, `[{"question": "Q", "answer": "A"}]`, out)
	assert.True(t, json.Valid([]byte(out)))
}

func TestStripControlChars(t *testing.T) {
	assert.Equal(t, "a\tb\nc\rd", synth.StripControlChars("a\x00\tb\x0b\nc\x1f\rd\x7f"))
}

func TestDropTrailingCommas(t *testing.T) {
	assert.Equal(t, `[{"a": 1}]`, synth.DropTrailingCommas(`[{"a": 1,},]`))
	assert.Equal(t, "[1]", synth.DropTrailingCommas("[1,\n]"))
	assert.Equal(t, `["keep ,] inside"]`, synth.DropTrailingCommas(`["keep ,] inside"]`))
}

func TestQuoteBareKeys(t *testing.T) {
	assert.Equal(t, `[{ "question": "Q", "answer": "A"}]`, synth.QuoteBareKeys(`[{question: "Q", answer: "A"}]`))
	assert.Equal(t, `{"answer": "Open daily, hours: 9-5"}`, synth.QuoteBareKeys(`{"answer": "Open daily, hours: 9-5"}`))
	assert.Equal(t, `{"q": "say \"hi, x: y\""}`, synth.QuoteBareKeys(`{"q": "say \"hi, x: y\""}`))
}

func TestRepair_AllPasses(t *testing.T) {
	raw := "```json\n[\n  {question: \"Where?\", answer: \"Here\x01\",},\n]\n```"
	assert.Equal(t, "[\n  { \"question\": \"Where?\", \"answer\": \"Here\"}]", synth.Repair(raw))
}

func TestRepair_IdempotentOnValidJSON(t *testing.T) {
	inputs := []string{
		`[{"question": "What are the hours, exactly?", "answer": "Mon-Fri: 9-5, weekends: closed"}]`,
		`[]`,
		`{"faqs": [{"question": "Q", "answer": "A"}]}`,
	}
	for _, in := range inputs {
		once := synth.Repair(in)
		assert.Equal(t, in, once)
		assert.Equal(t, once, synth.Repair(once))
	}
}

func TestRepair_StableAfterStrippingDEL(t *testing.T) {
	in := "[{\"question\": \"del\x7f\", \"answer\": \"A\"}]"
	once := synth.Repair(in)
	assert.NotContains(t, once, "\x7f")
	assert.Equal(t, `[{"question": "del", "answer": "A"}]`, once)
	assert.Equal(t, once, synth.Repair(once))
}
