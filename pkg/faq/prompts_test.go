package faq_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesisTemplateFor_FallsBackToEnglish(t *testing.T) {
	en := faq.SynthesisTemplateFor("en")
	assert.Equal(t, en, faq.SynthesisTemplateFor("pt"))

	for _, lang := range faq.SupportedLanguages() {
		tmpl := faq.SynthesisTemplateFor(lang)
		assert.NotEmpty(t, tmpl.System, lang)
		assert.Contains(t, tmpl.Count, "%d", lang)
	}
}

func TestPlatformNoun(t *testing.T) {
	assert.Equal(t, "Facebook page", faq.PlatformNoun(faq.PlatformFacebook, "en"))
	assert.Equal(t, "Perfil de Instagram", faq.PlatformNoun(faq.PlatformInstagram, "es"))
	assert.Equal(t, "social media page", faq.PlatformNoun(faq.PlatformDefault, "en"))
	assert.Equal(t, "social media page", faq.PlatformNoun(faq.PlatformX, "pt"))
}

func TestExtractionPrompt(t *testing.T) {
	p := faq.ExtractionPrompt(faq.PlatformFacebook, "fr")
	assert.True(t, strings.HasPrefix(p, "Extrayez les informations en français.\n"))
	assert.Contains(t, p, "about_profile_transparency.html")
	assert.True(t, strings.HasSuffix(p, "Just provide a clean JSON structure."))

	d := faq.ExtractionPrompt(faq.PlatformDefault, "xx")
	assert.Equal(t, "Extract information in English.\nExtract key information from the page.\nDo not include section headers or numbers in the output. Just provide a clean JSON structure.", d)
}

func TestSynthesisPrompt(t *testing.T) {
	p := faq.SynthesisPrompt(faq.PlatformX, "de", 7, "Name: Club\n")

	assert.Contains(t, p, "Based on the following X (Twitter)-Profil content, generate a list of 7 relevant FAQs")
	assert.Contains(t, p, "- Generieren Sie Fragen und Antworten auf Deutsch.\n")
	assert.Contains(t, p, "- Generieren Sie genau 7 FAQs.\n")
	assert.Contains(t, p, "Content:\nName: Club\n")
	assert.True(t, strings.HasSuffix(p, "Only return JSON, no other text."))
}

func TestFormatContent(t *testing.T) {
	record := json.RawMessage(`{
		"page_name": "Man City",
		"empty": "",
		"missing": null,
		"followers": 42000000,
		"verified": true,
		"contact_info": {"phone_number": "+44 161", "email": "info@club.com"},
		"categories": ["Sports team", "Football"],
		"recent_posts": [{"text": "Win!"}, ["nested", "list"]]
	}`)

	out, err := faq.FormatContent(record)
	require.NoError(t, err)

	want := "Page Name: Man City\n" +
		"Followers: 42000000\n" +
		"Verified: True\n" +
		"Contact Info:\nPhone Number: +44 161\nEmail: info@club.com\n\n" +
		"Categories:\n  - Sports team\n  - Football\n\n" +
		"Recent Posts:\n  1. Text: Win!\n  2. - nested\n- list\n\n"
	assert.Equal(t, want, out)
}

func TestFormatContent_DepthLimit(t *testing.T) {
	out, err := faq.FormatContent(json.RawMessage(`{"a":{"b":{"c":{"d":{"e":"deep"}}}}}`))
	require.NoError(t, err)
	assert.Equal(t, "A:\nB:\nC:\nD:\n[Content too deep to display]\n\n\n\n", out)
}

func TestFormatContent_TopLevelList(t *testing.T) {
	out, err := faq.FormatContent(json.RawMessage(`["one", {"k_v": "x"}]`))
	require.NoError(t, err)
	assert.Equal(t, "- one\n2. K V: x\n", out)
}

func TestFormatContent_Invalid(t *testing.T) {
	_, err := faq.FormatContent(json.RawMessage(`{"a":`))
	assert.Error(t, err)
}
