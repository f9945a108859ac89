package faq

import (
	"fmt"
	"strings"
)

// SynthesisTemplate holds the language-specific pieces of the synthesis
// prompt. Count contains a single %d verb.
type SynthesisTemplate struct {
	System      string
	Instruction string
	Count       string
}

var synthesisTemplates = map[Language]SynthesisTemplate{
	"en": {
		System:      "You are a helpful assistant that generates relevant FAQs based on provided content. You always output valid JSON.",
		Instruction: "Generate questions and answers in English.",
		Count:       "Generate exactly %d FAQs.",
	},
	"vi": {
		System:      "Bạn là trợ lý hữu ích tạo các câu hỏi thường gặp dựa trên nội dung được cung cấp. Bạn luôn xuất ra JSON hợp lệ.",
		Instruction: "Tạo câu hỏi và câu trả lời bằng tiếng Việt.",
		Count:       "Tạo chính xác %d câu hỏi thường gặp.",
	},
	"fr": {
		System:      "Vous êtes un assistant utile qui génère des FAQ pertinentes basées sur le contenu fourni. Vous produisez toujours un JSON valide.",
		Instruction: "Générez des questions et réponses en français.",
		Count:       "Générez exactement %d FAQ.",
	},
	"es": {
		System:      "Eres un asistente útil que genera preguntas frecuentes relevantes basadas en el contenido proporcionado. Siempre produces JSON válido.",
		Instruction: "Genera preguntas y respuestas en español.",
		Count:       "Genera exactamente %d preguntas frecuentes.",
	},
	"de": {
		System:      "Sie sind ein hilfreicher Assistent, der relevante FAQs basierend auf bereitgestellten Inhalten generiert. Sie geben immer gültiges JSON aus.",
		Instruction: "Generieren Sie Fragen und Antworten auf Deutsch.",
		Count:       "Generieren Sie genau %d FAQs.",
	},
	"zh": {
		System:      "您是一个有用的助手，根据提供的内容生成相关的常见问题解答。您总是输出有效的JSON。",
		Instruction: "用中文生成问题和答案。",
		Count:       "生成恰好%d个常见问题解答。",
	},
	"ja": {
		System:      "あなたは、提供されたコンテンツに基づいて関連するFAQを生成する役立つアシスタントです。常に有効なJSONを出力します。",
		Instruction: "日本語で質問と回答を生成してください。",
		Count:       "%d件のFAQを正確に生成してください。",
	},
	"ko": {
		System:      "제공된 내용을 기반으로 관련 FAQ를 생성하는 유용한 어시스턴트입니다. 항상 유효한 JSON을 출력합니다.",
		Instruction: "한국어로 질문과 답변을 생성하세요.",
		Count:       "정확히 %d개의 FAQ를 생성하세요.",
	},
}

// platformNouns describe the source page inside the synthesis prompt.
var platformNouns = map[Platform]map[Language]string{
	PlatformFacebook: {
		"en": "Facebook page", "vi": "Trang Facebook", "fr": "Page Facebook", "es": "Página de Facebook",
		"de": "Facebook-Seite", "zh": "Facebook页面", "ja": "Facebookページ", "ko": "Facebook 페이지",
	},
	PlatformInstagram: {
		"en": "Instagram profile", "vi": "Hồ sơ Instagram", "fr": "Profil Instagram", "es": "Perfil de Instagram",
		"de": "Instagram-Profil", "zh": "Instagram个人资料", "ja": "Instagramプロファイル", "ko": "Instagram 프로필",
	},
	PlatformX: {
		"en": "X (Twitter) profile", "vi": "Hồ sơ X (Twitter)", "fr": "Profil X (Twitter)", "es": "Perfil de X (Twitter)",
		"de": "X (Twitter)-Profil", "zh": "X（Twitter）个人资料", "ja": "X（Twitter）プロファイル", "ko": "X (Twitter) 프로필",
	},
}

const genericPlatformNoun = "social media page"

// extractionLeads open the extraction prompt in the target language.
var extractionLeads = map[Language]string{
	"en": "Extract information in English.",
	"vi": "Trích xuất thông tin bằng tiếng Việt.",
	"fr": "Extrayez les informations en français.",
	"es": "Extraiga la información en español.",
	"de": "Extrahieren Sie die Informationen auf Deutsch.",
	"zh": "用中文提取信息。",
	"ja": "日本語で情報を抽出してください。",
	"ko": "한국어로 정보를 추출하세요.",
}

const extractionTail = "Do not include section headers or numbers in the output. Just provide a clean JSON structure."

// extractionBodies list what to pull out of each platform's pages.
var extractionBodies = map[Platform]string{
	PlatformFacebook: `Extract the following from this Facebook page:
1. Page description/bio in main.html
2. Categories, Contact info, Websites and social links, Basic info in about.html
3. Page transparency in about_profile_transparency.html
4. Details about the page in about_details.html`,
	PlatformX: `Extract the following from this X (Twitter) profile:
1. Profile information (name, username, bio, website, join date)
2. Profile stats (following, followers, posts count)
3. Recent posts/tweets content in main.html
4. Profile details and highlights`,
	PlatformInstagram: `Extract the following from this Instagram profile:
1. Profile information (name, username, bio, website)
2. Profile stats (posts, followers, following)
3. Recent posts content in main.html
4. Profile details and highlights`,
	PlatformDefault: "Extract key information from the page.",
}

// SynthesisTemplateFor returns the template for lang, or English.
func SynthesisTemplateFor(lang Language) SynthesisTemplate {
	if t, ok := synthesisTemplates[lang]; ok {
		return t
	}
	return synthesisTemplates[DefaultLanguage]
}

// PlatformNoun names the page kind in lang.
func PlatformNoun(p Platform, lang Language) string {
	if nouns, ok := platformNouns[p]; ok {
		if n, ok := nouns[lang]; ok {
			return n
		}
	}
	return genericPlatformNoun
}

// ExtractionPrompt builds the instruction sent with the captured pages.
func ExtractionPrompt(p Platform, lang Language) string {
	lead, ok := extractionLeads[lang]
	if !ok {
		lead = extractionLeads[DefaultLanguage]
	}
	body, ok := extractionBodies[p]
	if !ok {
		body = extractionBodies[PlatformDefault]
	}
	return lead + "\n" + body + "\n" + extractionTail
}

// SynthesisPrompt builds the user message asking for count FAQs about
// the formatted record.
func SynthesisPrompt(p Platform, lang Language, count int, formatted string) string {
	t := SynthesisTemplateFor(lang)

	var b strings.Builder
	fmt.Fprintf(&b, "You are a social media assistant. Based on the following %s content, generate a list of %d relevant FAQs and answers a visitor might ask.\n\n",
		PlatformNoun(p, lang), count)
	b.WriteString("IMPORTANT:\n")
	fmt.Fprintf(&b, "- %s\n", t.Instruction)
	fmt.Fprintf(&b, "- "+t.Count+"\n", count)
	b.WriteString("- Generate questions that can be answered based on the content provided below.\n")
	b.WriteString("- Make answers concise but informative, drawing directly from the provided content.\n")
	b.WriteString("- Ensure questions are natural and likely to be asked by real users\n\n")
	b.WriteString("Content:\n")
	b.WriteString(formatted)
	b.WriteString("\n\nFormat your output as a JSON array like this:\n[\n{ \"question\": \"Q1\", \"answer\": \"A1\" },\n...\n]\nOnly return JSON, no other text.")
	return b.String()
}
