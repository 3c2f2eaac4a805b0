package enrich

import (
	"fmt"
	"strings"
)

const (
	// promptMaxChars bounds the article text embedded in the prompt to keep
	// per-item token cost predictable.
	promptMaxChars = 2000

	systemPrompt = "You represent a JSON API. You answer strictly in JSON."

	promptTemplate = `
You are a friendly American English podcast host for beginner learners.
Your goal is to explain the news in a helpful, conversational, and "spoken" style, perfect for listening practice.

Task:
1. **Spoken Story (The Content):** Retell the news article below (Title: %q) as if you are chatting directly to a listener.
   - Use natural, spoken English (e.g., use contractions like "it's", "they're", "didn't").
   - Use simple connectors like "So...", "And then...", "But...".
   - Keep the tone warm, engaging, and casual.
   - Avoid formal "written" style or complex grammar.
   - Keep it suitable for A2/B1 level learners.
   - Length: around 100-150 words.
2. **Core Vocabulary:** Extract %d interesting words or phrases from your spoken story suitable for beginners to learn.
%s4. **Chinese Summary:** Provide a summary in Chinese (Simplified).

Input Article:
%q

Output **ONLY** a valid JSON object with this exact structure:
{
  "simplifiedText": "Hey listeners! Today's story is about...",
  "coreVocabulary": ["Word1", "Word2", ...],
  %s"chineseSummary": "中文摘要..."
}
`

	exampleSentenceTask = "3. **Example Sentences:** For each vocabulary word, provide a simple, conversational example sentence (not a dictionary definition style).\n"
	exampleSentenceSlot = `"vocabularyDetails": [{"word": "Word1", "sentence": "Example..."}], `
)

func buildPrompt(title, text string, vocabularyCount int, exampleSentences bool) string {
	task, slot := "", ""
	if exampleSentences {
		task, slot = exampleSentenceTask, exampleSentenceSlot
	}
	return fmt.Sprintf(promptTemplate, title, vocabularyCount, task, truncateText(text, promptMaxChars), slot)
}

func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen])
}

func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
