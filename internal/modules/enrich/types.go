package enrich

import "github.com/easynews/core/internal/models"

// Result is the structured output of one enrichment call.
type Result struct {
	SimplifiedText    string                    `json:"simplifiedText"`
	CoreVocabulary    []string                  `json:"coreVocabulary"`
	ChineseSummary    string                    `json:"chineseSummary"`
	VocabularyDetails []models.VocabularyDetail `json:"vocabularyDetails,omitempty"`
}
