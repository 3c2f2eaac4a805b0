package models

import "time"

// ArticleModel is an enriched news record produced by the ingestion pipeline.
// Records are written once and never updated; the unique index on OriginalID
// is the authoritative dedup boundary under overlapping runs.
type ArticleModel struct {
	Base
	OriginalID        string             `json:"originalId"                  gorm:"uniqueIndex;not null"`
	Title             string             `json:"title"                       gorm:"not null"`
	SimplifiedText    string             `json:"simplifiedText"              gorm:"type:text;not null"`
	CoreVocabulary    StringArray        `json:"coreVocabulary"              gorm:"type:json"`
	VocabularyDetails VocabularyDetails  `json:"vocabularyDetails,omitempty" gorm:"type:json"`
	ChineseSummary    string             `json:"chineseSummary"              gorm:"type:text;not null"`
	PubDate           time.Time          `json:"pubDate"                     gorm:"index;not null"`
	ImageURL          string             `json:"imageUrl,omitempty"`
	Category          string             `json:"category,omitempty"          gorm:"index"`
	Source            string             `json:"source,omitempty"`
	OriginalURL       string             `json:"originalUrl,omitempty"`
}

func (ArticleModel) TableName() string { return "articles" }

// VocabularyDetail pairs a vocabulary word with a conversational example sentence.
type VocabularyDetail struct {
	Word     string `json:"word"`
	Sentence string `json:"sentence"`
}
