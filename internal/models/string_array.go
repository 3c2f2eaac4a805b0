package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringArray stores string lists as JSON, while tolerating legacy plain-string data.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *StringArray) Scan(value interface{}) error {
	if a == nil {
		return fmt.Errorf("models.StringArray: Scan on nil pointer")
	}
	if value == nil {
		*a = []string{}
		return nil
	}

	raw, err := rawJSONString(value)
	if err != nil {
		return fmt.Errorf("models.StringArray: %w", err)
	}
	if raw == "" || raw == "null" {
		*a = []string{}
		return nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		*a = arr
		return nil
	}

	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		if single == "" {
			*a = []string{}
		} else {
			*a = []string{single}
		}
		return nil
	}

	*a = []string{raw}
	return nil
}

// VocabularyDetails stores (word, sentence) pairs as a JSON column.
type VocabularyDetails []VocabularyDetail

func (d VocabularyDetails) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]VocabularyDetail(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *VocabularyDetails) Scan(value interface{}) error {
	if d == nil {
		return fmt.Errorf("models.VocabularyDetails: Scan on nil pointer")
	}
	if value == nil {
		*d = VocabularyDetails{}
		return nil
	}

	raw, err := rawJSONString(value)
	if err != nil {
		return fmt.Errorf("models.VocabularyDetails: %w", err)
	}
	if raw == "" || raw == "null" {
		*d = VocabularyDetails{}
		return nil
	}

	var out []VocabularyDetail
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return fmt.Errorf("models.VocabularyDetails: %w", err)
	}
	*d = out
	return nil
}

func rawJSONString(value interface{}) (string, error) {
	switch v := value.(type) {
	case []byte:
		return strings.TrimSpace(string(v)), nil
	case string:
		return strings.TrimSpace(v), nil
	default:
		return "", fmt.Errorf("unsupported Scan type %T", value)
	}
}
