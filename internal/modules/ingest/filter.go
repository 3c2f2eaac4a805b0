package ingest

import "github.com/easynews/core/internal/modules/source"

// Reason names why a candidate was skipped. The values double as keys in the
// run summary's skippedReasons map.
type Reason string

const (
	ReasonAlreadyExists Reason = "already_exists"
	ReasonNoImage       Reason = "no_image"
	ReasonTooShort      Reason = "too_short"
	ReasonLLMFailed     Reason = "llm_failed"
)

// FilterConfig is the admission policy for one run.
type FilterConfig struct {
	RequireImage     bool
	MinContentLength int
}

// Admit decides whether a candidate proceeds to enrichment. Checks run
// cheapest first: prior existence, then image requirement, then the content
// length threshold over the selected text. A rejection skips the item only;
// it never aborts the run.
func Admit(cfg FilterConfig, item source.Item, exists bool, content string) (Reason, bool) {
	if exists {
		return ReasonAlreadyExists, false
	}
	if cfg.RequireImage && item.ImageURL == "" {
		return ReasonNoImage, false
	}
	if len(content) < cfg.MinContentLength {
		return ReasonTooShort, false
	}
	return "", true
}
