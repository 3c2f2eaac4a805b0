package ingest

import "github.com/easynews/core/internal/modules/source"

// SelectContent picks the best source text from a candidate's fields:
// the longest non-empty of content, description, title, in that order
// (first-listed wins ties). Sources often ship a short "Read more" stub in
// one field and the fuller text in another; taking the longest maximizes
// context for enrichment and the chance of passing the length filter.
func SelectContent(item source.Item) string {
	best := ""
	for _, candidate := range []string{item.Content, item.Description, item.Title} {
		if len(candidate) > len(best) {
			best = candidate
		}
	}
	return best
}
