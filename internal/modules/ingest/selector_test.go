package ingest

import (
	"testing"

	"github.com/easynews/core/internal/modules/source"
	"github.com/stretchr/testify/assert"
)

func TestSelectContentPicksLongestField(t *testing.T) {
	item := source.Item{
		Title:       "short",
		Description: "the longest field of the three here",
		Content:     "medium length",
	}
	assert.Equal(t, "the longest field of the three here", SelectContent(item))
}

func TestSelectContentFirstFieldWinsTies(t *testing.T) {
	item := source.Item{
		Title:       "cccc",
		Description: "bbbb",
		Content:     "aaaa",
	}
	assert.Equal(t, "aaaa", SelectContent(item))
}

func TestSelectContentFallsBackToTitle(t *testing.T) {
	item := source.Item{Title: "only a title"}
	assert.Equal(t, "only a title", SelectContent(item))
}

func TestSelectContentAllEmpty(t *testing.T) {
	assert.Equal(t, "", SelectContent(source.Item{}))
}
