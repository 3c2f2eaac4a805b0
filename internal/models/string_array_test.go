package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayScanVariants(t *testing.T) {
	var a StringArray
	require.NoError(t, a.Scan([]byte(`["one","two"]`)))
	assert.Equal(t, StringArray{"one", "two"}, a)

	require.NoError(t, a.Scan(`"legacy"`))
	assert.Equal(t, StringArray{"legacy"}, a)

	require.NoError(t, a.Scan(nil))
	assert.Equal(t, StringArray{}, a)

	require.NoError(t, a.Scan("null"))
	assert.Equal(t, StringArray{}, a)

	// Non-JSON legacy data is kept as a single element.
	require.NoError(t, a.Scan("plain text"))
	assert.Equal(t, StringArray{"plain text"}, a)

	assert.Error(t, a.Scan(42))
}

func TestStringArrayValueNilIsEmptyList(t *testing.T) {
	var a StringArray
	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestVocabularyDetailsRoundTrip(t *testing.T) {
	in := VocabularyDetails{{Word: "story", Sentence: "It's a great story."}}
	v, err := in.Value()
	require.NoError(t, err)

	var out VocabularyDetails
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}

func TestVocabularyDetailsScanRejectsMalformed(t *testing.T) {
	var d VocabularyDetails
	assert.Error(t, d.Scan("not json"))
}
