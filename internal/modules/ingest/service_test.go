package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/easynews/core/internal/config"
	"github.com/easynews/core/internal/models"
	"github.com/easynews/core/internal/modules/enrich"
	"github.com/easynews/core/internal/modules/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeFetcher struct {
	items []source.Item
	err   error
}

func (f *fakeFetcher) Fetch(context.Context) ([]source.Item, error) {
	return f.items, f.err
}

type fakeEnricher struct {
	calls   int
	failIDs map[string]bool
}

func (f *fakeEnricher) Enrich(_ context.Context, title, text string) (*enrich.Result, error) {
	f.calls++
	if f.failIDs[title] {
		return nil, errors.New("backend said no")
	}
	return &enrich.Result{
		SimplifiedText: "simple " + text,
		CoreVocabulary: []string{"word"},
		ChineseSummary: "摘要",
	}, nil
}

type fakeStore struct {
	existing  map[string]bool
	created   []*models.ArticleModel
	createErr map[string]error
	existsErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{existing: map[string]bool{}, createErr: map[string]error{}}
}

func (s *fakeStore) Exists(_ context.Context, originalID string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.existing[originalID], nil
}

func (s *fakeStore) Create(_ context.Context, article *models.ArticleModel) error {
	if err := s.createErr[article.OriginalID]; err != nil {
		return err
	}
	s.created = append(s.created, article)
	return nil
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) Invalidate(context.Context) { f.calls++ }

func testNewsConfig() config.NewsConfig {
	return config.NewsConfig{
		Categories:       "technology",
		ArticlesPerRun:   5,
		MinContentLength: 10,
	}
}

func candidate(id string) source.Item {
	return source.Item{
		ArticleID: id,
		Title:     id,
		Content:   strings.Repeat("content ", 10),
		Link:      "https://example.com/" + id,
	}
}

func TestRunProcessesUpToBudget(t *testing.T) {
	cfg := testNewsConfig()
	cfg.ArticlesPerRun = 3

	var items []source.Item
	for i := 0; i < 10; i++ {
		items = append(items, candidate(fmt.Sprintf("a%d", i)))
	}

	store := newFakeStore()
	cache := &fakeInvalidator{}
	svc := NewService(cfg, &fakeFetcher{items: items}, &fakeEnricher{}, store, cache, zap.NewNop())

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, summary.TotalFetched)
	assert.Equal(t, 3, summary.Processed)
	assert.Len(t, store.created, 3)
	assert.Equal(t, "a0", store.created[0].OriginalID)
	assert.Equal(t, 1, cache.calls)
}

func TestRunSkipsExistingWithoutEnriching(t *testing.T) {
	store := newFakeStore()
	store.existing["a0"] = true
	enricher := &fakeEnricher{}

	svc := NewService(testNewsConfig(), &fakeFetcher{items: []source.Item{candidate("a0"), candidate("a1")}},
		enricher, store, nil, zap.NewNop())

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.SkippedReasons[ReasonAlreadyExists])
	assert.Equal(t, 0, summary.Skipped, "already-existing items are not counted as skipped")
	assert.Equal(t, 1, enricher.calls, "existing item must not reach the backend")
}

func TestRunCountsEnrichmentFailures(t *testing.T) {
	svc := NewService(testNewsConfig(), &fakeFetcher{items: []source.Item{candidate("a0"), candidate("a1")}},
		&fakeEnricher{failIDs: map[string]bool{"a0": true}}, newFakeStore(), nil, zap.NewNop())

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.SkippedReasons[ReasonLLMFailed])
}

func TestRunTreatsDuplicateKeyAsExisting(t *testing.T) {
	store := newFakeStore()
	store.createErr["a0"] = gorm.ErrDuplicatedKey

	svc := NewService(testNewsConfig(), &fakeFetcher{items: []source.Item{candidate("a0"), candidate("a1")}},
		&fakeEnricher{}, store, nil, zap.NewNop())

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.SkippedReasons[ReasonAlreadyExists])
	assert.Len(t, store.created, 1)
}

func TestRunAbortsOnFetchError(t *testing.T) {
	upstreamErr := fmt.Errorf("%w: status 500", source.ErrUpstream)
	svc := NewService(testNewsConfig(), &fakeFetcher{err: upstreamErr}, &fakeEnricher{}, newFakeStore(), nil, zap.NewNop())

	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, source.ErrUpstream)
}

func TestRunAbortsOnStorageError(t *testing.T) {
	store := newFakeStore()
	store.createErr["a0"] = errors.New("connection lost")

	svc := NewService(testNewsConfig(), &fakeFetcher{items: []source.Item{candidate("a0")}},
		&fakeEnricher{}, store, nil, zap.NewNop())

	_, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist article a0")
}

func TestRunSkipsCacheInvalidationWhenNothingPersisted(t *testing.T) {
	store := newFakeStore()
	store.existing["a0"] = true
	cache := &fakeInvalidator{}

	svc := NewService(testNewsConfig(), &fakeFetcher{items: []source.Item{candidate("a0")}},
		&fakeEnricher{}, store, cache, zap.NewNop())

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Processed)
	assert.Equal(t, 0, cache.calls)
}

func TestRunCollectsSkippedItemDiagnostics(t *testing.T) {
	cfg := testNewsConfig()
	cfg.MinContentLength = 1000

	var items []source.Item
	for i := 0; i < 5; i++ {
		item := candidate(fmt.Sprintf("a%d", i))
		item.ImageURL = "https://example.com/a.jpg"
		items = append(items, item)
	}

	svc := NewService(cfg, &fakeFetcher{items: items}, &fakeEnricher{}, newFakeStore(), nil, zap.NewNop())
	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 5, summary.SkippedReasons[ReasonTooShort])
	require.Len(t, summary.SkippedItems, 3, "diagnostics cover the first three items only")
	assert.Equal(t, "a0", summary.SkippedItems[0].Title)
	assert.Equal(t, len(items[0].Content), summary.SkippedItems[0].ContentLen)
	assert.True(t, summary.SkippedItems[0].HasImage)
}

func TestRunOmitsDiagnosticsWhenNothingSkipped(t *testing.T) {
	svc := NewService(testNewsConfig(), &fakeFetcher{items: []source.Item{candidate("a0")}},
		&fakeEnricher{}, newFakeStore(), nil, zap.NewNop())

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Skipped)
	assert.Nil(t, summary.SkippedItems)
}

func TestRunSummaryInitializesAllReasonKeys(t *testing.T) {
	svc := NewService(testNewsConfig(), &fakeFetcher{}, &fakeEnricher{}, newFakeStore(), nil, zap.NewNop())

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	for _, reason := range []Reason{ReasonAlreadyExists, ReasonNoImage, ReasonTooShort, ReasonLLMFailed} {
		count, ok := summary.SkippedReasons[reason]
		assert.True(t, ok, "missing reason key %q", reason)
		assert.Equal(t, 0, count)
	}
}
