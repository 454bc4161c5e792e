package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chantierpro/api/internal/models"
)

type mockHomeContentStore struct{ mock.Mock }

func (m *mockHomeContentStore) ListActive(ctx context.Context) ([]models.HomeSection, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.HomeSection), args.Error(1)
}

func (m *mockHomeContentStore) GetByName(ctx context.Context, name string) (models.HomeSection, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.HomeSection), args.Error(1)
}

func (m *mockHomeContentStore) Upsert(ctx context.Context, section models.HomeSection) error {
	return m.Called(ctx, section).Error(0)
}

func TestAggregateCoversEverySection(t *testing.T) {
	store := &mockHomeContentStore{}
	svc := NewHomeContentService(store, nil, zerolog.Nop())
	ctx := context.Background()

	store.On("ListActive", ctx).Return([]models.HomeSection{}, nil).Once()

	out, err := svc.Aggregate(ctx)
	require.NoError(t, err)

	assert.Len(t, out, len(SectionNames))
	for _, name := range SectionNames {
		assert.Contains(t, out, name)
		assert.NotNil(t, out[name])
	}
}

func TestAggregatePrefersStoredContent(t *testing.T) {
	store := &mockHomeContentStore{}
	svc := NewHomeContentService(store, nil, zerolog.Nop())
	ctx := context.Background()

	stored := models.HomeSection{
		Name:    "hero",
		Content: map[string]any{"title": "Titre personnalisé"},
		Active:  true,
	}
	store.On("ListActive", ctx).Return([]models.HomeSection{stored}, nil).Once()

	out, err := svc.Aggregate(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Titre personnalisé", out["hero"]["title"])
	// Untouched sections fall back to defaults.
	assert.Equal(t, DefaultSection("stats"), out["stats"])
}

func TestAggregateEmptyStoredContentFallsBack(t *testing.T) {
	store := &mockHomeContentStore{}
	svc := NewHomeContentService(store, nil, zerolog.Nop())
	ctx := context.Background()

	stored := models.HomeSection{Name: "promise", Content: map[string]any{}, Active: true}
	store.On("ListActive", ctx).Return([]models.HomeSection{stored}, nil).Once()

	out, err := svc.Aggregate(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSection("promise"), out["promise"])
}

func TestUpsertSectionRejectsUnknownName(t *testing.T) {
	store := &mockHomeContentStore{}
	svc := NewHomeContentService(store, nil, zerolog.Nop())

	err := svc.UpsertSection(context.Background(), "sidebar", map[string]any{"x": 1}, true)
	assert.ErrorIs(t, err, ErrUnknownSection)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpsertSectionWritesThrough(t *testing.T) {
	store := &mockHomeContentStore{}
	svc := NewHomeContentService(store, nil, zerolog.Nop())
	ctx := context.Background()

	store.On("Upsert", ctx, mock.MatchedBy(func(s models.HomeSection) bool {
		return s.Name == "hero" && s.Active && s.Content["title"] == "Nouveau"
	})).Return(nil).Once()

	require.NoError(t, svc.UpsertSection(ctx, "hero", map[string]any{"title": "Nouveau"}, true))
	store.AssertExpectations(t)
}

func TestDefaultSectionReturnsCopy(t *testing.T) {
	def := DefaultSection("hero")
	require.NotEmpty(t, def)

	def["title"] = "tampered"
	assert.NotEqual(t, "tampered", DefaultSection("hero")["title"])
}

func TestKnownSection(t *testing.T) {
	for _, name := range SectionNames {
		assert.True(t, KnownSection(name), name)
	}
	assert.False(t, KnownSection("footer"))
}
