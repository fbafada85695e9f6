package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/store"
)

func TestStartWritesCurrentTest(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	cfg, err := Start(ctx, st, "Official PT 6", model.SectionFullTest)
	require.NoError(t, err)
	assert.Equal(t, "Official PT 6", cfg.TestName)

	got, ok := Current(ctx, st, nil)
	require.True(t, ok)
	assert.Equal(t, cfg, got)
}

func TestStartRejectsBlankName(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	_, err := Start(ctx, st, "   ", model.SectionMath)
	assert.ErrorIs(t, err, ErrBlankTestName)

	_, ok, err := st.Get(ctx, store.KeyCurrentTest)
	require.NoError(t, err)
	assert.False(t, ok, "blank submit must not write")
}

func TestStartRejectsUnknownSection(t *testing.T) {
	_, err := Start(context.Background(), store.NewMemory(), "PT", model.SectionType("Science"))
	assert.ErrorIs(t, err, ErrInvalidSection)
}

func TestCurrentMissingOrInvalid(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	_, ok := Current(ctx, st, nil)
	assert.False(t, ok)

	require.NoError(t, st.Set(ctx, store.KeyCurrentTest, []byte(`{"testName":"PT"}`)))
	_, ok = Current(ctx, st, nil)
	assert.False(t, ok, "missing section type")

	require.NoError(t, st.Set(ctx, store.KeyCurrentTest, []byte(`garbage`)))
	_, ok = Current(ctx, st, nil)
	assert.False(t, ok, "malformed json")
}
