package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/verte-zerg/sattrack/internal/model"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "sattrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestSQLiteGetMissingKey(t *testing.T) {
	st := openTestStore(t)
	_, ok, err := st.Get(context.Background(), KeyScores)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteSetOverwrites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, KeyTheme, []byte(`"dark"`)))
	require.NoError(t, st.Set(ctx, KeyTheme, []byte(`"light"`)))

	raw, ok, err := st.Get(ctx, KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"light"`, string(raw))

	keys, err := st.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyTheme}, keys)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sattrack.db")
	ctx := context.Background()
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, SetJSON(ctx, st, KeyCurrentTest, model.SessionConfig{TestName: "PT 6", SectionType: model.SectionMath}))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	cfg, ok, err := GetJSON[model.SessionConfig](ctx, st, KeyCurrentTest)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "PT 6", cfg.TestName)
	assert.Equal(t, model.SectionMath, cfg.SectionType)
}

func TestWrongQuestionCollectionRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	questions := []model.WrongQuestion{
		{
			ID:            "a",
			TestName:      "PT 1",
			Question:      "2x = 4",
			Section:       "Math",
			Choices:       []string{"1", "2", "3"},
			UserAnswer:    "1",
			CorrectAnswer: "2",
			Type:          model.QuestionMultiple,
			Tags:          []string{"algebra", "linear"},
		},
		{
			ID:            "b",
			TestName:      "PT 1",
			Question:      "Fix the comma",
			Section:       "English",
			Choices:       nil,
			UserAnswer:    "x",
			CorrectAnswer: "y",
			Type:          model.QuestionWritten,
			Reviewed:      true,
			Tags:          []string{},
		},
	}
	require.NoError(t, SaveCollection(ctx, st, KeyWrongQuestions, questions))

	loaded := LoadCollection[model.WrongQuestion](ctx, st, KeyWrongQuestions, nil)
	assert.Equal(t, questions, loaded)
}

func TestLoadCollectionMalformedIsEmpty(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, KeyScores, []byte(`{not json`)))

	core, logs := observer.New(zap.WarnLevel)
	items := LoadCollection[model.ScoreEntry](ctx, st, KeyScores, zap.New(core))
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, 1, logs.Len())
}

func TestLoadCollectionMissingAndNull(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()
	assert.Empty(t, LoadCollection[model.ScoreEntry](ctx, st, KeyScores, nil))

	require.NoError(t, st.Set(ctx, KeyScores, []byte(`null`)))
	items := LoadCollection[model.ScoreEntry](ctx, st, KeyScores, nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

type failingStore struct {
	*Memory
	err error
}

func (f failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, f.err
}

func TestReadCollectionReturnsReadErrors(t *testing.T) {
	locked := errors.New("database is locked")
	st := failingStore{Memory: NewMemory(), err: locked}
	ctx := context.Background()

	items, err := ReadCollection[model.ScoreEntry](ctx, st, KeyScores, nil)
	require.ErrorIs(t, err, locked)
	assert.Nil(t, items)

	core, logs := observer.New(zap.WarnLevel)
	assert.Empty(t, LoadCollection[model.ScoreEntry](ctx, st, KeyScores, zap.New(core)))
	assert.Equal(t, 1, logs.Len())
}

func TestReadCollectionMalformedIsEmpty(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, KeyScores, []byte(`[{`)))
	items, err := ReadCollection[model.ScoreEntry](ctx, st, KeyScores, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSaveCollectionNilWritesEmptyArray(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()
	require.NoError(t, SaveCollection[model.StudySessionEntry](ctx, st, KeyStudySessions, nil))
	raw, ok, err := st.Get(ctx, KeyStudySessions)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(raw))
}

func TestGetJSONMalformed(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, KeyCurrentTest, []byte(`[1,2`)))
	_, ok, err := GetJSON[model.SessionConfig](ctx, st, KeyCurrentTest)
	assert.False(t, ok)
	assert.Error(t, err)
}
