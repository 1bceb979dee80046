package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"ChartBalance/internal/model"
	"ChartBalance/internal/scoring"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func newAssessment(source string, created time.Time, pos model.Positions) *model.Assessment {
	a := scoring.Evaluate(pos)
	a.ID = uuid.NewString()
	a.Source = source
	a.CreatedAt = created.UTC()
	return a
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r := openTestRecorder(t)

	a := newAssessment("kepler.txt", time.Now(), model.Positions{
		model.Sun:       model.Leo,
		model.Ascendant: model.Libra,
		model.Venus:     model.Leo,
	})
	require.NoError(t, r.RecordAssessment(a))

	got, err := r.GetAssessment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.Source, got.Source)
	assert.True(t, a.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, a.Positions, got.Positions)
	assert.Equal(t, a.ElementScores, got.ElementScores)
	assert.Equal(t, a.QualityCounts, got.QualityCounts)
	require.NotNil(t, got.RulerBonus)
	assert.Equal(t, model.Venus, got.RulerBonus.Point)
	assert.Equal(t, a.Balance, got.Balance)
}

func TestSQLiteRecorder_NotFound(t *testing.T) {
	r := openTestRecorder(t)
	_, err := r.GetAssessment("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRecorder_ListNewestFirst(t *testing.T) {
	r := openTestRecorder(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	older := newAssessment("a.txt", base, model.Positions{model.Sun: model.Aries})
	newer := newAssessment("b.txt", base.Add(time.Hour), model.Positions{model.Moon: model.Cancer, model.Sun: model.Leo})
	require.NoError(t, r.RecordAssessment(older))
	require.NoError(t, r.RecordAssessment(newer))

	list, err := r.ListAssessments(10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, 2, list[0].Resolved)
	assert.Equal(t, 4, list[0].Fire)
	assert.Equal(t, 4, list[0].Water)
	assert.Equal(t, base.Add(time.Hour), list[0].CreatedAt)
	assert.Equal(t, older.ID, list[1].ID)

	list, err = r.ListAssessments(1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLiteRecorder_DuplicateID(t *testing.T) {
	r := openTestRecorder(t)
	a := newAssessment("a.txt", time.Now(), model.Positions{})
	require.NoError(t, r.RecordAssessment(a))
	assert.Error(t, r.RecordAssessment(a))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	require.NoError(t, r.RecordAssessment(&model.Assessment{}))
	_, err := r.GetAssessment("x")
	assert.ErrorIs(t, err, ErrNotFound)
	list, err := r.ListAssessments(5)
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = r.FindByPosition(model.Sun, model.Leo, 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLiteRecorder_FindByPosition(t *testing.T) {
	r := openTestRecorder(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	leoSun := newAssessment("a.txt", base, model.Positions{model.Sun: model.Leo, model.Moon: model.Aries})
	leoSunLater := newAssessment("b.txt", base.Add(time.Hour), model.Positions{model.Sun: model.Leo})
	leoMoon := newAssessment("c.txt", base.Add(2*time.Hour), model.Positions{model.Moon: model.Leo})
	for _, a := range []*model.Assessment{leoSun, leoSunLater, leoMoon} {
		require.NoError(t, r.RecordAssessment(a))
	}

	list, err := r.FindByPosition(model.Sun, model.Leo, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, leoSunLater.ID, list[0].ID)
	assert.Equal(t, leoSun.ID, list[1].ID)

	list, err = r.FindByPosition(model.Saturn, model.Leo, 10)
	require.NoError(t, err)
	assert.Empty(t, list, "unresolved points are stored without a sign")

	list, err = r.FindByPosition(model.Sun, model.Leo, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLiteRecorder_SummaryStoresPlanetCounts(t *testing.T) {
	r := openTestRecorder(t)
	// Cardinal rising with a Fixed-sign ruler: weighted and counted modalities differ.
	a := newAssessment("a.txt", time.Now(), model.Positions{
		model.Ascendant: model.Libra,
		model.Venus:     model.Leo,
	})
	require.NoError(t, r.RecordAssessment(a))

	var cardinal, fixed int
	require.NoError(t, r.db.QueryRow(`SELECT cardinal, fixed FROM assessments WHERE id = ?`, a.ID).Scan(&cardinal, &fixed))
	assert.Equal(t, 0, cardinal)
	assert.Equal(t, 1, fixed)
}
