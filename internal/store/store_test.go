package store

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "runs", "test.db"), log.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testRun(started time.Time, points ...float64) *Run {
	run := &Run{
		Backend:    "generic",
		Polys:      "0x6d,0x4f,0x57",
		FrameLen:   40,
		Frames:     100,
		TailBiting: true,
		Seed:       7,
		StartedAt:  started,
		Duration:   1.5,
	}
	for i, p := range points {
		run.Measurements = append(run.Measurements, Measurement{
			EbN0dB:      p,
			Frames:      100,
			FrameErrors: 10 - i,
			Bits:        4000,
			BitErrors:   100 - 10*i,
		})
	}
	return run
}

func TestOpenCreatesDirectory(t *testing.T) {
	db := openTestDB(t)
	assert.NotNil(t, db.db)
	assert.True(t, db.db.Migrator().HasTable(&Run{}))
	assert.True(t, db.db.Migrator().HasTable(&Measurement{}))
}

func TestOpenNilLogger(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "nil.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Runs().Create(testRun(time.Now(), 1)))
}

func TestCreateAndGet(t *testing.T) {
	repo := openTestDB(t).Runs()

	run := testRun(time.Now(), 2, 0, 1)
	require.NoError(t, repo.Create(run))
	require.NotZero(t, run.ID)

	got, err := repo.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "generic", got.Backend)
	assert.True(t, got.TailBiting)
	require.Len(t, got.Measurements, 3)
	assert.Equal(t, []float64{0, 1, 2}, []float64{
		got.Measurements[0].EbN0dB,
		got.Measurements[1].EbN0dB,
		got.Measurements[2].EbN0dB,
	})

	ms, err := repo.Measurements(run.ID)
	require.NoError(t, err)
	require.Len(t, ms, 3)
	assert.Equal(t, run.ID, ms[0].RunID)
	// Eb/N0 0 was the second point given, with 90 bit errors.
	assert.InDelta(t, 90.0/4000, ms[0].BER(), 1e-12)
}

func TestBeforeCreateSetsStartedAt(t *testing.T) {
	repo := openTestDB(t).Runs()

	run := testRun(time.Time{})
	require.NoError(t, repo.Create(run))
	assert.False(t, run.StartedAt.IsZero())
}

func TestRecent(t *testing.T) {
	repo := openTestDB(t).Runs()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for i := range 5 {
		require.NoError(t, repo.Create(testRun(base.Add(time.Duration(i)*time.Hour), 1)))
	}

	runs, err := repo.Recent(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
	assert.True(t, runs[1].StartedAt.After(runs[2].StartedAt))
	assert.Empty(t, runs[0].Measurements)
}

func TestDelete(t *testing.T) {
	repo := openTestDB(t).Runs()

	run := testRun(time.Now(), 0, 1)
	require.NoError(t, repo.Create(run))
	require.NoError(t, repo.Delete(run.ID))

	_, err := repo.Get(run.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	ms, err := repo.Measurements(run.ID)
	require.NoError(t, err)
	assert.Empty(t, ms)
}

func TestMeasurementBERZeroBits(t *testing.T) {
	assert.Zero(t, Measurement{}.BER())
}
