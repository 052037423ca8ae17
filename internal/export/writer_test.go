package export

import (
	"database/sql"
	"encoding/gob"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gcouto/sarwrangler/internal/sar"
)

func testSystems() []sar.System {
	return []sar.System{
		{ID: "SIN", Name: "Sistema Interligado Nacional"},
		{ID: "NORDESTE", Name: "Nordeste e Semiárido"},
	}
}

func testObservations() []sar.Observation {
	return []sar.Observation{
		{
			ReservoirCode: "19086",
			Date:          time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
			Value:         85.5,
			Quality:       "consistido",
		},
		{
			ReservoirCode: "19086",
			Date:          time.Date(2026, time.August, 2, 0, 0, 0, 0, time.UTC),
			Value:         1234.56,
		},
	}
}

func TestNewWriterCreatesDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "out")
	_, err := NewWriter(dir, Formats{CSV: true}, zaptest.NewLogger(t))
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteSystemsCSVGoldenAndDeterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWriter(dir, Formats{CSV: true}, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, w.WriteSystems("sarsystems", testSystems()))
	first, err := os.ReadFile(filepath.Join(dir, "sarsystems.csv"))
	require.NoError(t, err)

	want := "id,name\n" +
		"SIN,Sistema Interligado Nacional\n" +
		"NORDESTE,Nordeste e Semiárido\n"
	assert.Equal(t, want, string(first))

	require.NoError(t, w.WriteSystems("sarsystems", testSystems()))
	second, err := os.ReadFile(filepath.Join(dir, "sarsystems.csv"))
	require.NoError(t, err)
	assert.Equal(t, first, second, "reruns must be byte-identical")
}

func TestWriteObservationsJSONRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWriter(dir, Formats{JSON: true}, zaptest.NewLogger(t))
	require.NoError(t, err)

	obs := testObservations()
	require.NoError(t, w.WriteObservations("19086", obs))

	payload, err := os.ReadFile(filepath.Join(dir, "19086.json"))
	require.NoError(t, err)

	var got []sar.Observation
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, obs, got)
}

func TestWriteObservationsSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWriter(dir, Formats{SQLite: true}, zaptest.NewLogger(t))
	require.NoError(t, err)

	obs := testObservations()
	require.NoError(t, w.WriteObservations("19086", obs))

	db, err := sql.Open("sqlite3", filepath.Join(dir, "19086.db"))
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	rows, err := db.Query("SELECT reservoir_code, obs_date, value, quality FROM observations ORDER BY obs_date")
	require.NoError(t, err)
	defer rows.Close() //nolint:errcheck

	var got []sar.Observation
	for rows.Next() {
		var (
			rec     sar.Observation
			dateStr string
		)
		require.NoError(t, rows.Scan(&rec.ReservoirCode, &dateStr, &rec.Value, &rec.Quality))
		rec.Date, err = time.Parse(obsDateLayout, dateStr)
		require.NoError(t, err)
		got = append(got, rec)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, obs, got)
}

func TestWriteSystemsGobRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWriter(dir, Formats{Gob: true}, zaptest.NewLogger(t))
	require.NoError(t, err)

	recs := testSystems()
	require.NoError(t, w.WriteSystems("sarsystems", recs))

	f, err := os.Open(filepath.Join(dir, "sarsystems.gob"))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	var got []sar.System
	require.NoError(t, gob.NewDecoder(f).Decode(&got))
	assert.Equal(t, recs, got)
}

func TestFormatFailureDoesNotSuppressOthers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWriter(dir, Formats{CSV: true, JSON: true}, zaptest.NewLogger(t))
	require.NoError(t, err)

	// Occupy the CSV target with a directory so os.Create fails.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sarsystems.csv"), 0o750))

	err = w.WriteSystems("sarsystems", testSystems())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv")

	_, statErr := os.Stat(filepath.Join(dir, "sarsystems.json"))
	assert.NoError(t, statErr, "json export should still be written")
}

func TestFormatsAny(t *testing.T) {
	t.Parallel()

	assert.False(t, Formats{}.Any())
	assert.True(t, Formats{Gob: true}.Any())
}
