package export

import (
	"strconv"

	"github.com/gcouto/sarwrangler/internal/sar"
)

// obsDateLayout is the storage form of observation dates, chosen so that
// lexicographic and chronological order agree.
const obsDateLayout = "2006-01-02"

// table is the flat view of a record set shared by the CSV and SQLite
// encoders. The name doubles as the SQLite table name.
type table struct {
	name    string
	columns []string
	ddl     string
	rows    [][]string
}

func systemsTable(recs []sar.System) table {
	t := table{
		name:    "systems",
		columns: []string{"id", "name"},
		ddl: `CREATE TABLE systems (
			id   TEXT NOT NULL PRIMARY KEY,
			name TEXT NOT NULL
		)`,
	}
	for _, r := range recs {
		t.rows = append(t.rows, []string{r.ID, r.Name})
	}
	return t
}

func reservoirsTable(recs []sar.Reservoir) table {
	t := table{
		name:    "reservoirs",
		columns: []string{"station_code", "name", "system_id"},
		ddl: `CREATE TABLE reservoirs (
			station_code TEXT NOT NULL PRIMARY KEY,
			name         TEXT NOT NULL,
			system_id    TEXT NOT NULL
		)`,
	}
	for _, r := range recs {
		t.rows = append(t.rows, []string{r.StationCode, r.Name, r.SystemID})
	}
	return t
}

func observationsTable(recs []sar.Observation) table {
	t := table{
		name:    "observations",
		columns: []string{"reservoir_code", "obs_date", "value", "quality"},
		ddl: `CREATE TABLE observations (
			reservoir_code TEXT NOT NULL,
			obs_date       TEXT NOT NULL,
			value          REAL NOT NULL,
			quality        TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (reservoir_code, obs_date)
		)`,
	}
	for _, r := range recs {
		t.rows = append(t.rows, []string{
			r.ReservoirCode,
			r.Date.Format(obsDateLayout),
			strconv.FormatFloat(r.Value, 'f', -1, 64),
			r.Quality,
		})
	}
	return t
}
