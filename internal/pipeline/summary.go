package pipeline

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Level identifies the discovery granularity a skip happened at.
type Level string

// Discovery levels.
const (
	LevelSystem    Level = "system"
	LevelReservoir Level = "reservoir"
)

// Skip records one entity the run gave up on, with the error that caused it.
type Skip struct {
	Level  Level
	Entity string
	Err    error
}

// Summary is the per-run accounting surfaced to the operator. Skips and
// drops are collected here rather than silently swallowed.
type Summary struct {
	RunID        string
	Systems      int
	Reservoirs   int
	Observations int
	Skipped      []Skip
	Dropped      int
	WriteErrors  int
}

func (s *Summary) skip(level Level, entity string, err error) {
	s.Skipped = append(s.Skipped, Skip{Level: level, Entity: entity, Err: err})
}

// SkippedAt counts skips at one level.
func (s Summary) SkippedAt(level Level) int {
	n := 0
	for _, sk := range s.Skipped {
		if sk.Level == level {
			n++
		}
	}
	return n
}

// Render formats the summary as terminal tables: one with per-level counts,
// and, when anything was skipped, a second listing each skipped entity.
func (s Summary) Render() string {
	counts := table.NewWriter()
	counts.SetStyle(table.StyleLight)
	counts.SetTitle("run %s", s.RunID)
	counts.AppendHeader(table.Row{"Level", "Records", "Skipped"})
	counts.AppendRows([]table.Row{
		{"systems", s.Systems, s.SkippedAt(LevelSystem)},
		{"reservoirs", s.Reservoirs, s.SkippedAt(LevelReservoir)},
		{"observations", s.Observations, ""},
	})
	counts.AppendFooter(table.Row{"dropped records", s.Dropped, ""})
	counts.AppendFooter(table.Row{"write errors", s.WriteErrors, ""})
	out := counts.Render()

	if len(s.Skipped) == 0 {
		return out
	}

	skips := table.NewWriter()
	skips.SetStyle(table.StyleLight)
	skips.SetTitle("skipped entities")
	skips.AppendHeader(table.Row{"Level", "Entity", "Error"})
	for _, sk := range s.Skipped {
		skips.AppendRow(table.Row{string(sk.Level), sk.Entity, sk.Err.Error()})
	}
	return fmt.Sprintf("%s\n%s", out, skips.Render())
}
