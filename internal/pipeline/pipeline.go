// Package pipeline sequences one run: discover systems, their reservoirs and
// each reservoir's time series, then export every discovery level through the
// multi-format writer.
//
// Failure policy follows the granularity of the entity: a directory-level
// fetch or parse failure aborts the run before anything is written; a failed
// system or reservoir is recorded in the summary and skipped; a single bad
// record is dropped. Partial output is the expected mode of operation.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gcouto/sarwrangler/internal/normalize"
	"github.com/gcouto/sarwrangler/internal/parse"
	"github.com/gcouto/sarwrangler/internal/sar"
)

// Fetcher retrieves one page body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Writer persists one discovery level under a base filename.
type Writer interface {
	WriteSystems(base string, recs []sar.System) error
	WriteReservoirs(base string, recs []sar.Reservoir) error
	WriteObservations(base string, recs []sar.Observation) error
}

// Runner drives the fetch-parse-normalize-export sequence. Execution is
// strictly sequential; the portal is small enough that parallel fetches buy
// nothing worth the coordination.
type Runner struct {
	fetcher   Fetcher
	writer    Writer
	endpoints sar.Endpoints
	logger    *zap.Logger
}

// NewRunner wires a Runner.
func NewRunner(fetcher Fetcher, writer Writer, endpoints sar.Endpoints, logger *zap.Logger) *Runner {
	return &Runner{
		fetcher:   fetcher,
		writer:    writer,
		endpoints: endpoints,
		logger:    logger,
	}
}

// systemRef pairs a normalized System with the raw href its listing page
// lives at, so the URL never has to be reconstructed from the identifier.
type systemRef struct {
	system sar.System
	href   string
}

// systemData accumulates one system's successful discovery results.
type systemData struct {
	system     sar.System
	reservoirs []sar.Reservoir
}

// reservoirSeries pairs a station with its fetched observations.
type reservoirSeries struct {
	code         string
	observations []sar.Observation
}

// Run executes the pipeline. The returned error is non-nil only for the
// aborting failures: an unreachable or unparseable system directory. All
// other failures land in the Summary.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	r.logger.Info("starting run", zap.String("run_id", summary.RunID))

	refs, err := r.discoverSystems(ctx, &summary)
	if err != nil {
		return summary, err
	}
	systems := make([]sar.System, 0, len(refs))
	for _, ref := range refs {
		systems = append(systems, ref.system)
	}
	summary.Systems = len(systems)

	perSystem := make([]systemData, 0, len(refs))
	for _, ref := range refs {
		reservoirs, err := r.discoverReservoirs(ctx, ref, &summary)
		if err != nil {
			summary.skip(LevelSystem, ref.system.ID, err)
			r.logger.Warn("skipping system",
				zap.String("system", ref.system.ID), zap.Error(err))
			continue
		}
		summary.Reservoirs += len(reservoirs)
		perSystem = append(perSystem, systemData{system: ref.system, reservoirs: reservoirs})
	}

	var allSeries []reservoirSeries
	for _, sd := range perSystem {
		for _, res := range sd.reservoirs {
			obs, err := r.discoverSeries(ctx, res, &summary)
			if err != nil {
				summary.skip(LevelReservoir, res.StationCode, err)
				r.logger.Warn("skipping reservoir",
					zap.String("station", res.StationCode),
					zap.String("system", res.SystemID),
					zap.Error(err))
				continue
			}
			summary.Observations += len(obs)
			allSeries = append(allSeries, reservoirSeries{code: res.StationCode, observations: obs})
		}
	}

	r.export(systems, perSystem, allSeries, &summary)

	r.logger.Info("run finished",
		zap.String("run_id", summary.RunID),
		zap.Int("systems", summary.Systems),
		zap.Int("reservoirs", summary.Reservoirs),
		zap.Int("observations", summary.Observations),
		zap.Int("skipped", len(summary.Skipped)),
		zap.Int("dropped_records", summary.Dropped),
		zap.Int("write_errors", summary.WriteErrors),
	)
	return summary, nil
}

func (r *Runner) discoverSystems(ctx context.Context, summary *Summary) ([]systemRef, error) {
	body, err := r.fetcher.Fetch(ctx, r.endpoints.Directory)
	if err != nil {
		return nil, fmt.Errorf("fetch system directory: %w", err)
	}
	rows, err := parse.SystemDirectory(body)
	if err != nil {
		return nil, fmt.Errorf("parse system directory: %w", err)
	}

	refs := make([]systemRef, 0, len(rows))
	for _, row := range rows {
		sys, err := normalize.SystemFromDirectory(row)
		if err != nil {
			r.drop(summary, "system", err)
			continue
		}
		refs = append(refs, systemRef{system: sys, href: row.Href})
	}
	return refs, nil
}

func (r *Runner) discoverReservoirs(ctx context.Context, ref systemRef, summary *Summary) ([]sar.Reservoir, error) {
	url, err := r.endpoints.Listing(ref.href)
	if err != nil {
		return nil, err
	}
	body, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch reservoir listing: %w", err)
	}
	rows, err := parse.ReservoirListing(body)
	if err != nil {
		return nil, fmt.Errorf("parse reservoir listing: %w", err)
	}

	reservoirs := make([]sar.Reservoir, 0, len(rows))
	for _, row := range rows {
		res, err := normalize.ReservoirFromListing(ref.system.ID, row)
		if err != nil {
			r.drop(summary, "reservoir", err)
			continue
		}
		reservoirs = append(reservoirs, res)
	}
	return reservoirs, nil
}

func (r *Runner) discoverSeries(ctx context.Context, res sar.Reservoir, summary *Summary) ([]sar.Observation, error) {
	body, err := r.fetcher.Fetch(ctx, r.endpoints.Series(res.StationCode))
	if err != nil {
		return nil, fmt.Errorf("fetch time series: %w", err)
	}
	rows, err := parse.Series(body)
	if err != nil {
		return nil, fmt.Errorf("parse time series: %w", err)
	}

	observations := make([]sar.Observation, 0, len(rows))
	for _, row := range rows {
		obs, err := normalize.ObservationFromSeries(res.StationCode, row)
		if err != nil {
			r.drop(summary, "observation", err)
			continue
		}
		observations = append(observations, obs)
	}
	return observations, nil
}

// drop discards one unconvertible record and accounts for it.
func (r *Runner) drop(summary *Summary, kind string, err error) {
	summary.Dropped++
	r.logger.Warn("dropping record", zap.String("kind", kind), zap.Error(err))
}

// export writes every discovery level. I/O failures cost only the affected
// files; they are counted, logged by the writer, and never abort.
func (r *Runner) export(systems []sar.System, perSystem []systemData, series []reservoirSeries, summary *Summary) {
	if err := r.writer.WriteSystems("sarsystems", systems); err != nil {
		summary.WriteErrors++
	}
	for _, sd := range perSystem {
		if err := r.writer.WriteReservoirs(sar.Slug(sd.system.ID), sd.reservoirs); err != nil {
			summary.WriteErrors++
		}
	}
	for _, rs := range series {
		if err := r.writer.WriteObservations(sar.Slug(rs.code), rs.observations); err != nil {
			summary.WriteErrors++
		}
	}
}
