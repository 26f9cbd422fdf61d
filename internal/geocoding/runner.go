package geocoding

import (
	"context"
	"time"

	"github.com/bradfitz/latlong"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/metrics"
	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/store"
	"github.com/propdash/portfolio-service/internal/utils"
)

// Progress is reported after every record of a batch.
type Progress struct {
	Current      int `json:"current"`
	Total        int `json:"total"`
	SuccessCount int `json:"successCount"`
	FailedCount  int `json:"failedCount"`
}

type BatchResult struct {
	RunID        string            `json:"runId"`
	Records      []models.Property `json:"records"`
	SuccessCount int               `json:"successCount"`
	FailedCount  int               `json:"failedCount"`
}

// Runner geocodes records one at a time with a fixed pause between
// consecutive requests. It never retries and never stops on a failed
// record; only context cancellation ends a batch early.
type Runner struct {
	provider Provider
	delay    time.Duration
	metrics  *metrics.Metrics
	sleep    func(ctx context.Context, d time.Duration) error
}

type RunnerOption func(*Runner)

func WithDelay(d time.Duration) RunnerOption {
	return func(r *Runner) { r.delay = d }
}

func WithMetrics(m *metrics.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

func NewRunner(p Provider, opts ...RunnerOption) *Runner {
	r := &Runner{
		provider: p,
		delay:    constants.GeocodeRequestDelay,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run geocodes copies of records in order. Each record's coordinates are
// overwritten: set on success, cleared on failure. On cancellation the
// records finished so far are returned together with ctx.Err().
func (r *Runner) Run(ctx context.Context, records []models.Property, onProgress func(Progress)) (BatchResult, error) {
	started := time.Now()
	res := BatchResult{
		RunID:   uuid.NewString(),
		Records: make([]models.Property, 0, len(records)),
	}
	log := utils.Logger.WithFields(logrus.Fields{
		"run_id":   res.RunID,
		"provider": r.provider.Name(),
		"total":    len(records),
	})
	log.Info("[Geocode] Batch started")

	defer func() {
		r.metrics.ObserveGeocodeBatch(string(r.provider.Name()), time.Since(started).Seconds())
	}()

	for i, rec := range records {
		if i > 0 {
			if err := r.sleep(ctx, r.delay); err != nil {
				log.WithError(err).Warn("[Geocode] Batch cancelled")
				return res, err
			}
		}
		if err := ctx.Err(); err != nil {
			log.WithError(err).Warn("[Geocode] Batch cancelled")
			return res, err
		}

		out := rec.Clone()
		result := r.provider.Geocode(ctx, rec.Location.Address, rec.Location.Region)
		out.Location.Lat = result.Lat
		out.Location.Lng = result.Lng
		out.Location.TimeZone = ""
		if result.Success {
			out.Location.TimeZone = latlong.LookupZoneName(*result.Lat, *result.Lng)
			res.SuccessCount++
		} else {
			res.FailedCount++
			log.WithField("id", rec.ID).Debug("[Geocode] No coordinates for record")
		}
		r.metrics.ObserveGeocode(string(r.provider.Name()), result.Success)
		res.Records = append(res.Records, out)

		if onProgress != nil {
			onProgress(Progress{
				Current:      i + 1,
				Total:        len(records),
				SuccessCount: res.SuccessCount,
				FailedCount:  res.FailedCount,
			})
		}
	}

	log.WithFields(logrus.Fields{
		"success": res.SuccessCount,
		"failed":  res.FailedCount,
	}).Info("[Geocode] Batch finished")
	return res, nil
}

// PadUnprocessed returns a record for every input row: the batch's own
// results followed by the rows a cancelled batch never reached, with their
// coordinates cleared. The second value is how many rows were padded.
func PadUnprocessed(res BatchResult, input []models.Property) ([]models.Property, int) {
	done := len(res.Records)
	if done >= len(input) {
		return res.Records, 0
	}
	out := make([]models.Property, 0, len(input))
	out = append(out, res.Records...)
	for _, rec := range input[done:] {
		p := rec.Clone()
		p.Location.Lat = nil
		p.Location.Lng = nil
		p.Location.TimeZone = ""
		out = append(out, p)
	}
	return out, len(input) - done
}

// EnrichStore geocodes every stored property and writes the coordinates
// back. Records finished before a cancellation are still written.
func EnrichStore(ctx context.Context, s *store.Store, r *Runner, onProgress func(Progress)) (BatchResult, error) {
	res, err := r.Run(ctx, s.Properties(), onProgress)
	for _, p := range res.Records {
		s.SetPropertyLocation(p.ID, p.Location.Lat, p.Location.Lng)
		s.SetPropertyTimeZone(p.ID, p.Location.TimeZone)
	}
	return res, err
}
