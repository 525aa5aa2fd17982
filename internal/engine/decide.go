package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kamusis/kiosk/internal/manifest"
	"github.com/kamusis/kiosk/internal/retrieval"
	"github.com/kamusis/kiosk/internal/routing"
)

// Decision is everything downstream code needs to act on a query.
type Decision struct {
	Domain      string             `json:"domain"`
	DomainScore float64            `json:"domain_score"`
	Manifest    *manifest.Manifest `json:"-"`
	Task        string             `json:"task"`
	Attach      bool               `json:"attach_context"`
	Probe       float64            `json:"probe_score"`
	Packs       []string           `json:"packs"`
	Chunks      []retrieval.Chunk  `json:"chunks"`
}

// DecideAndPrepare routes query to a domain and task, resolves the packs for
// area and, when the attach policy says so, retrieves and ranks chunks.
// Searcher errors are returned wrapped; no timeout or retry is added.
func (e *Engine) DecideAndPrepare(ctx context.Context, query, area string) (Decision, error) {
	return e.decide(ctx, e.runLogger(), query, area)
}

func (e *Engine) decide(ctx context.Context, log *zap.Logger, query, area string) (Decision, error) {
	route := e.router.PickDomain(query, e.Set())
	m := route.Manifest
	task := e.router.PickTask(query, m)
	packs := routing.PacksForTask(task, area, m)
	att := e.router.Attach(query, task, packs, m)

	d := Decision{
		Domain:      route.ID,
		DomainScore: route.Score,
		Manifest:    m,
		Task:        task,
		Attach:      att.Attach,
		Probe:       att.Probe,
		Packs:       packs,
		Chunks:      []retrieval.Chunk{},
	}

	if d.Attach {
		found, err := e.searcher.Search(ctx, query, packs, e.topK)
		if err != nil {
			log.Warn("search failed", zap.String("domain", d.Domain), zap.Strings("packs", packs), zap.Error(err))
			return Decision{}, fmt.Errorf("search %s packs: %w", d.Domain, err)
		}
		d.Chunks = retrieval.Rank(found)
	}

	log.Debug("decided",
		zap.String("domain", d.Domain),
		zap.Float64("domain_score", d.DomainScore),
		zap.String("task", d.Task),
		zap.Bool("attach", d.Attach),
		zap.Bool("required", att.Required),
		zap.Float64("probe", att.Probe),
		zap.Float64("threshold", att.Threshold),
		zap.Strings("packs", d.Packs),
		zap.Int("chunks", len(d.Chunks)),
	)
	return d, nil
}
