package recommender

import (
	"context"
	"errors"

	"github.com/rei-naissance/Huggle-Bundler/domain"
	"github.com/rei-naissance/Huggle-Bundler/pkg/logger"
	"github.com/rei-naissance/Huggle-Bundler/pkg/metrics"
)

var errNoTextGenerator = errors.New("no text generator configured")

// enrichCandidate attempts an AI rewrite of the candidate's name and
// description. Enrichment failure is never surfaced: on any fault the
// templated candidate comes back unchanged, with the reason recorded in the
// enrichment result so tests can assert which path executed.
func (s *RecommenderService) enrichCandidate(ctx context.Context, c domain.BundleCandidate) domain.BundleCandidate {
	err := errNoTextGenerator
	var name, description string

	if s.textGen != nil {
		names := make([]string, 0, len(c.Products))
		for _, p := range c.Products {
			names = append(names, p.Name)
		}
		name, description, err = s.textGen.GenerateBundleCopy(ctx, c.Name, names, c.Stock)
	}

	if err != nil {
		logger.Warn("bundle enrichment fell back to template", "candidate", c.Name, "reason", err)
		metrics.EnrichmentFallbacks.Inc()
		c.Enrichment = &domain.EnrichmentResult{Enriched: false, FallbackReason: err.Error()}
		return c
	}

	metrics.EnrichmentSuccesses.Inc()
	c.Name = name
	c.Description = description
	c.Enrichment = &domain.EnrichmentResult{Enriched: true}

	return c
}
