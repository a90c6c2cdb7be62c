package core

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/alexmk92/modelpicker/core/types"
)

// DefaultFetchTimeout bounds the shared request when no other timeout is set
const DefaultFetchTimeout = 30 * time.Second

// ModelService answers "which models can the user pick" for the UI layer.
// It owns the lister and the recommended list and remembers the first
// successful answer for the rest of the process.
type ModelService struct {
	lister      types.Lister
	recommended []string
	timeout     time.Duration

	group  singleflight.Group
	mu     sync.RWMutex
	cached []string
	loaded bool
}

// NewModelService creates a model service backed by the given lister.
//
// The recommended slice is copied, callers are free to reuse it afterwards.
func NewModelService(lister types.Lister, recommended []string) *ModelService {
	return &ModelService{
		lister:      lister,
		recommended: slices.Clone(recommended),
		timeout:     DefaultFetchTimeout,
	}
}

// WithTimeout sets how long the shared request may run, zero or less keeps the default
func (s *ModelService) WithTimeout(d time.Duration) *ModelService {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Recommended returns the configured recommended models in their configured order
func (s *ModelService) Recommended() []string {
	return slices.Clone(s.recommended)
}

// IsRecommended reports whether model is part of the recommended list
func (s *ModelService) IsRecommended(model string) bool {
	return slices.Contains(s.recommended, model)
}

// AvailableModels returns the models the backend currently supports.
//
// Concurrent callers share a single request. A successful result is cached for
// the lifetime of the service; a failed one is not, so the next caller retries.
//
// The shared request is not tied to any one caller: a cancelled caller returns
// early while the request keeps running for everyone else, bounded by the
// service timeout.
func (s *ModelService) AvailableModels(ctx context.Context) ([]string, error) {
	if s.lister == nil {
		return nil, fmt.Errorf("model lister not initialized")
	}

	s.mu.RLock()
	if s.loaded {
		models := slices.Clone(s.cached)
		s.mu.RUnlock()
		return models, nil
	}
	s.mu.RUnlock()

	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan("models", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(fetchCtx, s.timeout)
		defer cancel()

		models, err := s.lister.ListModels(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list models with %s lister: %w", s.lister.Name(), err)
		}

		s.mu.Lock()
		s.cached = slices.Clone(models)
		s.loaded = true
		s.mu.Unlock()

		log.Debug("Fetched available models", "lister", s.lister.Name(), "count", len(models))
		return models, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]string)), nil
	}
}

// Partition splits available into the recommended subset (in recommended order)
// and the rest (in available order).
//
// A model listed twice by the backend only shows up once, at its first position.
func Partition(available, recommended []string) types.Partition {
	present := make(map[string]bool, len(available))
	for _, m := range available {
		present[m] = true
	}

	p := types.Partition{
		Recommended: []string{},
		Other:       []string{},
	}

	picked := make(map[string]bool, len(recommended))
	for _, m := range recommended {
		if present[m] && !picked[m] {
			p.Recommended = append(p.Recommended, m)
			picked[m] = true
		}
	}

	seen := make(map[string]bool, len(available))
	for _, m := range available {
		if picked[m] || seen[m] {
			continue
		}
		seen[m] = true
		p.Other = append(p.Other, m)
	}

	return p
}
