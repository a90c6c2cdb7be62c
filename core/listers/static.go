package listers

import (
	"context"
	"slices"

	"github.com/alexmk92/modelpicker/core/types"
)

// StaticLister answers with a fixed list, handy offline or for gateways
// that do not implement GET /models.
type StaticLister struct {
	models []string
}

var _ types.Lister = (*StaticLister)(nil)

// NewStaticLister creates a lister that always returns models
func NewStaticLister(models []string) *StaticLister {
	return &StaticLister{models: slices.Clone(models)}
}

// ListModels returns the configured models in their configured order
func (l *StaticLister) ListModels(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(l.models), nil
}

// Name returns the name of the lister
func (l *StaticLister) Name() string {
	return ListerStatic.String()
}
