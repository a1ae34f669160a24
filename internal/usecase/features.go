package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/reconcile"
)

// featureSync runs the reconcile engine for one catalog and reports what it
// changed.
type featureSync struct {
	engine    *reconcile.Engine
	publisher EventPublisher
	logger    *zap.Logger
}

func newFeatureSync(catalog FeatureCatalog, publisher EventPublisher, logger *zap.Logger) *featureSync {
	return &featureSync{
		engine:    reconcile.NewEngine(catalog.Kind(), catalog),
		publisher: publisher,
		logger:    logger,
	}
}

func (f *featureSync) kind() domain.ParentKind {
	return f.engine.Kind()
}

func (f *featureSync) apply(ctx context.Context, parentID int64, add, remove *[]int64) (reconcile.Outcome, error) {
	outcome, err := f.engine.Reconcile(ctx, parentID, add, remove)
	f.count(outcome)
	if err != nil {
		return outcome, err
	}

	if !outcome.Changed() || f.publisher == nil {
		return outcome, nil
	}

	event := domain.FeatureEvent{
		Kind:     f.kind().Slug(),
		ParentID: parentID,
		Added:    outcome.Created,
		Removed:  outcome.Deleted,
		At:       time.Now().UTC(),
	}
	if err := f.publisher.Publish(ctx, event); err != nil {
		f.logger.Warn("failed to publish feature event",
			zap.String("kind", event.Kind),
			zap.Int64("parent", parentID),
			zap.Error(err),
		)
	}

	return outcome, nil
}

func (f *featureSync) count(outcome reconcile.Outcome) {
	kind := f.kind().Slug()
	if n := len(outcome.Created); n > 0 {
		associationsChanged.WithLabelValues(kind, "create").Add(float64(n))
	}
	if n := len(outcome.Deleted); n > 0 {
		associationsChanged.WithLabelValues(kind, "delete").Add(float64(n))
	}
}

func (f *featureSync) record(result reconcile.Result) reconcile.Result {
	reconcileTotal.WithLabelValues(f.kind().Slug(), result.Status.String()).Inc()
	return result
}

// validateUpdate runs the pre-write checks of an update. A request that only
// changes plain fields carries no feature lists and is valid.
func validateUpdate(otherFieldsChanged bool, add, remove *[]int64) error {
	if otherFieldsChanged && add == nil && remove == nil {
		return nil
	}
	return reconcile.Validate(add, remove)
}

// FeatureUsecase manages the feature catalogs themselves.
type FeatureUsecase struct {
	catalogs map[domain.ParentKind]FeatureCatalog
}

func NewFeatureUsecase(catalogs ...FeatureCatalog) *FeatureUsecase {
	m := make(map[domain.ParentKind]FeatureCatalog, len(catalogs))
	for _, c := range catalogs {
		m[c.Kind()] = c
	}
	return &FeatureUsecase{catalogs: m}
}

func (uc *FeatureUsecase) catalog(kind domain.ParentKind) (FeatureCatalog, error) {
	c, ok := uc.catalogs[kind]
	if !ok {
		return nil, domain.NotFoundError{Resource: "feature catalog"}
	}
	return c, nil
}

func (uc *FeatureUsecase) List(ctx context.Context, kind domain.ParentKind) ([]domain.Feature, error) {
	c, err := uc.catalog(kind)
	if err != nil {
		return nil, err
	}
	return c.List(ctx)
}

func (uc *FeatureUsecase) Create(ctx context.Context, kind domain.ParentKind, name string) (domain.Feature, error) {
	c, err := uc.catalog(kind)
	if err != nil {
		return domain.Feature{}, err
	}
	return c.Create(ctx, name)
}
