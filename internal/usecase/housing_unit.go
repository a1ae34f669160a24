package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/reconcile"
)

type HousingUnitCreateInput struct {
	BuildingID int64
	UnitNumber string
	Features   *[]int64
}

type HousingUnitUpdateInput struct {
	ID             int64
	UnitNumber     *string
	AddFeatures    *[]int64
	RemoveFeatures *[]int64
}

func (in HousingUnitUpdateInput) fieldsChanged() bool {
	return in.UnitNumber != nil
}

type HousingUnitUsecase struct {
	repo             HousingUnitRepository
	buildings        BuildingRepository
	users            UserRepository
	catalog          FeatureCatalog
	buildingFeatures FeatureCatalog
	features         *featureSync
}

func NewHousingUnitUsecase(
	repo HousingUnitRepository,
	buildings BuildingRepository,
	users UserRepository,
	catalog FeatureCatalog,
	buildingFeatures FeatureCatalog,
	publisher EventPublisher,
	logger *zap.Logger,
) *HousingUnitUsecase {
	return &HousingUnitUsecase{
		repo:             repo,
		buildings:        buildings,
		users:            users,
		catalog:          catalog,
		buildingFeatures: buildingFeatures,
		features:         newFeatureSync(catalog, publisher, logger),
	}
}

func (uc *HousingUnitUsecase) Create(ctx context.Context, in HousingUnitCreateInput) (CreateResult, error) {
	ctx, span := tracer.Start(ctx, "Usecase.HousingUnit.Create")
	defer span.End()

	if _, err := uc.buildings.Get(ctx, in.BuildingID); err != nil {
		return CreateResult{}, err
	}

	unit, err := uc.repo.Create(ctx, domain.HousingUnit{
		BuildingID: in.BuildingID,
		UnitNumber: in.UnitNumber,
	})
	if err != nil {
		span.RecordError(err)
		return CreateResult{}, err
	}

	var outcome reconcile.Outcome
	if in.Features != nil {
		outcome, err = uc.features.apply(ctx, unit.ID, in.Features, nil)
		if err != nil {
			span.RecordError(err)
			return CreateResult{}, err
		}
	}

	return createResult(domain.KindHousingUnit, unit.ID, outcome), nil
}

func (uc *HousingUnitUsecase) Update(ctx context.Context, in HousingUnitUpdateInput) (reconcile.Result, error) {
	ctx, span := tracer.Start(ctx, "Usecase.HousingUnit.Update")
	defer span.End()

	kind := domain.KindHousingUnit

	unit, err := uc.repo.Get(ctx, in.ID)
	if err != nil {
		if result, ok := reconcile.MapError(kind, err); ok {
			return uc.features.record(result), nil
		}
		span.RecordError(err)
		return reconcile.Result{}, err
	}

	other := in.fieldsChanged()
	if err := validateUpdate(other, in.AddFeatures, in.RemoveFeatures); err != nil {
		if result, ok := reconcile.MapError(kind, err); ok {
			return uc.features.record(result), nil
		}
		return reconcile.Result{}, err
	}

	if other {
		unit.UnitNumber = *in.UnitNumber
		if _, err := uc.repo.Update(ctx, unit); err != nil {
			span.RecordError(err)
			return reconcile.Result{}, err
		}
	}

	var outcome reconcile.Outcome
	if in.AddFeatures != nil || in.RemoveFeatures != nil {
		outcome, err = uc.features.apply(ctx, unit.ID, in.AddFeatures, in.RemoveFeatures)
		if err != nil {
			span.RecordError(err)
			return reconcile.Result{}, err
		}
		if !other && outcome.Changed() {
			if err := uc.repo.Touch(ctx, unit.ID); err != nil {
				span.RecordError(err)
				return reconcile.Result{}, err
			}
		}
	}

	return uc.features.record(reconcile.MapOutcome(kind, outcome, other)), nil
}

// Get returns a unit with its building and both sets of feature names.
func (uc *HousingUnitUsecase) Get(ctx context.Context, id int64) (domain.HousingUnit, error) {
	ctx, span := tracer.Start(ctx, "Usecase.HousingUnit.Get")
	defer span.End()

	unit, err := uc.repo.Get(ctx, id)
	if err != nil {
		return domain.HousingUnit{}, err
	}
	if err := uc.decorate(ctx, &unit); err != nil {
		span.RecordError(err)
		return domain.HousingUnit{}, err
	}
	return unit, nil
}

func (uc *HousingUnitUsecase) decorate(ctx context.Context, unit *domain.HousingUnit) error {
	names, err := uc.catalog.Names(ctx, unit.ID)
	if err != nil {
		return err
	}
	unit.Features = names

	if unit.Building != nil && uc.buildingFeatures != nil {
		names, err := uc.buildingFeatures.Names(ctx, unit.Building.ID)
		if err != nil {
			return err
		}
		unit.Building.Features = names
	}
	return nil
}

func (uc *HousingUnitUsecase) ListForUser(ctx context.Context, userID int64) ([]domain.HousingUnit, error) {
	ctx, span := tracer.Start(ctx, "Usecase.HousingUnit.ListForUser")
	defer span.End()

	if _, err := uc.users.Get(ctx, userID); err != nil {
		return nil, err
	}

	units, err := uc.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range units {
		if err := uc.decorate(ctx, &units[i]); err != nil {
			return nil, err
		}
	}
	return units, nil
}

// ListByFeature returns the units carrying the given feature.
func (uc *HousingUnitUsecase) ListByFeature(ctx context.Context, featureID int64) ([]domain.HousingUnit, error) {
	ctx, span := tracer.Start(ctx, "Usecase.HousingUnit.ListByFeature")
	defer span.End()

	_, ok, err := uc.catalog.FindFeature(ctx, featureID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFoundError{Resource: "housing unit feature"}
	}

	ids, err := uc.catalog.ParentIDs(ctx, featureID)
	if err != nil {
		return nil, err
	}

	units := make([]domain.HousingUnit, 0, len(ids))
	for _, id := range ids {
		unit, err := uc.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}

func (uc *HousingUnitUsecase) LinkUser(ctx context.Context, userID, unitID int64) error {
	ctx, span := tracer.Start(ctx, "Usecase.HousingUnit.LinkUser")
	defer span.End()

	if _, err := uc.users.Get(ctx, userID); err != nil {
		return err
	}
	if _, err := uc.repo.Get(ctx, unitID); err != nil {
		return err
	}
	return uc.repo.LinkUser(ctx, userID, unitID)
}

func (uc *HousingUnitUsecase) UnlinkUser(ctx context.Context, userID, unitID int64) error {
	ctx, span := tracer.Start(ctx, "Usecase.HousingUnit.UnlinkUser")
	defer span.End()

	return uc.repo.UnlinkUser(ctx, userID, unitID)
}
