package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/reconcile"
)

var tracer = otel.Tracer("usecase")

type BuildingCreateInput struct {
	Address  string
	City     string
	State    string
	ZipCode  string
	Features *[]int64
}

// BuildingUpdateInput carries a partial update. Nil fields were not supplied.
type BuildingUpdateInput struct {
	ID             int64
	Address        *string
	City           *string
	State          *string
	ZipCode        *string
	AddFeatures    *[]int64
	RemoveFeatures *[]int64
}

func (in BuildingUpdateInput) fieldsChanged() bool {
	return in.Address != nil || in.City != nil || in.State != nil || in.ZipCode != nil
}

func (in BuildingUpdateInput) applyTo(b *domain.Building) {
	if in.Address != nil {
		b.Address = *in.Address
	}
	if in.City != nil {
		b.City = *in.City
	}
	if in.State != nil {
		b.State = *in.State
	}
	if in.ZipCode != nil {
		b.ZipCode = *in.ZipCode
	}
}

// CreateResult describes a freshly created parent and the fate of the
// feature ids submitted with it.
type CreateResult struct {
	ID         int64   `json:"id"`
	Message    string  `json:"message"`
	InvalidIDs []int64 `json:"invalid_feature_ids,omitempty"`
}

// Partial reports whether some submitted feature ids did not resolve.
func (r CreateResult) Partial() bool {
	return len(r.InvalidIDs) > 0
}

func createResult(kind domain.ParentKind, id int64, outcome reconcile.Outcome) CreateResult {
	invalid := outcome.Invalid()
	if len(invalid) > 0 {
		return CreateResult{
			ID:         id,
			Message:    fmt.Sprintf("%s created, but the following feature IDs were not found: %s", kind, reconcile.FormatIDs(invalid)),
			InvalidIDs: invalid,
		}
	}
	return CreateResult{
		ID:      id,
		Message: fmt.Sprintf("%s was added successfully! %s ID: %d", kind, kind, id),
	}
}

type BuildingUsecase struct {
	repo     BuildingRepository
	units    HousingUnitRepository
	users    UserRepository
	catalog  FeatureCatalog
	features *featureSync
}

func NewBuildingUsecase(
	repo BuildingRepository,
	units HousingUnitRepository,
	users UserRepository,
	catalog FeatureCatalog,
	publisher EventPublisher,
	logger *zap.Logger,
) *BuildingUsecase {
	return &BuildingUsecase{
		repo:     repo,
		units:    units,
		users:    users,
		catalog:  catalog,
		features: newFeatureSync(catalog, publisher, logger),
	}
}

func (uc *BuildingUsecase) Create(ctx context.Context, in BuildingCreateInput) (CreateResult, error) {
	ctx, span := tracer.Start(ctx, "Usecase.Building.Create")
	defer span.End()

	building, err := uc.repo.Create(ctx, domain.Building{
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		ZipCode: in.ZipCode,
	})
	if err != nil {
		span.RecordError(err)
		return CreateResult{}, err
	}

	var outcome reconcile.Outcome
	if in.Features != nil {
		outcome, err = uc.features.apply(ctx, building.ID, in.Features, nil)
		if err != nil {
			span.RecordError(err)
			return CreateResult{}, err
		}
	}

	return createResult(domain.KindBuilding, building.ID, outcome), nil
}

// Update changes plain fields and reconciles features in one request. Errors
// that belong to the response table come back as a Result with a nil error.
func (uc *BuildingUsecase) Update(ctx context.Context, in BuildingUpdateInput) (reconcile.Result, error) {
	ctx, span := tracer.Start(ctx, "Usecase.Building.Update")
	defer span.End()

	kind := domain.KindBuilding

	building, err := uc.repo.Get(ctx, in.ID)
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
		in.applyTo(&building)
		if _, err := uc.repo.Update(ctx, building); err != nil {
			span.RecordError(err)
			return reconcile.Result{}, err
		}
	}

	var outcome reconcile.Outcome
	if in.AddFeatures != nil || in.RemoveFeatures != nil {
		outcome, err = uc.features.apply(ctx, building.ID, in.AddFeatures, in.RemoveFeatures)
		if err != nil {
			span.RecordError(err)
			return reconcile.Result{}, err
		}
		if !other && outcome.Changed() {
			if err := uc.repo.Touch(ctx, building.ID); err != nil {
				span.RecordError(err)
				return reconcile.Result{}, err
			}
		}
	}

	return uc.features.record(reconcile.MapOutcome(kind, outcome, other)), nil
}

// Get returns a building with its feature names.
func (uc *BuildingUsecase) Get(ctx context.Context, id int64) (domain.Building, error) {
	ctx, span := tracer.Start(ctx, "Usecase.Building.Get")
	defer span.End()

	building, err := uc.repo.Get(ctx, id)
	if err != nil {
		return domain.Building{}, err
	}

	building.Features, err = uc.catalog.Names(ctx, id)
	if err != nil {
		span.RecordError(err)
		return domain.Building{}, err
	}

	return building, nil
}

func (uc *BuildingUsecase) List(ctx context.Context, filter domain.BuildingFilter) ([]domain.Building, error) {
	ctx, span := tracer.Start(ctx, "Usecase.Building.List")
	defer span.End()

	return uc.repo.List(ctx, filter)
}

// ListByFeature returns the buildings carrying the given feature.
func (uc *BuildingUsecase) ListByFeature(ctx context.Context, featureID int64) ([]domain.Building, error) {
	ctx, span := tracer.Start(ctx, "Usecase.Building.ListByFeature")
	defer span.End()

	_, ok, err := uc.catalog.FindFeature(ctx, featureID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFoundError{Resource: "building feature"}
	}

	ids, err := uc.catalog.ParentIDs(ctx, featureID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Building{}, nil
	}
	return uc.repo.ListByIDs(ctx, ids)
}

func (uc *BuildingUsecase) ListHousingUnits(ctx context.Context, buildingID int64) ([]domain.HousingUnit, error) {
	ctx, span := tracer.Start(ctx, "Usecase.Building.ListHousingUnits")
	defer span.End()

	if _, err := uc.repo.Get(ctx, buildingID); err != nil {
		return nil, err
	}
	return uc.units.ListByBuilding(ctx, buildingID)
}

func (uc *BuildingUsecase) ListForUser(ctx context.Context, userID int64) ([]domain.Building, error) {
	ctx, span := tracer.Start(ctx, "Usecase.Building.ListForUser")
	defer span.End()

	if _, err := uc.users.Get(ctx, userID); err != nil {
		return nil, err
	}

	buildings, err := uc.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range buildings {
		buildings[i].Features, err = uc.catalog.Names(ctx, buildings[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return buildings, nil
}

func (uc *BuildingUsecase) LinkUser(ctx context.Context, userID, buildingID int64) error {
	ctx, span := tracer.Start(ctx, "Usecase.Building.LinkUser")
	defer span.End()

	if _, err := uc.users.Get(ctx, userID); err != nil {
		return err
	}
	if _, err := uc.repo.Get(ctx, buildingID); err != nil {
		return err
	}
	return uc.repo.LinkUser(ctx, userID, buildingID)
}

func (uc *BuildingUsecase) UnlinkUser(ctx context.Context, userID, buildingID int64) error {
	ctx, span := tracer.Start(ctx, "Usecase.Building.UnlinkUser")
	defer span.End()

	return uc.repo.UnlinkUser(ctx, userID, buildingID)
}
