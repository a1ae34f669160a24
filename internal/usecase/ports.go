package usecase

import (
	"context"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/reconcile"
	"github.com/kebabcase/housing/internal/service"
)

// BuildingRepository defines persistence for buildings and their user links.
type BuildingRepository interface {
	Get(ctx context.Context, id int64) (domain.Building, error)
	Create(ctx context.Context, building domain.Building) (domain.Building, error)
	Update(ctx context.Context, building domain.Building) (domain.Building, error)
	Touch(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.BuildingFilter) ([]domain.Building, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Building, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Building, error)
	LinkUser(ctx context.Context, userID, buildingID int64) error
	UnlinkUser(ctx context.Context, userID, buildingID int64) error
}

// HousingUnitRepository defines persistence for housing units and their user links.
type HousingUnitRepository interface {
	Get(ctx context.Context, id int64) (domain.HousingUnit, error)
	Create(ctx context.Context, unit domain.HousingUnit) (domain.HousingUnit, error)
	Update(ctx context.Context, unit domain.HousingUnit) (domain.HousingUnit, error)
	Touch(ctx context.Context, id int64) error
	ListByBuilding(ctx context.Context, buildingID int64) ([]domain.HousingUnit, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.HousingUnit, error)
	LinkUser(ctx context.Context, userID, unitID int64) error
	UnlinkUser(ctx context.Context, userID, unitID int64) error
}

// FeatureCatalog is one feature catalog together with its association table.
type FeatureCatalog interface {
	reconcile.Store
	Kind() domain.ParentKind
	List(ctx context.Context) ([]domain.Feature, error)
	Create(ctx context.Context, name string) (domain.Feature, error)
	Names(ctx context.Context, parentID int64) ([]string, error)
	ParentIDs(ctx context.Context, featureID int64) ([]int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
}

// EventPublisher broadcasts association changes.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.FeatureEvent) error
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Authenticator issues bearer tokens.
type Authenticator interface {
	PasswordHasher
	Authenticate(ctx context.Context, email, password, clientName string) (service.AuthResult, error)
}
