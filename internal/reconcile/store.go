package reconcile

import (
	"context"

	"github.com/kebabcase/housing/internal/domain"
)

// Store is the persistence surface the engine needs. Lookups report absence
// through the boolean, not through an error.
type Store interface {
	FindFeature(ctx context.Context, id int64) (domain.Feature, bool, error)
	FindAssociation(ctx context.Context, parentID, featureID int64) (domain.Association, bool, error)
	CreateAssociation(ctx context.Context, parentID, featureID int64) error
	DeleteAssociation(ctx context.Context, association domain.Association) error
}
