package reconcile

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kebabcase/housing/internal/domain"
)

var tracer = otel.Tracer("reconcile")

type Engine struct {
	kind  domain.ParentKind
	store Store
}

func NewEngine(kind domain.ParentKind, store Store) *Engine {
	return &Engine{
		kind:  kind,
		store: store,
	}
}

func (e *Engine) Kind() domain.ParentKind {
	return e.kind
}

// Validate rejects a request before anything is written. A nil list means the
// field was not supplied; an empty list is a valid, empty instruction.
func Validate(add, remove *[]int64) error {
	if add == nil && remove == nil {
		return &NoOpError{}
	}
	if add != nil && remove != nil {
		if conflicts := intersect(*add, *remove); len(conflicts) > 0 {
			return &ConflictError{IDs: conflicts}
		}
	}
	return nil
}

// Reconcile applies adds, then removes, to the associations of parentID.
// Unknown feature ids are recorded in the Outcome and never stop processing.
// A store error aborts the call; writes made before it are kept.
func (e *Engine) Reconcile(ctx context.Context, parentID int64, add, remove *[]int64) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "Reconcile.Engine.Reconcile")
	defer span.End()

	span.SetAttributes(
		attribute.String("kind", e.kind.Slug()),
		attribute.Int64("parentID", parentID),
	)

	if err := Validate(add, remove); err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			span.SetAttributes(attribute.Int64Slice("conflicts", conflict.IDs))
		}
		return Outcome{}, err
	}

	outcome := Outcome{Requested: true}

	if add != nil {
		for _, featureID := range distinct(*add) {
			_, ok, err := e.store.FindFeature(ctx, featureID)
			if err != nil {
				span.RecordError(err)
				return outcome, errors.Wrapf(err, "find feature %d", featureID)
			}
			if !ok {
				outcome.InvalidAdd = append(outcome.InvalidAdd, featureID)
				continue
			}
			outcome.AppliedAdds++

			_, exists, err := e.store.FindAssociation(ctx, parentID, featureID)
			if err != nil {
				span.RecordError(err)
				return outcome, errors.Wrapf(err, "find association %d/%d", parentID, featureID)
			}
			if exists {
				continue
			}

			err = e.store.CreateAssociation(ctx, parentID, featureID)
			if err != nil {
				span.RecordError(err)
				return outcome, errors.Wrapf(err, "create association %d/%d", parentID, featureID)
			}
			outcome.Created = append(outcome.Created, featureID)
		}
	}

	if remove != nil {
		for _, featureID := range distinct(*remove) {
			_, ok, err := e.store.FindFeature(ctx, featureID)
			if err != nil {
				span.RecordError(err)
				return outcome, errors.Wrapf(err, "find feature %d", featureID)
			}
			if !ok {
				outcome.InvalidRemove = append(outcome.InvalidRemove, featureID)
				continue
			}
			outcome.AppliedRemoves++

			association, exists, err := e.store.FindAssociation(ctx, parentID, featureID)
			if err != nil {
				span.RecordError(err)
				return outcome, errors.Wrapf(err, "find association %d/%d", parentID, featureID)
			}
			if !exists {
				continue
			}

			err = e.store.DeleteAssociation(ctx, association)
			if err != nil {
				span.RecordError(err)
				return outcome, errors.Wrapf(err, "delete association %d/%d", parentID, featureID)
			}
			outcome.Deleted = append(outcome.Deleted, featureID)
		}
	}

	span.SetAttributes(
		attribute.Int("appliedAdds", outcome.AppliedAdds),
		attribute.Int("appliedRemoves", outcome.AppliedRemoves),
		attribute.Int("invalid", len(outcome.InvalidAdd)+len(outcome.InvalidRemove)),
	)

	return outcome, nil
}
