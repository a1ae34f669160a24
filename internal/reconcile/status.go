package reconcile

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kebabcase/housing/internal/domain"
)

// StatusClass is the transport-agnostic response category of a reconcile.
type StatusClass int

const (
	StatusOK StatusClass = iota
	StatusPartialContent
	StatusBadRequest
	StatusNotFound
)

func (s StatusClass) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusPartialContent:
		return "partial_content"
	case StatusBadRequest:
		return "bad_request"
	case StatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

func (s StatusClass) HTTPStatus() int {
	switch s {
	case StatusOK:
		return http.StatusOK
	case StatusPartialContent:
		return http.StatusPartialContent
	case StatusBadRequest:
		return http.StatusBadRequest
	case StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

const (
	MessageNoFields        = "No fields provided for update"
	MessageNoFeaturesFound = "Could not find any of the requested features"
)

type Result struct {
	Status      StatusClass `json:"-"`
	Message     string      `json:"message"`
	InvalidIDs  []int64     `json:"invalid_feature_ids,omitempty"`
	ConflictIDs []int64     `json:"conflict_feature_ids,omitempty"`
}

// MapOutcome classifies a finished reconcile. otherFieldsChanged tells whether
// the same request also changed plain fields of the parent; when it did, an
// all-invalid feature request is reported as partial rather than not found.
func MapOutcome(kind domain.ParentKind, outcome Outcome, otherFieldsChanged bool) Result {
	invalid := outcome.Invalid()

	if !otherFieldsChanged && outcome.AllInvalid() {
		return Result{
			Status:     StatusNotFound,
			Message:    MessageNoFeaturesFound,
			InvalidIDs: invalid,
		}
	}

	if len(invalid) > 0 {
		return Result{
			Status:     StatusPartialContent,
			Message:    fmt.Sprintf("%s updated, but the following feature IDs were not found: %s", kind, FormatIDs(invalid)),
			InvalidIDs: invalid,
		}
	}

	return Result{
		Status:  StatusOK,
		Message: fmt.Sprintf("%s info has been successfully updated!", kind),
	}
}

// MapError classifies the errors that end an update before the engine ran to
// completion. It returns false for errors that are not part of the table.
func MapError(kind domain.ParentKind, err error) (Result, bool) {
	if errors.Is(err, domain.ErrNotFound) {
		return Result{
			Status:  StatusNotFound,
			Message: fmt.Sprintf("%s not found", kind),
		}, true
	}

	var noop *NoOpError
	if errors.As(err, &noop) {
		return Result{
			Status:  StatusBadRequest,
			Message: MessageNoFields,
		}, true
	}

	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return Result{
			Status:      StatusBadRequest,
			Message:     conflict.Error(),
			ConflictIDs: conflict.IDs,
		}, true
	}

	return Result{}, false
}
