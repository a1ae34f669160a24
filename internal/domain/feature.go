package domain

import "time"

// Feature is a named tag scoped to one ParentKind catalog.
type Feature struct {
	ID    int64      `json:"id"`
	Kind  ParentKind `json:"-"`
	Name  string     `json:"name"`
	CDate time.Time  `json:"created_datetime"`
	MDate time.Time  `json:"modified_datetime"`
}

// Association links one parent to one feature of the same kind.
type Association struct {
	ID        int64
	Kind      ParentKind
	ParentID  int64
	FeatureID int64
	CDate     time.Time
	MDate     time.Time
}

// FeatureEvent is broadcast after a reconcile wrote at least one association.
type FeatureEvent struct {
	Kind     string    `json:"kind"`
	ParentID int64     `json:"parentID"`
	Added    []int64   `json:"added,omitempty"`
	Removed  []int64   `json:"removed,omitempty"`
	At       time.Time `json:"at"`
}
