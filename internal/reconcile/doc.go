// Package reconcile updates the many-to-many link between a parent (a building
// or a housing unit) and its feature catalog from two instruction lists, and
// translates the result into one of four response classes.
//
// The engine holds no state of its own. Every lookup and write goes through a
// Store bound to a single catalog, so the same engine code serves building
// features and housing-unit features.
package reconcile
