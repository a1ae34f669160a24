package reconcile

import (
	"sort"
	"strconv"
	"strings"
)

// Outcome is the result of one Reconcile call.
type Outcome struct {
	// Requested is true when at least one of the lists was supplied.
	Requested      bool
	InvalidAdd     []int64
	InvalidRemove  []int64
	AppliedAdds    int
	AppliedRemoves int
	Conflicts      []int64

	// Created and Deleted hold the feature ids whose association row was
	// actually written.
	Created []int64
	Deleted []int64
}

// Invalid returns the sorted union of InvalidAdd and InvalidRemove.
func (o Outcome) Invalid() []int64 {
	return union(o.InvalidAdd, o.InvalidRemove)
}

// Changed reports whether any association row was written.
func (o Outcome) Changed() bool {
	return len(o.Created) > 0 || len(o.Deleted) > 0
}

// AllInvalid reports whether ids were requested and none of them resolved.
func (o Outcome) AllInvalid() bool {
	return o.Requested &&
		o.AppliedAdds+o.AppliedRemoves == 0 &&
		len(o.InvalidAdd)+len(o.InvalidRemove) > 0
}

// FormatIDs renders ids as "[1, 2, 3]".
func FormatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func union(a, b []int64) []int64 {
	seen := make(map[int64]struct{}, len(a)+len(b))
	out := make([]int64, 0, len(a)+len(b))
	for _, list := range [][]int64{a, b} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func intersect(a, b []int64) []int64 {
	inA := make(map[int64]struct{}, len(a))
	for _, id := range a {
		inA[id] = struct{}{}
	}
	seen := make(map[int64]struct{})
	var out []int64
	for _, id := range b {
		if _, ok := inA[id]; !ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
