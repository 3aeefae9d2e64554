// Package compliance holds the pure verdict logic: folding per-file findings
// into a hub's violation set and comparing it against a compliance level.
package compliance

import (
	"sort"

	"github.com/openkraft/hubguard/internal/domain"
)

// Aggregate folds per-file violation lists into one set for hub. Each bucket
// is ordered by file then line, so the result does not depend on the order
// the lists arrive in. Violations are stamped with hub.
func Aggregate(hub string, perFile [][]domain.Violation) domain.ViolationSet {
	set := domain.NewViolationSet()
	for _, vs := range perFile {
		for _, v := range vs {
			v.Hub = hub
			set.Add(v)
		}
	}
	sortBucket(set.Critical)
	sortBucket(set.High)
	sortBucket(set.Medium)
	sortBucket(set.Low)
	return set
}

func sortBucket(vs []domain.Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		if vs[i].File != vs[j].File {
			return vs[i].File < vs[j].File
		}
		return vs[i].Line < vs[j].Line
	})
}
