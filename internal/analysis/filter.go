package analysis

import (
	"sort"
	"strings"

	"github.com/cowtrack/analytics-backend-go/internal/models"
)

// ApplyFilter narrows a fact set to the rows matching every set predicate.
// Unset fields impose no constraint. Filtering is idempotent and preserves
// input order. The vendor predicate is resolved through the cow dimension.
func ApplyFilter(facts []models.CowMovementsFact, cows []models.DimCow, filter models.MovementFilter) []models.CowMovementsFact {
	if filter.IsZero() {
		out := make([]models.CowMovementsFact, len(facts))
		copy(out, facts)
		return out
	}

	vendorByCow := make(map[string]string, len(cows))
	for _, c := range cows {
		vendorByCow[c.CowID] = c.Vendor
	}

	out := make([]models.CowMovementsFact, 0, len(facts))
	for _, f := range facts {
		if filter.Year != 0 && f.Year() != filter.Year {
			continue
		}
		if filter.Region != "" && f.ToRegion != models.ParseRegion(filter.Region) {
			continue
		}
		if filter.Vendor != "" && !strings.EqualFold(vendorByCow[f.CowID], filter.Vendor) {
			continue
		}
		if filter.MovementType != "" && f.MovementType != models.ParseMovementType(filter.MovementType) {
			continue
		}
		if filter.EventType != "" && f.EventType != models.ParseEventType(filter.EventType) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// GroupByCow partitions facts per cow, each history sorted by departure
// time (ties broken by sequence number).
func GroupByCow(facts []models.CowMovementsFact) map[string][]models.CowMovementsFact {
	byCow := make(map[string][]models.CowMovementsFact)
	for _, f := range facts {
		byCow[f.CowID] = append(byCow[f.CowID], f)
	}
	for id := range byCow {
		sortChronological(byCow[id])
	}
	return byCow
}

func sortChronological(history []models.CowMovementsFact) {
	sort.SliceStable(history, func(a, b int) bool {
		if history[a].MovedAt.Equal(history[b].MovedAt) {
			return history[a].Seq < history[b].Seq
		}
		return history[a].MovedAt.Before(history[b].MovedAt)
	})
}
