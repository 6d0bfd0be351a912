package analysis

import (
	"sort"

	"github.com/cowtrack/analytics-backend-go/internal/models"
	"github.com/cowtrack/analytics-backend-go/internal/stats"
)

// ComputeSiteMetrics derives the per-warehouse summary, including the
// dwell-time (stay) reconciliation, over an already-filtered fact set.
// Only warehouse-kind locations get a row.
func ComputeSiteMetrics(locations []models.DimLocation, facts []models.CowMovementsFact) []models.SiteMetrics {
	out := make([]models.SiteMetrics, 0)
	for _, loc := range locations {
		if loc.Kind != models.KindWarehouse {
			continue
		}
		out = append(out, siteMetricsFor(loc, facts))
	}
	return out
}

func siteMetricsFor(loc models.DimLocation, facts []models.CowMovementsFact) models.SiteMetrics {
	m := models.SiteMetrics{
		LocationID: loc.LocationID,
		Name:       loc.Name,
		Region:     loc.Region,
	}

	var incoming, outgoing []models.CowMovementsFact
	var inDistances, outDistances []float64
	regionCounts := make(map[models.Region]int)

	for _, f := range facts {
		if f.ToLocationID == loc.LocationID {
			incoming = append(incoming, f)
			inDistances = append(inDistances, f.DistanceKM)
		}
		if f.FromLocationID == loc.LocationID {
			outgoing = append(outgoing, f)
			outDistances = append(outDistances, f.DistanceKM)
			if f.ToRegion != models.RegionUnknown {
				regionCounts[f.ToRegion]++
			}
		}
	}

	m.IncomingCount = len(incoming)
	m.OutgoingCount = len(outgoing)
	m.AvgInDistance = stats.Mean(inDistances)
	m.AvgOutDistance = stats.Mean(outDistances)
	m.TopRegions = topRegions(regionCounts, 3)
	stays := matchStays(incoming, outgoing)
	m.TotalIdleDays = stats.Sum(stays)
	m.MedianStayDays = stats.Median(stays)
	m.MatchedStays = len(stays)
	return m
}

// matchStays pairs each incoming movement with the earliest outgoing
// movement of the same cow that departs strictly after the arrival. Greedy
// nearest-successor per cow over time-sorted sequences: repeated in/out
// cycles at the same warehouse pair consecutively in time, not by any
// global optimum. Unmatched arrivals contribute no stay. Returns one stay
// duration, in days, per matched pair.
func matchStays(incoming, outgoing []models.CowMovementsFact) []float64 {
	inByCow := make(map[string][]models.CowMovementsFact)
	for _, f := range incoming {
		inByCow[f.CowID] = append(inByCow[f.CowID], f)
	}
	outByCow := make(map[string][]models.CowMovementsFact)
	for _, f := range outgoing {
		outByCow[f.CowID] = append(outByCow[f.CowID], f)
	}

	var stays []float64
	for cowID, arrivals := range inByCow {
		departures := outByCow[cowID]
		sort.SliceStable(arrivals, func(a, b int) bool {
			return arrivals[a].ReachedAt.Before(arrivals[b].ReachedAt)
		})
		sort.SliceStable(departures, func(a, b int) bool {
			return departures[a].MovedAt.Before(departures[b].MovedAt)
		})

		// Two pointers over the sorted sequences; each departure is
		// consumed at most once.
		j := 0
		for _, arr := range arrivals {
			if arr.ReachedAt.IsZero() {
				continue
			}
			for j < len(departures) && (departures[j].MovedAt.IsZero() || !departures[j].MovedAt.After(arr.ReachedAt)) {
				j++
			}
			if j >= len(departures) {
				break
			}
			stays = append(stays, departures[j].MovedAt.Sub(arr.ReachedAt).Hours()/hoursPerDay)
			j++
		}
	}
	return stays
}

// topRegions returns the n most frequent regions, most frequent first, name
// order breaking count ties so the output is deterministic.
func topRegions(counts map[models.Region]int, n int) []models.Region {
	regions := make([]models.Region, 0, len(counts))
	for r := range counts {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(a, b int) bool {
		if counts[regions[a]] == counts[regions[b]] {
			return regions[a] < regions[b]
		}
		return counts[regions[a]] > counts[regions[b]]
	})
	if len(regions) > n {
		regions = regions[:n]
	}
	return regions
}
