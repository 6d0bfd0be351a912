package ingest

import (
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cowtrack/analytics-backend-go/internal/models"
)

// Timestamp layouts seen in the export over the years, most common first.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
	"02/01/2006",
}

// Normalizer turns resolved rows into the immutable fact and dimension
// collections. Row-level problems are counted, never raised; only the
// payload-shape guard upstream can fail a run.
type Normalizer struct {
	log    *slog.Logger
	schema *Schema
}

// NewNormalizer creates a normalizer around a validated schema descriptor.
func NewNormalizer(log *slog.Logger, schema *Schema) *Normalizer {
	return &Normalizer{log: log, schema: schema}
}

// cell returns a resolved field from a row, tolerating short rows.
func cell(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

// Normalize builds a snapshot body from parsed rows (header first).
// Deterministic: the same rows always produce the same collections, in the
// same order.
func (n *Normalizer) Normalize(rows [][]string) *models.Snapshot {
	snap := &models.Snapshot{}
	if len(rows) == 0 {
		return snap
	}

	res := n.schema.Resolve(rows[0])
	snap.Stats.HeaderMatches = res.HeaderMatches
	snap.Stats.FallbackPositions = res.FallbackPositions
	snap.Stats.SchemaDrift = res.SchemaDrift
	if res.SchemaDrift {
		n.log.Warn("schema drift: no header matched, using legacy column layout only")
	}

	cows := make(map[string]models.DimCow)
	cowOrder := []string{}
	locations := make(map[string]models.DimLocation)
	locOrder := []string{}
	events := make(map[string]models.DimEvent)
	eventOrder := []string{}
	staticIDs := make(map[string]bool)
	staticOrder := []string{}
	movedIDs := make(map[string]bool)

	for i, row := range rows[1:] {
		// The static-asset section is co-located on every row; collect it
		// regardless of whether the movement part of the row is usable.
		if id := cell(row, res.Pos(FieldStaticCowID)); id != "" {
			if !staticIDs[id] {
				staticIDs[id] = true
				staticOrder = append(staticOrder, id)
			}
		}

		cowID := cell(row, res.Pos(FieldCowID))
		from := cell(row, res.Pos(FieldFromLocation))
		to := cell(row, res.Pos(FieldToLocation))
		snap.Stats.RowsTotal++
		if cowID == "" || from == "" || to == "" {
			snap.Stats.RowsSkipped++
			continue
		}
		snap.Stats.RowsAccepted++
		movedIDs[cowID] = true

		if _, ok := cows[cowID]; !ok {
			cows[cowID] = models.DimCow{
				CowID:         cowID,
				EquipmentType: cell(row, res.Pos(FieldEquipment)),
				TowerHeight:   n.parseFloat(cell(row, res.Pos(FieldHeight)), &snap.Stats),
				Has2G:         parseBool(cell(row, res.Pos(FieldHas2G))),
				Has3G:         parseBool(cell(row, res.Pos(FieldHas3G))),
				Has4G:         parseBool(cell(row, res.Pos(FieldHas4G))),
				Has5G:         parseBool(cell(row, res.Pos(FieldHas5G))),
				Vendor:        defaultString(cell(row, res.Pos(FieldVendor)), "Unknown"),
				OnAirDate:     n.parseTime(cell(row, res.Pos(FieldOnAirDate)), &snap.Stats),
			}
			cowOrder = append(cowOrder, cowID)
		}

		fromRegion := models.ParseRegion(cell(row, res.Pos(FieldFromRegion)))
		toRegion := models.ParseRegion(cell(row, res.Pos(FieldToRegion)))
		org := cell(row, res.Pos(FieldOrganization))

		n.upsertLocation(locations, &locOrder, from, fromRegion,
			models.ParseLocationKind(cell(row, res.Pos(FieldFromKind))),
			cell(row, res.Pos(FieldFromLat)), cell(row, res.Pos(FieldFromLon)), org, &snap.Stats)
		n.upsertLocation(locations, &locOrder, to, toRegion,
			models.ParseLocationKind(cell(row, res.Pos(FieldToKind))),
			cell(row, res.Pos(FieldToLat)), cell(row, res.Pos(FieldToLon)), org, &snap.Stats)

		eventID := cell(row, res.Pos(FieldEventID))
		eventType := models.ParseEventType(cell(row, res.Pos(FieldEventType)))
		if eventID != "" {
			if _, ok := events[eventID]; !ok {
				events[eventID] = models.DimEvent{
					EventID:   eventID,
					Name:      cell(row, res.Pos(FieldEventName)),
					Type:      eventType,
					StartDate: n.parseTime(cell(row, res.Pos(FieldEventStart)), &snap.Stats),
					EndDate:   n.parseTime(cell(row, res.Pos(FieldEventEnd)), &snap.Stats),
				}
				eventOrder = append(eventOrder, eventID)
			}
		}

		seq := i + 1
		if v, err := strconv.Atoi(cell(row, res.Pos(FieldSeq))); err == nil && v > 0 {
			seq = v
		}

		snap.Facts = append(snap.Facts, models.CowMovementsFact{
			Seq:             seq,
			CowID:           cowID,
			FromLocationID:  from,
			FromSubLocation: cell(row, res.Pos(FieldFromSub)),
			ToLocationID:    to,
			ToSubLocation:   cell(row, res.Pos(FieldToSub)),
			MovedAt:         n.parseTime(cell(row, res.Pos(FieldMovedAt)), &snap.Stats),
			ReachedAt:       n.parseTime(cell(row, res.Pos(FieldReachedAt)), &snap.Stats),
			MovementType:    models.ParseMovementType(cell(row, res.Pos(FieldMovementType))),
			DistanceKM:      n.parseFloat(cell(row, res.Pos(FieldDistance)), &snap.Stats),
			RoyalCategory:   models.ClassifyRoyalCategory(cell(row, res.Pos(FieldRoyalFlag))),
			EventID:         eventID,
			EventType:       eventType,
			FromRegion:      fromRegion,
			ToRegion:        toRegion,
		})
	}

	for _, id := range cowOrder {
		snap.Cows = append(snap.Cows, cows[id])
	}
	// Static-section identifiers that never appear in the movement section
	// are cows the sheet knows about but that were never relocated.
	for _, id := range staticOrder {
		if !movedIDs[id] {
			snap.StaticCows = append(snap.StaticCows, id)
			snap.Cows = append(snap.Cows, models.DimCow{CowID: id, Vendor: "Unknown"})
		}
	}
	for _, id := range locOrder {
		snap.Locations = append(snap.Locations, locations[id])
	}
	for _, id := range eventOrder {
		snap.Events = append(snap.Events, events[id])
	}
	sort.SliceStable(snap.Facts, func(a, b int) bool {
		if snap.Facts[a].MovedAt.Equal(snap.Facts[b].MovedAt) {
			return snap.Facts[a].Seq < snap.Facts[b].Seq
		}
		return snap.Facts[a].MovedAt.Before(snap.Facts[b].MovedAt)
	})
	return snap
}

// upsertLocation records a location the first time it is seen and fills in
// attributes later rows supply (a warehouse often appears first with no
// coordinates, then with them).
func (n *Normalizer) upsertLocation(index map[string]models.DimLocation, order *[]string,
	name string, region models.Region, kind models.LocationKind,
	latText, lonText, org string, stats *models.IngestStats) {

	loc, ok := index[name]
	if !ok {
		loc = models.DimLocation{LocationID: name, Name: name, Region: models.RegionUnknown, Kind: models.KindUnknown}
		*order = append(*order, name)
	}
	if loc.Region == models.RegionUnknown {
		loc.Region = region
	}
	if loc.Kind == models.KindUnknown {
		loc.Kind = kind
	}
	if loc.Organization == "" {
		loc.Organization = org
	}
	if !loc.HasCoords && latText != "" && lonText != "" {
		lat := n.parseFloat(latText, stats)
		lon := n.parseFloat(lonText, stats)
		if lat != 0 || lon != 0 {
			loc.Latitude = lat
			loc.Longitude = lon
			loc.HasCoords = true
		}
	}
	index[name] = loc
}

// parseFloat parses an optional numeric field. Garbage and NaN count as a
// fallback and yield 0 rather than poisoning totals.
func (n *Normalizer) parseFloat(s string, stats *models.IngestStats) float64 {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		stats.NumericFallbacks++
		return 0
	}
	return v
}

// parseTime tries the known export layouts; failure counts as a fallback
// and yields the zero time.
func (n *Normalizer) parseTime(s string, stats *models.IngestStats) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	stats.DateFallbacks++
	return time.Time{}
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "1", "x":
		return true
	default:
		return false
	}
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
