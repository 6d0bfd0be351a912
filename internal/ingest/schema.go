package ingest

import (
	"fmt"
	"regexp"
	"strings"
)

// Field is a logical column of the movements export.
type Field string

const (
	FieldSeq           Field = "seq"
	FieldCowID         Field = "cow_id"
	FieldEquipment     Field = "equipment"
	FieldHeight        Field = "height"
	FieldHas2G         Field = "has_2g"
	FieldHas3G         Field = "has_3g"
	FieldHas4G         Field = "has_4g"
	FieldHas5G         Field = "has_5g"
	FieldVendor        Field = "vendor"
	FieldOnAirDate     Field = "on_air_date"
	FieldFromLocation  Field = "from_location"
	FieldFromSub       Field = "from_sub_location"
	FieldToLocation    Field = "to_location"
	FieldToSub         Field = "to_sub_location"
	FieldMovedAt       Field = "moved_at"
	FieldReachedAt     Field = "reached_at"
	FieldMovementType  Field = "movement_type"
	FieldDistance      Field = "distance"
	FieldRoyalFlag     Field = "royal_flag"
	FieldEventID       Field = "event_id"
	FieldEventName     Field = "event_name"
	FieldEventType     Field = "event_type"
	FieldEventStart    Field = "event_start"
	FieldEventEnd      Field = "event_end"
	FieldFromLat       Field = "from_lat"
	FieldFromLon       Field = "from_lon"
	FieldToLat         Field = "to_lat"
	FieldToLon         Field = "to_lon"
	FieldFromRegion    Field = "from_region"
	FieldToRegion      Field = "to_region"
	FieldFromKind      Field = "from_kind"
	FieldToKind        Field = "to_kind"
	FieldOrganization  Field = "organization"
	FieldStaticCowID   Field = "static_cow_id"
	FieldStaticRegion  Field = "static_region"
)

var spaceRE = regexp.MustCompile(`\s+`)

// normHeader lowercases, trims and collapses whitespace so header matching
// survives cosmetic edits to the sheet.
func normHeader(s string) string {
	return spaceRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// headerRule decides whether a normalized header cell carries a logical
// field. A rule matches on any exact alias, or on any contains-group whose
// substrings all appear, as long as no excluded substring appears.
type headerRule struct {
	exact    []string
	contains [][]string
	excludes []string
}

func (r headerRule) matches(h string) bool {
	for _, ex := range r.excludes {
		if strings.Contains(h, ex) {
			return false
		}
	}
	for _, e := range r.exact {
		if h == e {
			return true
		}
	}
	for _, group := range r.contains {
		all := true
		for _, sub := range group {
			if !strings.Contains(h, sub) {
				all = false
				break
			}
		}
		if all && len(group) > 0 {
			return true
		}
	}
	return false
}

// FieldSpec binds a logical field to its header rule and to the position it
// occupied in the legacy fixed layout the export used for years.
type FieldSpec struct {
	Field    Field
	Rule     headerRule
	Fallback int
}

// Schema is the versioned column descriptor. It is declared once, validated
// at startup, and never re-derived per run.
type Schema struct {
	Version int
	Specs   []FieldSpec
}

// Validate rejects descriptors that could not possibly resolve: duplicate
// logical fields, negative fallback positions, or fields with no rule and
// no usable fallback.
func (s *Schema) Validate() error {
	seen := make(map[Field]bool, len(s.Specs))
	for _, spec := range s.Specs {
		if spec.Field == "" {
			return fmt.Errorf("schema v%d: empty field name", s.Version)
		}
		if seen[spec.Field] {
			return fmt.Errorf("schema v%d: duplicate field %q", s.Version, spec.Field)
		}
		seen[spec.Field] = true
		if spec.Fallback < 0 {
			return fmt.Errorf("schema v%d: field %q has negative fallback position", s.Version, spec.Field)
		}
	}
	return nil
}

// Resolution maps every logical field to a column index. The resolver never
// fails: a field whose header was not found resolves to its legacy
// position, and out-of-range reads downstream yield the empty string.
type Resolution struct {
	positions map[Field]int

	HeaderMatches     int
	FallbackPositions int
	// SchemaDrift is set when not a single header matched; the payload
	// probably changed shape and only the legacy layout assumption remains.
	SchemaDrift bool
}

// Pos returns the resolved column index for a logical field.
func (r *Resolution) Pos(f Field) int {
	return r.positions[f]
}

// Resolve maps the header row onto column positions. Each spec takes the
// first matching header cell; specs resolved earlier do not block later
// ones from matching the same cell (duplicate headers are the sheet's
// problem, not ours).
func (s *Schema) Resolve(header []string) *Resolution {
	normed := make([]string, len(header))
	for i, h := range header {
		normed[i] = normHeader(h)
	}

	res := &Resolution{positions: make(map[Field]int, len(s.Specs))}
	for _, spec := range s.Specs {
		pos := -1
		for i, h := range normed {
			if spec.Rule.matches(h) {
				pos = i
				break
			}
		}
		if pos >= 0 {
			res.HeaderMatches++
		} else {
			pos = spec.Fallback
			res.FallbackPositions++
		}
		res.positions[spec.Field] = pos
	}
	res.SchemaDrift = res.HeaderMatches == 0
	return res
}

// DefaultSchema returns the v1 descriptor for the movements export: header
// rules for the current sheet plus the legacy fixed-layout positions.
func DefaultSchema() *Schema {
	return &Schema{
		Version: 1,
		Specs: []FieldSpec{
			{FieldSeq, headerRule{exact: []string{"s/n", "sn", "seq", "no"}}, 0},
			{FieldCowID, headerRule{exact: []string{"cow id", "cow name", "cow"}, contains: [][]string{{"cow", "id"}}, excludes: []string{"static"}}, 1},
			{FieldEquipment, headerRule{contains: [][]string{{"equipment"}}}, 2},
			{FieldHeight, headerRule{contains: [][]string{{"height"}}}, 3},
			{FieldHas2G, headerRule{exact: []string{"2g"}}, 4},
			{FieldHas3G, headerRule{exact: []string{"3g"}}, 5},
			{FieldHas4G, headerRule{exact: []string{"4g", "lte"}}, 6},
			{FieldHas5G, headerRule{exact: []string{"5g"}}, 7},
			{FieldVendor, headerRule{contains: [][]string{{"vendor"}, {"supplier"}}}, 8},
			{FieldOnAirDate, headerRule{contains: [][]string{{"on air"}, {"install"}}}, 9},
			{FieldFromLocation, headerRule{contains: [][]string{{"from", "location"}, {"from", "site"}}, excludes: []string{"sub"}}, 10},
			{FieldFromSub, headerRule{contains: [][]string{{"from", "sub"}}}, 11},
			{FieldToLocation, headerRule{contains: [][]string{{"to", "location"}, {"to", "site"}}, excludes: []string{"sub"}}, 12},
			{FieldToSub, headerRule{contains: [][]string{{"to", "sub"}}}, 13},
			{FieldMovedAt, headerRule{contains: [][]string{{"moved"}, {"departure"}}}, 14},
			{FieldReachedAt, headerRule{contains: [][]string{{"reached"}, {"arrival"}}}, 15},
			{FieldMovementType, headerRule{contains: [][]string{{"movement", "type"}}}, 16},
			{FieldDistance, headerRule{contains: [][]string{{"distance"}}}, 17},
			{FieldRoyalFlag, headerRule{exact: []string{"ebu", "royal"}, contains: [][]string{{"royal", "ebu"}, {"ebu", "flag"}}}, 18},
			{FieldEventID, headerRule{contains: [][]string{{"event", "id"}}}, 19},
			{FieldEventName, headerRule{contains: [][]string{{"event", "name"}}}, 20},
			{FieldEventType, headerRule{contains: [][]string{{"event", "type"}}}, 21},
			{FieldEventStart, headerRule{contains: [][]string{{"event", "start"}}}, 22},
			{FieldEventEnd, headerRule{contains: [][]string{{"event", "end"}}}, 23},
			{FieldFromLat, headerRule{contains: [][]string{{"from", "lat"}}}, 24},
			{FieldFromLon, headerRule{contains: [][]string{{"from", "lon"}, {"from", "lng"}}}, 25},
			{FieldToLat, headerRule{contains: [][]string{{"to", "lat"}}}, 26},
			{FieldToLon, headerRule{contains: [][]string{{"to", "lon"}, {"to", "lng"}}}, 27},
			{FieldFromRegion, headerRule{contains: [][]string{{"from", "region"}}}, 28},
			{FieldToRegion, headerRule{contains: [][]string{{"to", "region"}}}, 29},
			{FieldFromKind, headerRule{contains: [][]string{{"from", "type"}, {"from", "kind"}}}, 30},
			{FieldToKind, headerRule{contains: [][]string{{"to", "type"}, {"to", "kind"}}}, 31},
			{FieldOrganization, headerRule{contains: [][]string{{"organization"}, {"org"}}}, 32},
			{FieldStaticCowID, headerRule{contains: [][]string{{"static", "cow"}}}, 33},
			{FieldStaticRegion, headerRule{contains: [][]string{{"static", "region"}}}, 34},
		},
	}
}
