package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSchema_Validates(t *testing.T) {
	require.NoError(t, DefaultSchema().Validate())
}

func TestSchemaValidate_RejectsDuplicates(t *testing.T) {
	s := &Schema{Version: 2, Specs: []FieldSpec{
		{Field: FieldCowID, Fallback: 0},
		{Field: FieldCowID, Fallback: 1},
	}}
	require.Error(t, s.Validate())
}

func TestResolve_MatchesRenamedAndReorderedHeaders(t *testing.T) {
	header := []string{"COW  ID", "Reached Date", "From Location", "Moved Date", "To Location"}
	res := DefaultSchema().Resolve(header)

	require.Equal(t, 0, res.Pos(FieldCowID))
	require.Equal(t, 1, res.Pos(FieldReachedAt))
	require.Equal(t, 2, res.Pos(FieldFromLocation))
	require.Equal(t, 3, res.Pos(FieldMovedAt))
	require.Equal(t, 4, res.Pos(FieldToLocation))
	require.False(t, res.SchemaDrift)
	require.GreaterOrEqual(t, res.HeaderMatches, 5)
}

func TestResolve_SubLocationDoesNotShadowLocation(t *testing.T) {
	header := []string{"From Sub Location", "From Location", "To Sub Location", "To Location"}
	res := DefaultSchema().Resolve(header)

	require.Equal(t, 1, res.Pos(FieldFromLocation))
	require.Equal(t, 0, res.Pos(FieldFromSub))
	require.Equal(t, 3, res.Pos(FieldToLocation))
	require.Equal(t, 2, res.Pos(FieldToSub))
}

func TestResolve_FallsBackToLegacyPositions(t *testing.T) {
	res := DefaultSchema().Resolve([]string{"zz1", "zz2", "zz3"})

	require.True(t, res.SchemaDrift)
	require.Equal(t, 0, res.HeaderMatches)
	require.Equal(t, 1, res.Pos(FieldCowID))
	require.Equal(t, 10, res.Pos(FieldFromLocation))
	require.Equal(t, 12, res.Pos(FieldToLocation))
	require.Equal(t, 14, res.Pos(FieldMovedAt))
	require.Equal(t, 18, res.Pos(FieldRoyalFlag))
	require.Equal(t, 33, res.Pos(FieldStaticCowID))
}

func TestResolve_NeverFails(t *testing.T) {
	res := DefaultSchema().Resolve(nil)
	for _, spec := range DefaultSchema().Specs {
		require.GreaterOrEqual(t, res.Pos(spec.Field), 0)
	}
}
