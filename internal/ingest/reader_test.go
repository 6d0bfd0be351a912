package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLine_QuotedFieldWithDelimiterAndEscapedQuote(t *testing.T) {
	fields := ParseLine(`a,"Riyadh, ""Main"" WH",b`)
	require.Equal(t, []string{"a", `Riyadh, "Main" WH`, "b"}, fields)
}

func TestParseLine_TrimsUnquotedFields(t *testing.T) {
	fields := ParseLine("  COW-1 ,  Riyadh WH ,")
	require.Equal(t, []string{"COW-1", "Riyadh WH", ""}, fields)
}

func TestParseLine_KeepsQuotedWhitespace(t *testing.T) {
	fields := ParseLine(`" padded ",x`)
	require.Equal(t, []string{" padded ", "x"}, fields)
}

func TestParseLine_UnterminatedQuoteEndsFieldAtEOL(t *testing.T) {
	fields := ParseLine(`a,"unterminated, field`)
	require.Equal(t, []string{"a", "unterminated, field"}, fields)
}

func TestParseLine_EmptyLine(t *testing.T) {
	require.Equal(t, []string{""}, ParseLine(""))
}

func TestSplitRows_PassesShortAndLongRowsThrough(t *testing.T) {
	rows := SplitRows("h1,h2\na\nb,c,d\n\n")
	require.Equal(t, [][]string{{"h1", "h2"}, {"a"}, {"b", "c", "d"}}, rows)
}

func TestSplitRows_HandlesCRLF(t *testing.T) {
	rows := SplitRows("h1,h2\r\na,b\r\n")
	require.Equal(t, [][]string{{"h1", "h2"}, {"a", "b"}}, rows)
}

func TestSplitRows_Idempotent(t *testing.T) {
	payload := "h1,h2\n\"x,y\",z\na, b \n"
	require.Equal(t, SplitRows(payload), SplitRows(payload))
}

func TestCheckTabular_RejectsHTMLErrorPage(t *testing.T) {
	err := CheckTabular([]byte("<!DOCTYPE html>\n<html><body>502 Bad Gateway</body></html>"))
	require.ErrorIs(t, err, ErrNotTabular)

	err = CheckTabular([]byte("<HTML><head><title>error</title></head>"))
	require.ErrorIs(t, err, ErrNotTabular)
}

func TestCheckTabular_AcceptsDelimitedText(t *testing.T) {
	require.NoError(t, CheckTabular([]byte("S/N,COW ID,From Location\n1,COW-1,Riyadh WH\n")))
}
