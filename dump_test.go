package linecfg

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMap() *Map {
	m := newMap(4)
	m.set("I_LIM", DoubleValue(1e-7), Provenance{})
	m.set("V_START", DoubleValue(-1.25), Provenance{})
	m.set("STEPS", IntValue(100), Provenance{})
	m.set("COM", StringValue("COM3"), Provenance{})
	return m
}

func TestDump_PlainText(t *testing.T) {
	var buf bytes.Buffer
	err := Dump(&buf, sampleMap())
	require.NoError(t, err)

	want := strings.Join([]string{
		"               I_LIM =                0.000",
		"             V_START =               -1.250",
		"               STEPS =                  100",
		"                 COM =                 COM3",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Dump output mismatch (-want +got):\n%s", diff)
	}
}

func TestDump_Precision(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, sampleMap(), WithPrecision(9), WithWidths(8, 12)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "   I_LIM =  0.000000100", lines[0])
	assert.Equal(t, " V_START = -1.250000000", lines[1])
	assert.Equal(t, "   STEPS =          100", lines[2])
}

func TestDump_LongValuesNotTruncated(t *testing.T) {
	m := newMap(1)
	m.set("A_VERY_LONG_CONFIGURATION_KEY", StringValue("a value that is wider than twenty"), Provenance{})

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, m))
	assert.Equal(t, "A_VERY_LONG_CONFIGURATION_KEY = a value that is wider than twenty\n", buf.String())
}

func TestDump_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, newMap(0)))
	assert.Empty(t, buf.String())
}

func TestDump_AlternatesStyles(t *testing.T) {
	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(termenv.ANSI)

	require.NoError(t, Dump(&buf, sampleMap(), WithRenderer(r)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	for _, l := range lines {
		assert.Contains(t, l, "\x1b[", "line is styled")
	}

	prefix := func(s string) string { return s[:strings.Index(s, "m")+1] }
	assert.Equal(t, prefix(lines[0]), prefix(lines[2]), "even lines share a style")
	assert.Equal(t, prefix(lines[1]), prefix(lines[3]), "odd lines share a style")
	assert.NotEqual(t, prefix(lines[0]), prefix(lines[1]), "styles alternate")

	assert.Contains(t, lines[0], "I_LIM =")
	assert.Contains(t, lines[3], "COM3")
}

func TestDump_KeepsTabsInValues(t *testing.T) {
	m := newMap(1)
	m.set("S", StringValue("a\tb"), Provenance{})

	var plain bytes.Buffer
	require.NoError(t, Dump(&plain, m, WithWidths(0, 0)))
	assert.Equal(t, "S = a\tb\n", plain.String())

	var styled bytes.Buffer
	r := lipgloss.NewRenderer(&styled)
	r.SetColorProfile(termenv.ANSI)
	require.NoError(t, Dump(&styled, m, WithRenderer(r), WithWidths(0, 0)))
	assert.Contains(t, styled.String(), "S = a\tb")
}

func TestDump_CustomStyles(t *testing.T) {
	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	even := r.NewStyle().Transform(strings.ToLower)
	odd := r.NewStyle().Transform(strings.ToUpper)

	m := newMap(2)
	m.set("Key", StringValue("Even"), Provenance{})
	m.set("Key2", StringValue("Odd"), Provenance{})

	require.NoError(t, Dump(&buf, m, WithStyles(even, odd), WithWidths(0, 0)))
	assert.Equal(t, "key = even\nKEY2 = ODD\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDump_WriteError(t *testing.T) {
	err := Dump(failingWriter{}, sampleMap())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write error")
	assert.Contains(t, err.Error(), "disk full")
}
