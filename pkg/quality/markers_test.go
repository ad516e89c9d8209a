package quality

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtdbtools/speciestk/pkg/genome"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadMarkerPercentagesDomainSelection(t *testing.T) {
	report := "Genome ID\tPredicted domain\tBacterial Marker Percentage\tArchaeal Marker Percentage\n" +
		"GCF_1\td__Bacteria\t98.5\t12.0\n" +
		"GCF_2\td__Archaea\t15.0\t96.2\n"
	path := writeTempFile(t, "domain_report.tsv", report)

	perc, err := ReadMarkerPercentages(path)
	require.NoError(t, err)

	assert.InDelta(t, 98.5, perc["GCF_1"], 0.001)
	assert.InDelta(t, 96.2, perc["GCF_2"], 0.001)
}

func TestReadMarkerPercentagesReorderedColumns(t *testing.T) {
	report := "Genome ID\tArchaeal Marker Percentage\tPredicted domain\tBacterial Marker Percentage\n" +
		"GCF_1\t10.0\td__Bacteria\t97.0\n"
	path := writeTempFile(t, "domain_report.tsv", report)

	perc, err := ReadMarkerPercentages(path)
	require.NoError(t, err)

	assert.InDelta(t, 97.0, perc["GCF_1"], 0.001)
}

func TestReadMarkerPercentagesMissingColumn(t *testing.T) {
	report := "Genome ID\tPredicted domain\tBacterial Marker Percentage\n" +
		"GCF_1\td__Bacteria\t98.5\n"
	path := writeTempFile(t, "domain_report.tsv", report)

	_, err := ReadMarkerPercentages(path)

	var malformed *genome.MalformedReportError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "Archaeal Marker Percentage", malformed.Column)
}

func TestReadPassedQC(t *testing.T) {
	content := "Genome ID\tCompleteness\n" +
		"GCF_1\t98.2\n" +
		"GCF_2\t91.0\n"
	path := writeTempFile(t, "qc_passed.tsv", content)

	passed, err := ReadPassedQC(path)
	require.NoError(t, err)

	assert.Len(t, passed, 2)
	assert.Contains(t, passed, "GCF_1")
	assert.Contains(t, passed, "GCF_2")
}
