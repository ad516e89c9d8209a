package cluster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeRadiusRoundTrip(t *testing.T) {
	radius := map[string]Radius{
		"GCF_1": {ANI: 96.65, AF: 0.78, NeighborGid: "GCF_2"},
		"GCF_2": {ANI: 96.65, AF: 0.81, NeighborGid: "GCF_1"},
	}
	species := map[string]string{
		"GCF_1": "s__Foo bar",
		"GCF_2": "s__Foo baz",
	}

	path := filepath.Join(t.TempDir(), "type_radius.tsv")
	require.NoError(t, WriteTypeRadius(path, radius, species))

	gotRadius, gotSpecies, err := ReadTypeRadius(path)
	require.NoError(t, err)

	assert.Equal(t, species, gotSpecies)
	require.Len(t, gotRadius, 2)
	assert.InDelta(t, 96.65, gotRadius["GCF_1"].ANI, 0.001)
	assert.InDelta(t, 0.78, gotRadius["GCF_1"].AF, 0.001)
	assert.Equal(t, "GCF_2", gotRadius["GCF_1"].NeighborGid)
}

func TestTypeRadiusNoNeighbor(t *testing.T) {
	radius := map[string]Radius{
		"GCF_1": {ANI: 95.0},
	}
	species := map[string]string{"GCF_1": "s__Foo bar"}

	path := filepath.Join(t.TempDir(), "type_radius.tsv")
	require.NoError(t, WriteTypeRadius(path, radius, species))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 6)
	assert.Equal(t, "0.00", fields[3]) // absent AF written as zero
	assert.Equal(t, "N/A", fields[4])
	assert.Equal(t, "N/A", fields[5])

	gotRadius, _, err := ReadTypeRadius(path)
	require.NoError(t, err)
	assert.Equal(t, "", gotRadius["GCF_1"].NeighborGid)
}
