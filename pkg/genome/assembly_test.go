package genome

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadExcludedFromRefSeq(t *testing.T) {
	refseq := "#   See ftp://ftp.ncbi.nlm.nih.gov/genomes/README_assembly_summary.txt\n" +
		"# assembly_accession\tbioproject\texcluded_from_refseq\n" +
		"GCF_000005845.2\tPRJNA57779\t\n" +
		"GCF_000008865.2\tPRJNA57781\tderived from metagenome\n"
	genbank := "# assembly_accession\tbioproject\texcluded_from_refseq\n" +
		"GCA_000008085.1\tPRJNA13699\tmany frameshifted proteins\n"

	dir := t.TempDir()
	refseqPath := filepath.Join(dir, "assembly_summary_refseq.txt")
	genbankPath := filepath.Join(dir, "assembly_summary_genbank.txt")
	require.NoError(t, os.WriteFile(refseqPath, []byte(refseq), 0644))
	require.NoError(t, os.WriteFile(genbankPath, []byte(genbank), 0644))

	excluded, err := ReadExcludedFromRefSeq(refseqPath, genbankPath)
	require.NoError(t, err)

	// Accessions gain their database prefix.
	assert.Equal(t, "", excluded["RS_GCF_000005845.2"])
	assert.Equal(t, "derived from metagenome", excluded["RS_GCF_000008865.2"])
	assert.Equal(t, "many frameshifted proteins", excluded["GB_GCA_000008085.1"])
}

func TestReadGenomeIDFile(t *testing.T) {
	content := "# candidate genomes\n" +
		"RS_GCF_000005845.2\tsome annotation\n" +
		"GB_GCA_000008085.1\n" +
		"U_74684 extra tokens\n" +
		"\n"
	path := filepath.Join(t.TempDir(), "gids.lst")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	ncbi, user, err := ReadGenomeIDFile(path)
	require.NoError(t, err)

	assert.Len(t, ncbi, 2)
	assert.Contains(t, ncbi, "RS_GCF_000005845.2")
	assert.Contains(t, ncbi, "GB_GCA_000008085.1")

	assert.Len(t, user, 1)
	assert.Contains(t, user, "U_74684")
}
