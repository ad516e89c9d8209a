package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gtdbtools/speciestk/logger"
	"github.com/gtdbtools/speciestk/pkg/genome"
	"github.com/gtdbtools/speciestk/pkg/typestrain"
)

var (
	typeStrainsMetadataFile string
	typeStrainsOutFile      string
)

var typeStrainsCmd = &cobra.Command{
	Use:   "type-strains",
	Short: "Classify genomes as type strain material",
	Long: `Classify every genome as type strain of a species under the NCBI and
GTDB vocabularies.

The two vocabularies are independent and may disagree for a genome;
downstream representative selection prefers GTDB type strains, then NCBI
type strains.

Example:
  speciestk type-strains --metadata metadata.csv.gz --out type_strains.tsv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metadata, err := genome.ReadMetadata(typeStrainsMetadataFile, false)
		if err != nil {
			return fmt.Errorf("failed to read metadata: %w", err)
		}

		ncbiType := typestrain.NCBITypeStrainOfSpecies(metadata)
		gtdbType := typestrain.GTDBTypeStrainOfSpecies(metadata)

		gids := make([]string, 0, len(metadata))
		for gid := range metadata {
			gids = append(gids, gid)
		}
		sort.Strings(gids)

		f, err := os.Create(typeStrainsOutFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		w := bufio.NewWriter(f)
		fmt.Fprintln(w, "Genome ID\tNCBI type species\tGTDB type species\tNCBI type material designation\tGTDB type designation")
		for _, gid := range gids {
			_, isNCBI := ncbiType[gid]
			_, isGTDB := gtdbType[gid]
			fmt.Fprintf(w, "%s\t%t\t%t\t%s\t%s\n",
				gid, isNCBI, isGTDB,
				metadata[gid].NCBITypeMaterialDesignation,
				metadata[gid].GTDBTypeDesignation)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("failed to write type strain table: %w", err)
		}

		logger.Info("Classified type strains",
			zap.Int("ncbi_type_species", len(ncbiType)),
			zap.Int("gtdb_type_species", len(gtdbType)),
			zap.String("out", typeStrainsOutFile))

		return nil
	},
}

func init() {
	typeStrainsCmd.Flags().StringVar(&typeStrainsMetadataFile, "metadata", "", "GTDB genome metadata table (CSV, optionally gzipped)")
	typeStrainsCmd.Flags().StringVar(&typeStrainsOutFile, "out", "type_strains.tsv", "Output file")

	typeStrainsCmd.MarkFlagRequired("metadata")
}
