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
	"github.com/gtdbtools/speciestk/pkg/quality"
)

var (
	scoreMetadataFile string
	scoreGenomesFile  string
	scoreOutFile      string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute quality scores for genomes",
	Long: `Compute the quality score used to rank genomes when selecting a
species cluster representative.

The score rewards complete assemblies, CheckM completeness, type material
designations and a near-complete 16S rRNA gene, and penalizes
contamination, fragmentation, ambiguous bases and metagenome-assembled or
single-cell genomes.

When --genomes is given only the listed genomes are scored; otherwise
every genome in the metadata table is scored.

Example:
  speciestk score --metadata metadata.csv.gz --out scores.tsv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metadata, err := genome.ReadMetadata(scoreMetadataFile, false)
		if err != nil {
			return fmt.Errorf("failed to read metadata: %w", err)
		}

		var gids []string
		if scoreGenomesFile != "" {
			ncbi, user, err := genome.ReadGenomeIDFile(scoreGenomesFile)
			if err != nil {
				return fmt.Errorf("failed to read genome list: %w", err)
			}
			for gid := range ncbi {
				gids = append(gids, genome.CanonicalID(gid))
			}
			for gid := range user {
				gids = append(gids, gid)
			}
		} else {
			for gid := range metadata {
				gids = append(gids, gid)
			}
		}

		scores, err := quality.Score(gids, metadata)
		if err != nil {
			return fmt.Errorf("scoring failed: %w", err)
		}

		// Rank by descending score, id as tie break.
		sort.Slice(gids, func(i, j int) bool {
			if scores[gids[i]] != scores[gids[j]] {
				return scores[gids[i]] > scores[gids[j]]
			}
			return gids[i] < gids[j]
		})

		f, err := os.Create(scoreOutFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		w := bufio.NewWriter(f)
		fmt.Fprintln(w, "Genome ID\tQuality score")
		for _, gid := range gids {
			fmt.Fprintf(w, "%s\t%.2f\n", gid, scores[gid])
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("failed to write scores: %w", err)
		}

		logger.Info("Wrote quality scores",
			zap.Int("genomes", len(gids)),
			zap.String("out", scoreOutFile))

		return nil
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreMetadataFile, "metadata", "", "GTDB genome metadata table (CSV, optionally gzipped)")
	scoreCmd.Flags().StringVar(&scoreGenomesFile, "genomes", "", "Optional genome id list ('#' comments allowed)")
	scoreCmd.Flags().StringVar(&scoreOutFile, "out", "scores.tsv", "Output file")

	scoreCmd.MarkFlagRequired("metadata")
}
