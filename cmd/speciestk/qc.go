package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gtdbtools/speciestk/logger"
	"github.com/gtdbtools/speciestk/pkg/genome"
	"github.com/gtdbtools/speciestk/pkg/quality"
)

var (
	qcMetadataFile string
	qcDomainReport string
	qcOutDir       string
	qcWorkers      int

	qcMinComp        float64
	qcMaxCont        float64
	qcMinQuality     float64
	qcSHException    float64
	qcMinPercMarkers float64
	qcMaxContigs     int
	qcMinN50         int
	qcMaxAmbiguous   int64
)

var qcCmd = &cobra.Command{
	Use:   "qc",
	Short: "Quality check all candidate genomes",
	Long: `Apply the QC admissibility gate to every genome in the metadata table.

Each genome is checked against the completeness, contamination, quality,
marker percentage, contig count, N50 and ambiguous base criteria. Genomes
with strain heterogeneity at or above the exception threshold have their
contamination discounted, since conspecific strain contamination does not
indicate foreign DNA.

Writes qc_passed.tsv and qc_failed.tsv to the output directory and logs
per-category failure totals.

Example:
  speciestk qc --metadata metadata.csv.gz --domain-report domains.tsv --out-dir qc/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metadata, err := genome.ReadMetadata(qcMetadataFile, false)
		if err != nil {
			return fmt.Errorf("failed to read metadata: %w", err)
		}
		logger.Info("Read genome metadata", zap.Int("genomes", len(metadata)))

		markerPerc, err := quality.ReadMarkerPercentages(qcDomainReport)
		if err != nil {
			return fmt.Errorf("failed to read domain report: %w", err)
		}

		metaIDs := make([]string, 0, len(metadata))
		for gid := range metadata {
			metaIDs = append(metaIDs, gid)
		}
		markerIDs := make([]string, 0, len(markerPerc))
		for gid := range markerPerc {
			markerIDs = append(markerIDs, gid)
		}
		if err := genome.CheckConsistentIDs(metaIDs, markerIDs); err != nil {
			return err
		}

		sort.Strings(metaIDs)

		thresholds := quality.Thresholds{
			MinCompleteness:  qcMinComp,
			MaxContamination: qcMaxCont,
			MinQuality:       qcMinQuality,
			SHException:      qcSHException,
			MinMarkerPerc:    qcMinPercMarkers,
			MaxContigs:       qcMaxContigs,
			MinN50:           qcMinN50,
			MaxAmbiguous:     qcMaxAmbiguous,
		}

		verdicts, failed, err := quality.RunBatchQC(metaIDs, metadata, markerPerc, thresholds, qcWorkers)
		if err != nil {
			return fmt.Errorf("QC failed: %w", err)
		}

		if err := os.MkdirAll(qcOutDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		numPassed, err := writeQCFiles(metaIDs, metadata, markerPerc, verdicts)
		if err != nil {
			return err
		}

		logger.Info("QC complete",
			zap.Int("passed", numPassed),
			zap.Int("failed", len(metaIDs)-numPassed))
		for category, count := range failed.Counts() {
			logger.Info("Failure category", zap.String("category", category), zap.Int("count", count))
		}

		return nil
	},
}

// writeQCFiles writes the passed and failed genome tables and returns the
// number of genomes that passed.
func writeQCFiles(gids []string, metadata map[string]*genome.Record,
	markerPerc map[string]float64, verdicts map[string]bool) (int, error) {

	passedFile, err := os.Create(filepath.Join(qcOutDir, "qc_passed.tsv"))
	if err != nil {
		return 0, fmt.Errorf("failed to create qc_passed.tsv: %w", err)
	}
	defer passedFile.Close()

	failedFile, err := os.Create(filepath.Join(qcOutDir, "qc_failed.tsv"))
	if err != nil {
		return 0, fmt.Errorf("failed to create qc_failed.tsv: %w", err)
	}
	defer failedFile.Close()

	const header = "Genome ID\tCompleteness\tContamination\tStrain heterogeneity\tMarker percentage\tContig count\tN50 contigs\tAmbiguous bases"

	passed := bufio.NewWriter(passedFile)
	failedW := bufio.NewWriter(failedFile)
	fmt.Fprintln(passed, header)
	fmt.Fprintln(failedW, header)

	numPassed := 0
	for _, gid := range gids {
		rec := metadata[gid]
		w := failedW
		if verdicts[gid] {
			w = passed
			numPassed++
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t%d\t%d\n",
			gid,
			rec.CheckMCompleteness,
			rec.CheckMContamination,
			rec.CheckMStrainHeterogeneity100,
			markerPerc[gid],
			rec.ContigCount,
			rec.N50Contigs,
			rec.AmbiguousBases)
	}

	if err := passed.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write qc_passed.tsv: %w", err)
	}
	if err := failedW.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write qc_failed.tsv: %w", err)
	}

	return numPassed, nil
}

func init() {
	defaults := quality.DefaultThresholds()

	qcCmd.Flags().StringVar(&qcMetadataFile, "metadata", "", "GTDB genome metadata table (CSV, optionally gzipped)")
	qcCmd.Flags().StringVar(&qcDomainReport, "domain-report", "", "GTDB domain report with marker gene percentages")
	qcCmd.Flags().StringVar(&qcOutDir, "out-dir", ".", "Output directory")
	qcCmd.Flags().IntVar(&qcWorkers, "workers", 0, "Number of parallel workers (0 = CPU count)")

	qcCmd.Flags().Float64Var(&qcMinComp, "min-comp", defaults.MinCompleteness, "Minimum CheckM completeness")
	qcCmd.Flags().Float64Var(&qcMaxCont, "max-cont", defaults.MaxContamination, "Maximum CheckM contamination")
	qcCmd.Flags().Float64Var(&qcMinQuality, "min-quality", defaults.MinQuality, "Minimum quality (completeness - 5*contamination)")
	qcCmd.Flags().Float64Var(&qcSHException, "sh-exception", defaults.SHException, "Strain heterogeneity at which contamination is discounted")
	qcCmd.Flags().Float64Var(&qcMinPercMarkers, "min-perc-markers", defaults.MinMarkerPerc, "Minimum percentage of expected marker genes")
	qcCmd.Flags().IntVar(&qcMaxContigs, "max-contigs", defaults.MaxContigs, "Maximum number of contigs")
	qcCmd.Flags().IntVar(&qcMinN50, "min-n50", defaults.MinN50, "Minimum N50 of contigs")
	qcCmd.Flags().Int64Var(&qcMaxAmbiguous, "max-ambiguous", defaults.MaxAmbiguous, "Maximum number of ambiguous bases")

	qcCmd.MarkFlagRequired("metadata")
	qcCmd.MarkFlagRequired("domain-report")
}
