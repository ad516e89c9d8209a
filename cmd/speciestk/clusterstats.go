package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gtdbtools/speciestk/pkg/cluster"
)

var clusterStatsCmd = &cobra.Command{
	Use:   "cluster-stats <cluster-file>",
	Short: "Show statistics for a species cluster file",
	Long: `Display summary statistics for a species cluster file.

Example:
  speciestk cluster-stats gtdb_clusters.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clusters, species, err := cluster.ReadClusters(args[0])
		if err != nil {
			return fmt.Errorf("failed to read cluster file: %w", err)
		}

		totalClustered := 0
		singletons := 0
		largest := 0
		largestRid := ""
		for rid, members := range clusters {
			totalClustered += len(members)
			if len(members) == 0 {
				singletons++
			}
			if len(members) > largest {
				largest = len(members)
				largestRid = rid
			}
		}

		namedSpecies := make(map[string]struct{})
		for _, sp := range species {
			if sp != "unclassified" && sp != "" {
				namedSpecies[sp] = struct{}{}
			}
		}

		fmt.Println("===========================================")
		fmt.Println("Species Cluster Statistics")
		fmt.Println("===========================================")
		fmt.Println()
		fmt.Printf("Representatives: %d\n", len(clusters))
		fmt.Printf("Clustered genomes: %d\n", totalClustered)
		fmt.Printf("Total genomes: %d\n", len(clusters)+totalClustered)
		fmt.Printf("Singleton clusters: %d\n", singletons)
		fmt.Printf("Named species: %d\n", len(namedSpecies))
		if largestRid != "" {
			fmt.Printf("Largest cluster: %s (%s) with %d genomes\n",
				largestRid, species[largestRid], largest)
		}

		return nil
	},
}
