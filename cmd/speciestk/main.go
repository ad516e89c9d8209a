package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/gtdbtools/speciestk/logger"
)

var rootCmd = &cobra.Command{
	Use:   "speciestk",
	Short: "speciestk - GTDB species cluster curation tools",
	Long: `speciestk curates a reference genome database for species clustering.

It quality-checks candidate genomes, scores them for representative
selection, classifies type strain genomes, and reads and writes the
canonical species cluster report files.`,
}

func main() {
	dotenvErr := godotenv.Load()

	level := zapcore.InfoLevel
	if s := os.Getenv("SPECIESTK_LOG_LEVEL"); s != "" {
		if parsed, err := zapcore.ParseLevel(s); err == nil {
			level = parsed
		}
	}

	if err := logger.InitLogger(level); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if dotenvErr != nil {
		logger.Debug("No .env found, using local environment")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(qcCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(typeStrainsCmd)
	rootCmd.AddCommand(clusterStatsCmd)
	rootCmd.AddCommand(aniCacheCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("speciestk version 0.1.0")
		fmt.Println("GTDB species cluster curation tools")
	},
}
