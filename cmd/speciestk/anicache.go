package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gtdbtools/speciestk/logger"
	"github.com/gtdbtools/speciestk/pkg/ani"
)

var (
	aniCacheMatrix string
	aniCachePath   string
	aniCacheExport string
)

var aniCacheCmd = &cobra.Command{
	Use:   "ani-cache",
	Short: "Import or export cached ANI/AF measurements",
	Long: `Maintain the SQLite cache of directional ANI/AF measurements.

Measurements from a matrix file are merged into the cache, newer values
replacing older ones for the same genome pair. The cache can also be
exported back to a matrix file for inspection.

Examples:
  speciestk ani-cache --matrix ani_af.tsv --cache ani_cache.db
  speciestk ani-cache --cache ani_cache.db --export ani_af.tsv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if aniCachePath == "" {
			aniCachePath = os.Getenv("SPECIESTK_ANI_CACHE")
		}
		if aniCachePath == "" {
			return fmt.Errorf("no cache file given (use --cache or SPECIESTK_ANI_CACHE)")
		}
		if aniCacheMatrix == "" && aniCacheExport == "" {
			return fmt.Errorf("nothing to do: give --matrix to import or --export to export")
		}

		cache, err := ani.OpenCache(aniCachePath)
		if err != nil {
			return err
		}
		defer cache.Close()

		if aniCacheMatrix != "" {
			m, err := ani.ReadMatrix(aniCacheMatrix)
			if err != nil {
				return err
			}
			if err := cache.StoreMatrix(m); err != nil {
				return err
			}

			pairs := 0
			for _, row := range m {
				pairs += len(row)
			}
			logger.Info("Cached ANI measurements",
				zap.String("matrix", aniCacheMatrix), zap.Int("pairs", pairs))
		}

		if aniCacheExport != "" {
			m, err := cache.Load()
			if err != nil {
				return err
			}
			if err := ani.WriteMatrix(aniCacheExport, m); err != nil {
				return err
			}
			logger.Info("Exported ANI cache", zap.String("out", aniCacheExport))
		}

		return nil
	},
}

func init() {
	aniCacheCmd.Flags().StringVar(&aniCacheMatrix, "matrix", "", "ANI/AF matrix file to merge into the cache")
	aniCacheCmd.Flags().StringVar(&aniCachePath, "cache", "", "Cache database file (default $SPECIESTK_ANI_CACHE)")
	aniCacheCmd.Flags().StringVar(&aniCacheExport, "export", "", "Write the cache contents to this matrix file")
}
