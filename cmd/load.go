package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/db"
	"github.com/dallas-college-lmic/lmic-spatial-api/internal/geocodec"
	"github.com/dallas-college-lmic/lmic-spatial-api/internal/loader"
	"github.com/dallas-college-lmic/lmic-spatial-api/internal/store"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Batch-load source data into the database",
}

// loadPool opens the Postgres store and hands back its pool. The loaders
// speak COPY protocol, so they require the postgres driver.
func loadPool(ctx context.Context) (db.Pool, func(), error) {
	if cfg.Store.Driver != "postgres" {
		return nil, nil, eris.Errorf("load requires the postgres driver, got %s", cfg.Store.Driver)
	}
	st, err := initStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	pg := st.(*store.PostgresStore)
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, nil, err
	}
	return pg.Pool(), func() { _ = pg.Close() }, nil
}

var loadTractsCmd = &cobra.Command{
	Use:   "tracts",
	Short: "Load the wage tract shapefile into tti_clone",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		path, _ := cmd.Flags().GetString("shapefile")
		pool, closeFn, err := loadPool(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		n, err := loader.LoadWageTracts(ctx, pool, geocodec.PostGIS{}, path)
		if err != nil {
			return err
		}
		zap.L().Info("wage tracts loaded", zap.Int64("rows", n), zap.String("shapefile", path))
		return nil
	},
}

var loadIsochronesCmd = &cobra.Command{
	Use:   "isochrones",
	Short: "Load the isochrone band shapefile into isochrone_table",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		path, _ := cmd.Flags().GetString("shapefile")
		pool, closeFn, err := loadPool(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		n, err := loader.LoadIsochrones(ctx, pool, geocodec.PostGIS{}, path)
		if err != nil {
			return err
		}
		zap.L().Info("isochrones loaded", zap.Int64("rows", n), zap.String("shapefile", path))
		return nil
	},
}

var loadCodesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Load the occupation code workbook into occupation_codes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		path, _ := cmd.Flags().GetString("xlsx")
		pool, closeFn, err := loadPool(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		n, err := loader.LoadOccupationCodes(ctx, pool, path)
		if err != nil {
			return err
		}
		zap.L().Info("occupation codes loaded", zap.Int64("rows", n), zap.String("xlsx", path))
		return nil
	},
}

func init() {
	loadTractsCmd.Flags().String("shapefile", "", "path to the wage tract shapefile")
	_ = loadTractsCmd.MarkFlagRequired("shapefile")

	loadIsochronesCmd.Flags().String("shapefile", "", "path to the isochrone shapefile")
	_ = loadIsochronesCmd.MarkFlagRequired("shapefile")

	loadCodesCmd.Flags().String("xlsx", "", "path to the occupation code workbook")
	_ = loadCodesCmd.MarkFlagRequired("xlsx")

	loadCmd.AddCommand(loadTractsCmd, loadIsochronesCmd, loadCodesCmd)
	rootCmd.AddCommand(loadCmd)
}
