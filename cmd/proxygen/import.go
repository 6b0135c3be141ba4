package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ramonehamilton/proxygen/internal/cards"
	"github.com/ramonehamilton/proxygen/internal/storage"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		dbPath string
		keep   int
	)

	cmd := &cobra.Command{
		Use:   "import <allcards.json>",
		Short: "Import a dataset dump into the SQLite snapshot database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = a.cfg.Dataset.DBPath
			}
			if dbPath == "" {
				return fmt.Errorf("no database path: set dataset.db_path or pass --db")
			}

			// The snapshot holds the dump as decoded. Layout filtering and
			// collision handling run again whenever a store is built from it.
			records, err := cards.ReadRecordsFile(args[0])
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			opts := append(loadOptions(a.cfg.Dataset), cards.WithUnsupportedLayouts())
			store, err := cards.NewStore(records, opts...)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			logCollisions(a.logger, store)

			dbCfg := storage.DefaultConfig(dbPath)
			dbCfg.AutoMigrate = true
			db, err := storage.Open(dbCfg)
			if err != nil {
				return err
			}
			defer db.Close()

			snap, err := db.SaveSnapshot(cmd.Context(), args[0], records)
			if err != nil {
				return err
			}
			a.logger.Info("Dataset snapshot saved",
				zap.String("id", snap.ID),
				zap.Int("records", snap.RecordCount),
				zap.String("db", dbPath))

			if keep > 0 {
				removed, err := db.PruneSnapshots(cmd.Context(), keep)
				if err != nil {
					return err
				}
				a.logger.Info("Old snapshots pruned", zap.Int("removed", removed))
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Imported %d cards as snapshot %s\n", snap.RecordCount, snap.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "snapshot database (default dataset.db_path)")
	cmd.Flags().IntVar(&keep, "keep", 3, "snapshots to keep, 0 keeps all")
	return cmd
}
