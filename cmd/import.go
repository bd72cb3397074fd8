//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package cmd

import (
	"context"
	"errors"
	"fmt"
	"github.com/hotelfo/frontdesk/conf"
	"github.com/hotelfo/frontdesk/importer"
	"github.com/spf13/cobra"
	"log/slog"
	"os"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import arrivals exports into the front desk database",
	Long: "Import arrivals exports into the front desk database\n\n" +
		"Reads every export the FD_IMPORT_SOURCE lists, skipping reservations that were already imported, " +
		"then rebuilds room status from the checked-in stays.",
	Run: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&envFilename, envfileFlagName, envFileDefaultName,
		"An env file from which to load front desk configuration")
}

func runImport(cmd *cobra.Command, args []string) {
	fdCfg := mustInitConfig(envFilename)
	configureLogger(fdCfg)
	if err := runImportInternal(cmd.Context(), fdCfg); err != nil {
		slog.Error("Import failed", "err", err)
		os.Exit(1)
	}
}

func runImportInternal(ctx context.Context, fdCfg *conf.FrontDeskConfig) error {
	if err := fdCfg.Validate(); err != nil {
		return fmt.Errorf("[Validate]: %w", err)
	}
	src, err := importer.NewSource(ctx, fdCfg.Import)
	if err != nil {
		return fmt.Errorf("[NewSource]: %w", err)
	}
	if src == nil {
		return errors.New("no import source configured, set FD_IMPORT_SOURCE")
	}
	svc, err := buildServices(ctx, fdCfg)
	if err != nil {
		return fmt.Errorf("[buildServices]: %w", err)
	}
	defer svc.close()
	if err = svc.inv.Seed(ctx); err != nil {
		return fmt.Errorf("[Seed]: %w", err)
	}
	result, err := importer.New(src, svc.res, svc.lifecycle).Run(ctx)
	if err != nil {
		return fmt.Errorf("[Run]: %w", err)
	}
	slog.Info("Import finished",
		"files", result.Files,
		"rows", result.Rows,
		"imported", result.Imported,
		"duplicates", result.Duplicates,
		"skipped", result.Skipped,
		"occupiedRooms", result.OccupiedRooms,
	)
	return nil
}
