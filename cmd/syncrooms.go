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
	"fmt"
	"github.com/hotelfo/frontdesk/conf"
	"github.com/spf13/cobra"
	"log/slog"
	"os"
)

var syncRoomsCmd = &cobra.Command{
	Use:   "sync_rooms",
	Short: "Rebuild room occupancy from the checked-in stays",
	Run:   runSyncRooms,
}

func init() {
	rootCmd.AddCommand(syncRoomsCmd)
	syncRoomsCmd.Flags().StringVar(&envFilename, envfileFlagName, envFileDefaultName,
		"An env file from which to load front desk configuration")
}

func runSyncRooms(cmd *cobra.Command, args []string) {
	fdCfg := mustInitConfig(envFilename)
	configureLogger(fdCfg)
	occupied, err := runSyncRoomsInternal(cmd.Context(), fdCfg)
	if err != nil {
		slog.Error("Room sync failed", "err", err)
		os.Exit(1)
	}
	stderrPrintf("%d rooms occupied\n", occupied)
}

func runSyncRoomsInternal(ctx context.Context, fdCfg *conf.FrontDeskConfig) (int, error) {
	if err := fdCfg.Validate(); err != nil {
		return 0, fmt.Errorf("[Validate]: %w", err)
	}
	svc, err := buildServices(ctx, fdCfg)
	if err != nil {
		return 0, fmt.Errorf("[buildServices]: %w", err)
	}
	defer svc.close()
	if err = svc.inv.Seed(ctx); err != nil {
		return 0, fmt.Errorf("[Seed]: %w", err)
	}
	n, err := svc.lifecycle.SyncRoomStatusFromStays(ctx)
	if err != nil {
		return 0, fmt.Errorf("[SyncRoomStatusFromStays]: %w", err)
	}
	return n, nil
}
