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
	"github.com/hotelfo/frontdesk/allocation"
	"github.com/hotelfo/frontdesk/api"
	"github.com/hotelfo/frontdesk/conf"
	"github.com/hotelfo/frontdesk/housekeeping"
	"github.com/hotelfo/frontdesk/importer"
	"github.com/hotelfo/frontdesk/inventory"
	"github.com/hotelfo/frontdesk/lib/log"
	"github.com/hotelfo/frontdesk/lifecycle"
	"github.com/hotelfo/frontdesk/reservation"
	"github.com/hotelfo/frontdesk/store"
	"github.com/hotelfo/frontdesk/store/actionlog"
	"github.com/hotelfo/frontdesk/store/fodb"
	"github.com/spf13/cobra"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envfileFlagName    = "envfile"
	envFileDefaultName = ".env"

	printConfigFlagName = "print-config"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Launch the front desk server",
	Long: "Launch the front desk server\n\n" +
		"Configuration is read from the .env file, and can be overridden by FD_* environment variables.",
	Run: runServer,
}

func runServer(cmd *cobra.Command, args []string) {
	fdCfg := mustInitConfig(envFilename)
	os.Exit(runServerInternal(context.Background(), fdCfg, printConfig, make(chan string, 1)))
}

// services is everything a front desk process runs on top of one database.
type services struct {
	dbq       *store.DBQ
	inv       *inventory.Inventory
	engine    *allocation.Engine
	lifecycle *lifecycle.Controller
	res       *reservation.Store
	hsk       *housekeeping.Generator
	logger    *actionlog.Logger
	loc       *time.Location
}

func (s *services) close() {
	s.logger.Close()
}

// buildServices opens the database and wires the domain packages together.
// Actions are recorded to the action log and to every extra recorder given.
func buildServices(ctx context.Context, fdCfg *conf.FrontDeskConfig, extra ...actionlog.Recorder) (*services, error) {
	loc, err := fdCfg.Hotel.Location()
	if err != nil {
		return nil, fmt.Errorf("[Location]: %w", err)
	}
	db, err := store.SqlDB(ctx, fdCfg.Store, true)
	if err != nil {
		return nil, fmt.Errorf("[SqlDB]: %w", err)
	}
	dbq := store.NewDBQ(db, fodb.New())
	logger := actionlog.NewLogger(ctx, dbq, fdCfg.Core.ActionLogEnabled, false)
	rec := append(actionlog.Recorders{logger}, extra...)

	inv := inventory.New(dbq, inventory.NewCatalog(fdCfg.Hotel.RoomBlocks), fdCfg.Hotel.TwinRooms, fdCfg.Hotel.RoomsCacheTTL)
	engine := allocation.New(dbq, inv, rec)
	return &services{
		dbq:       dbq,
		inv:       inv,
		engine:    engine,
		lifecycle: lifecycle.New(dbq, inv, engine, rec, lifecycle.WithLocation(loc)),
		res:       reservation.New(dbq, inv, engine, rec),
		hsk:       housekeeping.New(dbq, inv, rec),
		logger:    logger,
		loc:       loc,
	}, nil
}

// boot seeds the room table and loads reservations on a fresh database.
func (s *services) boot(ctx context.Context, fdCfg *conf.FrontDeskConfig) error {
	if fdCfg.Store.Type == conf.DBStoreTypeNoOp {
		slog.Warn("Skipping room seed and initial import for the noop store")
		return nil
	}
	if err := s.inv.Seed(ctx); err != nil {
		return fmt.Errorf("[Seed]: %w", err)
	}
	src, err := importer.NewSource(ctx, fdCfg.Import)
	if err != nil {
		return fmt.Errorf("[NewSource]: %w", err)
	}
	result, err := importer.New(src, s.res, s.lifecycle).InitialLoad(ctx)
	if err != nil {
		return fmt.Errorf("[InitialLoad]: %w", err)
	}
	slog.Info("Initial load finished",
		"files", result.Files,
		"imported", result.Imported,
		"duplicates", result.Duplicates,
		"skipped", result.Skipped,
		"occupiedRooms", result.OccupiedRooms,
	)
	return nil
}

// runServerInternal starts the front desk server and blocks until it is terminated.
//
// The supplied channel will be provided with the address of the server at the time when
// the server is started and ready to accept connections.
func runServerInternal(
	ctx context.Context, unvalidatedCfg *conf.FrontDeskConfig,
	printConfig bool, listeningAddr chan<- string,
) (exitCode int) {
	must(unvalidatedCfg.Validate())
	fdCfg := unvalidatedCfg

	configureLogger(fdCfg)

	if printConfig {
		cfgStr := fdCfg.PrintRedacted()
		stderrPrintf("Here's the final redacted FrontDeskConfig:\n\n%v\n\n", cfgStr)
	}

	eventSource := api.NewEventSourcerer()
	svc, err := buildServices(ctx, fdCfg, eventSource)
	must(err)
	must(svc.boot(ctx, fdCfg))

	notifyCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	mux := api.AddToMux(nil, eventSource, fdCfg, api.FrontDesk{
		DBQ:          svc.dbq,
		Inventory:    svc.inv,
		Engine:       svc.engine,
		Lifecycle:    svc.lifecycle,
		Reservations: svc.res,
		Housekeeping: svc.hsk,
		Recorder:     actionlog.Recorders{svc.logger, eventSource},
		Location:     svc.loc,
	})

	s := &http.Server{
		Handler:     mux,
		ReadTimeout: 30 * time.Second,
		// Long enough for EventSource clients. After this they're
		// disconnected and reconnect.
		WriteTimeout:   30 * time.Minute,
		MaxHeaderBytes: 1 << 20,
	}
	s.RegisterOnShutdown(func() {
		eventSource.Close()
	})

	addr := fmt.Sprintf("%v:%v", fdCfg.Core.Host, fdCfg.Core.Port)
	listener, err := net.Listen("tcp", addr)
	must(err)
	addr = fmt.Sprintf("%v:%v", fdCfg.Core.Host, listener.Addr().(*net.TCPAddr).Port)

	go func() {
		err := s.Serve(listener)
		slog.Error("Serve", "err", err)
	}()

	slog.Info("Front desk server is ready for connections", "addr", addr, "deployment", fdCfg.Core.Deployment)

	listeningAddr <- addr
	close(listeningAddr)
	// Blocks until the NotifyContext is done
	<-notifyCtx.Done()
	stop()
	slog.Error("Shutting down gracefully, press Ctrl+C again to force")

	// Don't parent this ctx on the notifyCtx, because it's already done.
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = s.Shutdown(timeoutCtx)
	slog.Error("Server shut down", "err", err)
	svc.close()
	cancel()
	return 69
}

func configureLogger(fdCfg *conf.FrontDeskConfig) {
	var logLevel slog.Level
	must(logLevel.UnmarshalText([]byte(fdCfg.Core.LogLevel)))
	logger := slog.New(
		log.New(
			&slog.HandlerOptions{Level: logLevel},
		),
	)
	slog.SetDefault(logger)
}

var (
	envFilename string
	printConfig bool
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&envFilename, envfileFlagName, envFileDefaultName,
		"An env file from which to load front desk configuration. "+
			"Defaults to '.env' in the current directory")
	serveCmd.Flags().BoolVar(&printConfig, printConfigFlagName, true,
		"Whether to print the redacted FrontDeskConfig on server startup")
}

// must logs an error and panics. This should only be done for
// startup errors, not after the server is up and running.
func must(err error) {
	if err != nil {
		panic("got a startup error: " + err.Error())
	}
}

func stderrPrintf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}
