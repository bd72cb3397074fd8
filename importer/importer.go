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

// Package importer loads reservations in bulk from the property-management
// system's arrivals exports.
package importer

import (
	"context"
	"fmt"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/hotelfo/frontdesk/lifecycle"
	"github.com/hotelfo/frontdesk/reservation"
	"log/slog"
)

type Importer struct {
	src Source
	res *reservation.Store
	ctl *lifecycle.Controller
}

func New(src Source, res *reservation.Store, ctl *lifecycle.Controller) *Importer {
	return &Importer{
		src: src,
		res: res,
		ctl: ctl,
	}
}

type Result struct {
	Files      int
	Rows       int
	Imported   int
	Duplicates int
	Skipped    int
	// OccupiedRooms is the count from the room status sync that ends a run.
	OccupiedRooms int
}

// Run imports every export the source lists, then rebuilds room status
// from the stays. A file that can't be read fails the run. A row the
// reservation store rejects is skipped.
func (im *Importer) Run(ctx context.Context) (Result, error) {
	var result Result
	names, err := im.src.List(ctx)
	if err != nil {
		return result, fmt.Errorf("[List]: %w", err)
	}
	for _, name := range names {
		if err = im.importFile(ctx, name, &result); err != nil {
			return result, fmt.Errorf("[importFile] %v: %w", name, err)
		}
		result.Files++
	}
	result.OccupiedRooms, err = im.ctl.SyncRoomStatusFromStays(ctx)
	if err != nil {
		return result, fmt.Errorf("[SyncRoomStatusFromStays]: %w", err)
	}
	slog.Info("Finished reservation import",
		"files", result.Files,
		"rows", result.Rows,
		"imported", result.Imported,
		"duplicates", result.Duplicates,
		"skipped", result.Skipped,
		"occupiedRooms", result.OccupiedRooms,
	)
	return result, nil
}

func (im *Importer) importFile(ctx context.Context, name string, result *Result) error {
	rc, err := im.src.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("[Open]: %w", err)
	}
	defer func() { _ = rc.Close() }()

	rows, stats, err := ReadReservations(rc)
	if err != nil {
		return fmt.Errorf("[ReadReservations]: %w", err)
	}
	result.Rows += stats.Rows
	result.Skipped += stats.BadDates + stats.MissingName
	for _, row := range rows {
		_, created, err := im.res.Import(ctx, row)
		if err != nil {
			if fderr.KindOf(err) == fderr.KindStore {
				return fmt.Errorf("[Import]: %w", err)
			}
			slog.Warn("Skipping reservation from import",
				"file", name,
				"reservation", row.ReservationNo,
				"reason", fderr.Message(err),
			)
			result.Skipped++
			continue
		}
		if created {
			result.Imported++
		} else {
			result.Duplicates++
		}
	}
	slog.Info("Imported arrivals file", "file", name, "rows", stats.Rows, "badDates", stats.BadDates)
	return nil
}

// InitialLoad runs an import only when the reservation table is empty, as
// on a fresh deployment. Either way it ends with the room status sync.
func (im *Importer) InitialLoad(ctx context.Context) (Result, error) {
	n, err := im.res.Count(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("[Count]: %w", err)
	}
	if n > 0 || im.src == nil {
		occupied, err := im.ctl.SyncRoomStatusFromStays(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("[SyncRoomStatusFromStays]: %w", err)
		}
		return Result{OccupiedRooms: occupied}, nil
	}
	return im.Run(ctx)
}
