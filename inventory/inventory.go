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

package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/hotelfo/frontdesk/lib/cache"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/hotelfo/frontdesk/store"
	"github.com/hotelfo/frontdesk/store/fodb"
	"log/slog"
	"slices"
	"strings"
	"time"
)

type Inventory struct {
	dbq        *store.DBQ
	catalog    Catalog
	twinRooms  []string
	roomsCache *cache.InMemory[[]fodb.Room]
}

func New(dbq *store.DBQ, catalog Catalog, twinRooms []string, cacheTTL time.Duration) *Inventory {
	inv := &Inventory{
		dbq:       dbq,
		catalog:   catalog,
		twinRooms: slices.Clone(twinRooms),
	}
	inv.roomsCache = cache.New(cacheTTL, func(ctx context.Context) ([]fodb.Room, error) {
		return inv.dbq.Rooms(ctx, inv.dbq)
	})
	return inv
}

func (inv *Inventory) Catalog() Catalog {
	return inv.catalog
}

// Seed inserts every catalog room that isn't tracked yet. Existing rooms
// keep their status.
func (inv *Inventory) Seed(ctx context.Context) error {
	txn, err := inv.dbq.BeginTx(ctx, nil)
	if err != nil {
		return fderr.Store("[BeginTx]", err)
	}
	defer store.Rollback(txn)
	numbers := inv.catalog.Numbers()
	for _, n := range numbers {
		err = inv.dbq.SeedRoom(ctx, txn, fodb.SeedRoomParams{
			Number: n,
			Twin:   slices.Contains(inv.twinRooms, n),
		})
		if err != nil {
			return fderr.Store("[SeedRoom]", err)
		}
	}
	if err = txn.Commit(); err != nil {
		return fderr.Store("[Commit]", err)
	}
	inv.roomsCache.Invalidate()
	slog.Info("Seeded rooms from blocks", "count", len(numbers))
	return nil
}

// Rooms lists all tracked rooms in numeric order. The listing is cached
// briefly, so a status change may take a moment to show.
func (inv *Inventory) Rooms(ctx context.Context) ([]fodb.Room, error) {
	rooms, err := inv.roomsCache.Get(ctx)
	if err != nil {
		return nil, fderr.Store("[Rooms]", err)
	}
	return rooms, nil
}

func (inv *Inventory) TwinRooms(ctx context.Context) ([]string, error) {
	rooms, err := inv.Rooms(ctx)
	if err != nil {
		return nil, err
	}
	var twins []string
	for _, r := range rooms {
		if r.Twin {
			twins = append(twins, r.Number)
		}
	}
	return twins, nil
}

// Invalidate drops the cached room listing.
func (inv *Inventory) Invalidate() {
	inv.roomsCache.Invalidate()
}

// IsClean is true unless the room is tracked and DIRTY. Rooms that aren't
// tracked yet count as clean.
func (inv *Inventory) IsClean(ctx context.Context, db fodb.DBTX, room string) (bool, error) {
	r, err := inv.dbq.Room(ctx, db, strings.TrimSpace(room))
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fderr.Store("[Room]", err)
	}
	return r.Status != fodb.RoomStatusDIRTY, nil
}

// EnsureExists starts tracking a room, as VACANT, if it isn't tracked yet.
func (inv *Inventory) EnsureExists(ctx context.Context, db fodb.DBTX, room string) error {
	room = strings.TrimSpace(room)
	if room == "" {
		return nil
	}
	if err := inv.dbq.EnsureRoom(ctx, db, room); err != nil {
		return fderr.Store("[EnsureRoom]", err)
	}
	return nil
}

// Occupy and Vacate are the lifecycle's status changes. They run on the
// caller's transaction, and the caller invalidates after committing.
func (inv *Inventory) Occupy(ctx context.Context, db fodb.DBTX, room string) error {
	return inv.write(ctx, db, room, fodb.RoomStatusOCCUPIED)
}

func (inv *Inventory) Vacate(ctx context.Context, db fodb.DBTX, room string) error {
	return inv.write(ctx, db, room, fodb.RoomStatusVACANT)
}

func (inv *Inventory) MarkClean(ctx context.Context, db fodb.DBTX, room string) error {
	return inv.write(ctx, db, room, fodb.RoomStatusCLEAN)
}

func (inv *Inventory) write(ctx context.Context, db fodb.DBTX, room string, status fodb.RoomStatus) error {
	err := inv.dbq.SetRoomStatus(ctx, db, fodb.SetRoomStatusParams{
		Status: status,
		Number: strings.TrimSpace(room),
	})
	if err != nil {
		return fderr.Store("[SetRoomStatus]", err)
	}
	return nil
}

// ParseRoomStatus accepts the statuses staff may set by hand, in any case.
func ParseRoomStatus(s string) (fodb.RoomStatus, error) {
	status := fodb.RoomStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fderr.Validation("Invalid status. Use CLEAN, DIRTY, VACANT or OCCUPIED.")
	}
	return status, nil
}

// SetStatus is the manual override used by housekeeping and the desk.
func (inv *Inventory) SetStatus(ctx context.Context, room, status string) (string, fodb.RoomStatus, error) {
	if strings.TrimSpace(room) == "" {
		return "", "", fderr.Validation("Room number required")
	}
	rs, err := ParseRoomStatus(status)
	if err != nil {
		return "", "", err
	}
	number, err := inv.catalog.ValidateRoomNumber(room)
	if err != nil {
		return "", "", err
	}
	txn, err := inv.dbq.BeginTx(ctx, nil)
	if err != nil {
		return "", "", fderr.Store("[BeginTx]", err)
	}
	defer store.Rollback(txn)
	if err = inv.EnsureExists(ctx, txn, number); err != nil {
		return "", "", err
	}
	if err = inv.write(ctx, txn, number, rs); err != nil {
		return "", "", err
	}
	if err = txn.Commit(); err != nil {
		return "", "", fderr.Store("[Commit]", err)
	}
	inv.roomsCache.Invalidate()
	return number, rs, nil
}

// Room reads one room's current row, bypassing the listing cache.
func (inv *Inventory) Room(ctx context.Context, room string) (fodb.Room, error) {
	r, err := inv.dbq.Room(ctx, inv.dbq, strings.TrimSpace(room))
	if errors.Is(err, sql.ErrNoRows) {
		return fodb.Room{}, fderr.NotFound(fmt.Sprintf("Room %v not found", room))
	}
	if err != nil {
		return fodb.Room{}, fderr.Store("[Room]", err)
	}
	return r, nil
}
