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

// Package allocation decides whether a room can be given to a reservation
// for its dates, and records the assignment.
package allocation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/hotelfo/frontdesk/inventory"
	"github.com/hotelfo/frontdesk/lib/conv"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/hotelfo/frontdesk/store"
	"github.com/hotelfo/frontdesk/store/actionlog"
	"github.com/hotelfo/frontdesk/store/fodb"
	"time"
)

const ActionAssignRoom = "assign_room"

type Engine struct {
	dbq *store.DBQ
	inv *inventory.Inventory
	rec actionlog.Recorder
}

func New(dbq *store.DBQ, inv *inventory.Inventory, rec actionlog.Recorder) *Engine {
	if rec == nil {
		rec = actionlog.Discard{}
	}
	return &Engine{dbq: dbq, inv: inv, rec: rec}
}

// Overlaps is the half-open interval test: a guest leaving on the day
// another arrives does not overlap with them.
func Overlaps(aArrival, aDeparture, bArrival, bDeparture time.Time) bool {
	return aArrival.Before(bDeparture) && aDeparture.After(bArrival)
}

// CheckAvailability fails with a *fderr.ConflictError when an active
// reservation other than excludeReservationID holds room for any night of
// [arrival, departure). A blank room is always available. Pass zero to
// exclude nothing.
func (e *Engine) CheckAvailability(
	ctx context.Context,
	db fodb.DBTX,
	room string,
	arrival, departure time.Time,
	excludeReservationID int64,
) error {
	number, err := inventory.CanonicalRoom(room)
	if err != nil {
		return err
	}
	if number == "" {
		return nil
	}
	arrival, departure = conv.Date(arrival), conv.Date(departure)
	if !arrival.Before(departure) {
		return fderr.Validation("Arrival date must be before departure date")
	}
	blocking, err := e.dbq.OverlappingReservations(ctx, db, fodb.OverlappingReservationsParams{
		Room:      number,
		Departure: departure,
		Arrival:   arrival,
		ExcludeID: excludeReservationID,
	})
	if err != nil {
		return fderr.Store("[OverlappingReservations]", err)
	}
	if len(blocking) > 0 {
		b := blocking[0]
		return &fderr.ConflictError{
			Room:          number,
			GuestName:     b.GuestName,
			ReservationID: b.ID,
			ReservationNo: b.ReservationNo,
		}
	}
	return nil
}

// Lock starts tracking room if needed and holds its row lock until txn
// ends. Every write path that checks availability locks the room first,
// so no other transaction can book it between the check and the write.
func (e *Engine) Lock(ctx context.Context, txn *sql.Tx, room string) (fodb.Room, error) {
	if err := e.inv.EnsureExists(ctx, txn, room); err != nil {
		return fodb.Room{}, err
	}
	locked, err := e.dbq.RoomForUpdate(ctx, txn, room)
	if err != nil {
		return fodb.Room{}, fderr.Store("[RoomForUpdate]", err)
	}
	return locked, nil
}

// Reserve locks room, then runs the clean and availability checks for an
// assignment. The room must already be a canonical catalog number.
func (e *Engine) Reserve(
	ctx context.Context,
	txn *sql.Tx,
	room string,
	arrival, departure time.Time,
	excludeReservationID int64,
) error {
	locked, err := e.Lock(ctx, txn, room)
	if err != nil {
		return err
	}
	if locked.Status == fodb.RoomStatusDIRTY {
		return fderr.State("Room is marked DIRTY. Please choose a clean room.")
	}
	return e.CheckAvailability(ctx, txn, room, arrival, departure, excludeReservationID)
}

// AssignRoom gives room to a reservation. It never changes the room's
// status: being assigned is not the same as being occupied.
func (e *Engine) AssignRoom(ctx context.Context, reservationID int64, room string) (string, error) {
	number, err := e.inv.Catalog().ValidateRoomNumber(room)
	if err != nil {
		return "", err
	}

	txn, err := e.dbq.BeginTx(ctx, nil)
	if err != nil {
		return "", fderr.Store("[BeginTx]", err)
	}
	defer store.Rollback(txn)

	res, err := e.dbq.ReservationForUpdate(ctx, txn, reservationID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fderr.NotFound("Reservation not found")
	}
	if err != nil {
		return "", fderr.Store("[ReservationForUpdate]", err)
	}
	if err = e.Reserve(ctx, txn, number, res.Arrival, res.Departure, res.ID); err != nil {
		return "", err
	}
	err = e.dbq.SetReservationRoom(ctx, txn, fodb.SetReservationRoomParams{
		Room: conv.TrimmedToSql(number, 16),
		ID:   res.ID,
	})
	if err != nil {
		return "", fderr.Store("[SetReservationRoom]", err)
	}
	if err = txn.Commit(); err != nil {
		return "", fderr.Store("[Commit]", err)
	}
	// Lock may have added a room row
	e.inv.Invalidate()
	e.rec.Record(ctx, actionlog.Entry{
		Action:        ActionAssignRoom,
		ReservationID: res.ID,
		Room:          number,
		Message:       fmt.Sprintf("Room %v assigned successfully", number),
	})
	return number, nil
}
