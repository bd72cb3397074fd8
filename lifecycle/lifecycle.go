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

// Package lifecycle moves reservations and stays through check-in,
// check-out, their cancellations, room moves and no-shows. Each operation
// commits all of its row changes in one transaction or none of them.
package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/hotelfo/frontdesk/allocation"
	"github.com/hotelfo/frontdesk/inventory"
	"github.com/hotelfo/frontdesk/lib/conv"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/hotelfo/frontdesk/store"
	"github.com/hotelfo/frontdesk/store/actionlog"
	"github.com/hotelfo/frontdesk/store/fodb"
	"log/slog"
	"strings"
	"time"
)

const (
	ActionCheckIn        = "check_in"
	ActionCheckOut       = "check_out"
	ActionCancelCheckIn  = "cancel_check_in"
	ActionCancelCheckOut = "cancel_check_out"
	ActionMoveRoom       = "move_room"
	ActionNoShow         = "no_show"
	ActionSyncRooms      = "sync_rooms"
)

type Controller struct {
	dbq    *store.DBQ
	inv    *inventory.Inventory
	engine *allocation.Engine
	rec    actionlog.Recorder
	now    func() time.Time
	loc    *time.Location
}

type Option func(*Controller)

// WithClock replaces time.Now for the actual check-in and check-out times.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithLocation sets the hotel's time zone, used to decide which calendar
// day a checkout time falls on.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		c.loc = loc
	}
}

func New(
	dbq *store.DBQ,
	inv *inventory.Inventory,
	engine *allocation.Engine,
	rec actionlog.Recorder,
	opts ...Option,
) *Controller {
	if rec == nil {
		rec = actionlog.Discard{}
	}
	c := &Controller{
		dbq:    dbq,
		inv:    inv,
		engine: engine,
		rec:    rec,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckIn opens a stay for a confirmed reservation in its assigned room and
// marks the room OCCUPIED. Availability is checked again under the room
// lock, and a room that already has a checked-in stay is refused.
func (c *Controller) CheckIn(ctx context.Context, reservationID int64) (stayID int64, err error) {
	txn, err := c.dbq.BeginTx(ctx, nil)
	if err != nil {
		return 0, fderr.Store("[BeginTx]", err)
	}
	defer store.Rollback(txn)

	res, err := c.reservationForUpdate(ctx, txn, reservationID)
	if err != nil {
		return 0, err
	}
	if !res.Room.Valid || strings.TrimSpace(res.Room.String) == "" {
		return 0, fderr.Validation("Assign a room first")
	}
	room, err := c.inv.Catalog().ValidateRoomNumber(res.Room.String)
	if err != nil {
		return 0, err
	}
	if res.Status != fodb.ReservationStatusCONFIRMED {
		return 0, fderr.Statef("Reservation is %v and cannot be checked in", res.Status)
	}
	if _, err = c.engine.Lock(ctx, txn, room); err != nil {
		return 0, err
	}
	if err = c.engine.CheckAvailability(ctx, txn, room, res.Arrival, res.Departure, res.ID); err != nil {
		return 0, err
	}
	if err = c.requireNoCheckedInStay(ctx, txn, room); err != nil {
		return 0, err
	}

	stayID, err = c.dbq.CreateStay(ctx, txn, fodb.CreateStayParams{
		ReservationID: res.ID,
		Room:          room,
		Status:        fodb.StayStatusCHECKEDIN,
		PlannedIn:     res.Arrival,
		PlannedOut:    res.Departure,
		ActualIn:      conv.TimeToNullFloat(c.now()),
	})
	if err != nil {
		return 0, fderr.Store("[CreateStay]", err)
	}
	if err = c.inv.Occupy(ctx, txn, room); err != nil {
		return 0, err
	}
	if err = c.setReservationStatus(ctx, txn, res.ID, fodb.ReservationStatusCHECKEDIN); err != nil {
		return 0, err
	}
	if err = txn.Commit(); err != nil {
		return 0, fderr.Store("[Commit]", err)
	}
	c.committed(ctx, actionlog.Entry{
		Action:        ActionCheckIn,
		ReservationID: res.ID,
		StayID:        stayID,
		Room:          room,
		Message:       "Checked in successfully",
	})
	return stayID, nil
}

// CheckOut closes a stay and frees its room. The id is tried as a stay id
// first. Failing that it is taken as a reservation id, and a stay that is
// already checked out is recorded for that reservation's assigned room.
// Checking out a stay that is already checked out changes nothing.
func (c *Controller) CheckOut(ctx context.Context, stayOrReservationID int64) (stayID int64, err error) {
	txn, err := c.dbq.BeginTx(ctx, nil)
	if err != nil {
		return 0, fderr.Store("[BeginTx]", err)
	}
	defer store.Rollback(txn)

	stay, synthesized, err := c.findOrSynthesizeStay(ctx, txn, stayOrReservationID)
	if err != nil {
		return 0, err
	}
	if stay.Status == fodb.StayStatusCHECKEDOUT && !synthesized {
		return stay.ID, nil
	}
	if !synthesized {
		err = c.dbq.CloseStay(ctx, txn, fodb.CloseStayParams{
			ActualOut: conv.TimeToFloat(c.now()),
			ID:        stay.ID,
		})
		if err != nil {
			return 0, fderr.Store("[CloseStay]", err)
		}
	}
	if err = c.vacateUnlessOccupied(ctx, txn, stay.Room); err != nil {
		return 0, err
	}
	if err = c.setReservationStatus(ctx, txn, stay.ReservationID, fodb.ReservationStatusCHECKEDOUT); err != nil {
		return 0, err
	}
	if err = txn.Commit(); err != nil {
		return 0, fderr.Store("[Commit]", err)
	}
	c.committed(ctx, actionlog.Entry{
		Action:        ActionCheckOut,
		ReservationID: stay.ReservationID,
		StayID:        stay.ID,
		Room:          stay.Room,
		Message:       "Checked out successfully",
	})
	return stay.ID, nil
}

func (c *Controller) findOrSynthesizeStay(ctx context.Context, txn *sql.Tx, id int64) (
	stay fodb.Stay, synthesized bool, err error,
) {
	stay, err = c.dbq.StayForUpdate(ctx, txn, id)
	if err == nil {
		return stay, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return stay, false, fderr.Store("[StayForUpdate]", err)
	}
	res, err := c.dbq.ReservationForUpdate(ctx, txn, id)
	if errors.Is(err, sql.ErrNoRows) {
		return stay, false, fderr.NotFound("Reservation not found or no room assigned")
	}
	if err != nil {
		return stay, false, fderr.Store("[ReservationForUpdate]", err)
	}
	if !res.Room.Valid || strings.TrimSpace(res.Room.String) == "" {
		return stay, false, fderr.Validation("Reservation not found or no room assigned")
	}
	if res.Status != fodb.ReservationStatusCONFIRMED {
		return stay, false, fderr.Statef("Reservation is %v and cannot be checked out", res.Status)
	}
	existing, err := c.dbq.LatestStayForReservation(ctx, txn, res.ID)
	if err == nil {
		return stay, false, fderr.Statef("Reservation already has stay %v, check that out instead", existing.ID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return stay, false, fderr.Store("[LatestStayForReservation]", err)
	}
	now := conv.TimeToNullFloat(c.now())
	stay = fodb.Stay{
		ReservationID: res.ID,
		Room:          strings.TrimSpace(res.Room.String),
		Status:        fodb.StayStatusCHECKEDOUT,
		PlannedIn:     res.Arrival,
		PlannedOut:    res.Departure,
		ActualIn:      now,
		ActualOut:     now,
	}
	stay.ID, err = c.dbq.CreateStay(ctx, txn, fodb.CreateStayParams{
		ReservationID: stay.ReservationID,
		Room:          stay.Room,
		Status:        stay.Status,
		PlannedIn:     stay.PlannedIn,
		PlannedOut:    stay.PlannedOut,
		ActualIn:      stay.ActualIn,
		ActualOut:     stay.ActualOut,
	})
	if err != nil {
		return stay, false, fderr.Store("[CreateStay]", err)
	}
	if err = c.inv.EnsureExists(ctx, txn, stay.Room); err != nil {
		return stay, false, err
	}
	slog.Info("Recorded checkout for reservation without a stay", "reservation", res.ID, "room", stay.Room)
	return stay, true, nil
}

// CancelCheckIn undoes a check-in: the stay is deleted outright, the room
// goes back to VACANT and the reservation to CONFIRMED.
func (c *Controller) CancelCheckIn(ctx context.Context, stayID int64) error {
	txn, err := c.dbq.BeginTx(ctx, nil)
	if err != nil {
		return fderr.Store("[BeginTx]", err)
	}
	defer store.Rollback(txn)

	stay, err := c.stayForUpdate(ctx, txn, stayID)
	if err != nil {
		return err
	}
	if stay.Status != fodb.StayStatusCHECKEDIN {
		return fderr.Statef("Stay is %v, only a checked-in stay can have its check-in cancelled", stay.Status)
	}
	if err = c.dbq.DeleteStay(ctx, txn, stay.ID); err != nil {
		return fderr.Store("[DeleteStay]", err)
	}
	if err = c.inv.Vacate(ctx, txn, stay.Room); err != nil {
		return err
	}
	if err = c.setReservationStatus(ctx, txn, stay.ReservationID, fodb.ReservationStatusCONFIRMED); err != nil {
		return err
	}
	if err = txn.Commit(); err != nil {
		return fderr.Store("[Commit]", err)
	}
	c.committed(ctx, actionlog.Entry{
		Action:        ActionCancelCheckIn,
		ReservationID: stay.ReservationID,
		StayID:        stay.ID,
		Room:          stay.Room,
		Message:       "Check-in cancelled",
	})
	return nil
}

// CancelCheckOut puts a checked-out guest back in their room, provided no
// one else has been checked in there since.
func (c *Controller) CancelCheckOut(ctx context.Context, stayID int64) error {
	txn, err := c.dbq.BeginTx(ctx, nil)
	if err != nil {
		return fderr.Store("[BeginTx]", err)
	}
	defer store.Rollback(txn)

	stay, err := c.stayForUpdate(ctx, txn, stayID)
	if err != nil {
		return err
	}
	if stay.Status != fodb.StayStatusCHECKEDOUT {
		return fderr.State("Stay is not checked out")
	}
	if _, err = c.engine.Lock(ctx, txn, stay.Room); err != nil {
		return err
	}
	if err = c.requireNoCheckedInStay(ctx, txn, stay.Room); err != nil {
		return err
	}
	if err = c.dbq.ReopenStay(ctx, txn, stay.ID); err != nil {
		return fderr.Store("[ReopenStay]", err)
	}
	if err = c.inv.Occupy(ctx, txn, stay.Room); err != nil {
		return err
	}
	if err = c.setReservationStatus(ctx, txn, stay.ReservationID, fodb.ReservationStatusCHECKEDIN); err != nil {
		return err
	}
	if err = txn.Commit(); err != nil {
		return fderr.Store("[Commit]", err)
	}
	c.committed(ctx, actionlog.Entry{
		Action:        ActionCancelCheckOut,
		ReservationID: stay.ReservationID,
		StayID:        stay.ID,
		Room:          stay.Room,
		Message:       "Check-out cancelled",
	})
	return nil
}

// MoveRoom moves a checked-in guest. The stay and the reservation both take
// the new room, the old room is freed and the new one occupied.
func (c *Controller) MoveRoom(ctx context.Context, stayID int64, newRoom string) (string, error) {
	txn, err := c.dbq.BeginTx(ctx, nil)
	if err != nil {
		return "", fderr.Store("[BeginTx]", err)
	}
	defer store.Rollback(txn)

	stay, err := c.stayForUpdate(ctx, txn, stayID)
	if err != nil {
		return "", err
	}
	res, err := c.reservationForUpdate(ctx, txn, stay.ReservationID)
	if err != nil {
		return "", err
	}
	number, err := c.inv.Catalog().ValidateRoomNumber(newRoom)
	if err != nil {
		return "", err
	}
	if stay.Status != fodb.StayStatusCHECKEDIN {
		return "", fderr.State("Only a checked-in guest can be moved")
	}
	oldRoom := stay.Room
	if number == oldRoom {
		return number, nil
	}
	if _, err = c.engine.Lock(ctx, txn, number); err != nil {
		return "", err
	}
	if err = c.engine.CheckAvailability(ctx, txn, number, res.Arrival, res.Departure, res.ID); err != nil {
		return "", err
	}
	if err = c.requireNoCheckedInStay(ctx, txn, number); err != nil {
		return "", err
	}

	err = c.dbq.SetStayRoom(ctx, txn, fodb.SetStayRoomParams{Room: number, ID: stay.ID})
	if err != nil {
		return "", fderr.Store("[SetStayRoom]", err)
	}
	err = c.dbq.SetReservationRoom(ctx, txn, fodb.SetReservationRoomParams{
		Room: conv.TrimmedToSql(number, 16),
		ID:   res.ID,
	})
	if err != nil {
		return "", fderr.Store("[SetReservationRoom]", err)
	}
	if err = c.inv.Vacate(ctx, txn, oldRoom); err != nil {
		return "", err
	}
	if err = c.inv.Occupy(ctx, txn, number); err != nil {
		return "", err
	}
	if err = txn.Commit(); err != nil {
		return "", fderr.Store("[Commit]", err)
	}
	c.committed(ctx, actionlog.Entry{
		Action:        ActionMoveRoom,
		ReservationID: res.ID,
		StayID:        stay.ID,
		Room:          number,
		Message:       fmt.Sprintf("Guest moved from %v to %v", oldRoom, number),
	})
	return number, nil
}

type NoShowInput struct {
	Charged       bool
	AmountCharged float64
	AmountPending float64
	Comment       string
}

// MarkNoShow records a no-show for a confirmed reservation. NO_SHOW is
// terminal: the reservation leaves the arrivals list and frees its room's
// dates.
func (c *Controller) MarkNoShow(ctx context.Context, reservationID int64, in NoShowInput) (noShowID int64, err error) {
	txn, err := c.dbq.BeginTx(ctx, nil)
	if err != nil {
		return 0, fderr.Store("[BeginTx]", err)
	}
	defer store.Rollback(txn)

	res, err := c.reservationForUpdate(ctx, txn, reservationID)
	if err != nil {
		return 0, err
	}
	if res.Status != fodb.ReservationStatusCONFIRMED {
		return 0, fderr.Statef("Reservation is %v and cannot be marked as no-show", res.Status)
	}
	if in.AmountCharged < 0 || in.AmountPending < 0 {
		return 0, fderr.Validation("Amounts cannot be negative")
	}
	noShowID, err = c.dbq.CreateNoShow(ctx, txn, fodb.CreateNoShowParams{
		ReservationID: sql.NullInt64{Int64: res.ID, Valid: true},
		Arrival:       res.Arrival,
		GuestName:     res.GuestName,
		MainClient:    res.MainClient,
		Charged:       in.Charged,
		AmountCharged: in.AmountCharged,
		AmountPending: in.AmountPending,
		Comment:       strings.TrimSpace(in.Comment),
		Created:       conv.TimeToFloat(c.now()),
	})
	if err != nil {
		return 0, fderr.Store("[CreateNoShow]", err)
	}
	if err = c.setReservationStatus(ctx, txn, res.ID, fodb.ReservationStatusNOSHOW); err != nil {
		return 0, err
	}
	if err = txn.Commit(); err != nil {
		return 0, fderr.Store("[Commit]", err)
	}
	c.committed(ctx, actionlog.Entry{
		Action:        ActionNoShow,
		ReservationID: res.ID,
		Room:          res.Room.String,
		Message:       "Marked as no-show",
	})
	return noShowID, nil
}

// SyncRoomStatusFromStays rebuilds room occupancy from the stays: every
// room becomes VACANT, then every room with a checked-in stay becomes
// OCCUPIED. It returns the number of occupied rooms.
func (c *Controller) SyncRoomStatusFromStays(ctx context.Context) (int, error) {
	txn, err := c.dbq.BeginTx(ctx, nil)
	if err != nil {
		return 0, fderr.Store("[BeginTx]", err)
	}
	defer store.Rollback(txn)

	if err = c.dbq.SetAllRoomsVacant(ctx, txn); err != nil {
		return 0, fderr.Store("[SetAllRoomsVacant]", err)
	}
	occupied, err := c.dbq.CheckedInRooms(ctx, txn)
	if err != nil {
		return 0, fderr.Store("[CheckedInRooms]", err)
	}
	for _, room := range occupied {
		if err = c.inv.EnsureExists(ctx, txn, room); err != nil {
			return 0, err
		}
		if err = c.inv.Occupy(ctx, txn, room); err != nil {
			return 0, err
		}
	}
	if err = txn.Commit(); err != nil {
		return 0, fderr.Store("[Commit]", err)
	}
	c.committed(ctx, actionlog.Entry{
		Action:  ActionSyncRooms,
		Message: fmt.Sprintf("%d rooms occupied", len(occupied)),
	})
	return len(occupied), nil
}

func (c *Controller) committed(ctx context.Context, e actionlog.Entry) {
	c.inv.Invalidate()
	c.rec.Record(ctx, e)
}

func (c *Controller) reservationForUpdate(ctx context.Context, txn *sql.Tx, id int64) (fodb.Reservation, error) {
	res, err := c.dbq.ReservationForUpdate(ctx, txn, id)
	if errors.Is(err, sql.ErrNoRows) {
		return res, fderr.NotFound("Reservation not found")
	}
	if err != nil {
		return res, fderr.Store("[ReservationForUpdate]", err)
	}
	return res, nil
}

func (c *Controller) stayForUpdate(ctx context.Context, txn *sql.Tx, id int64) (fodb.Stay, error) {
	stay, err := c.dbq.StayForUpdate(ctx, txn, id)
	if errors.Is(err, sql.ErrNoRows) {
		return stay, fderr.NotFound("Stay not found")
	}
	if err != nil {
		return stay, fderr.Store("[StayForUpdate]", err)
	}
	return stay, nil
}

func (c *Controller) setReservationStatus(
	ctx context.Context, txn *sql.Tx, id int64, status fodb.ReservationStatus,
) error {
	err := c.dbq.SetReservationStatus(ctx, txn, fodb.SetReservationStatusParams{Status: status, ID: id})
	if err != nil {
		return fderr.Store("[SetReservationStatus]", err)
	}
	return nil
}

// vacateUnlessOccupied frees room unless another stay is still checked in
// there, as when an old reservation is checked out after the room was
// given to a new guest.
func (c *Controller) vacateUnlessOccupied(ctx context.Context, txn *sql.Tx, room string) error {
	if _, err := c.engine.Lock(ctx, txn, room); err != nil {
		return err
	}
	stays, err := c.dbq.CheckedInStaysForRoom(ctx, txn, room)
	if err != nil {
		return fderr.Store("[CheckedInStaysForRoom]", err)
	}
	if len(stays) > 0 {
		slog.Info("Room stays occupied after checkout", "room", room, "stay", stays[0].ID)
		return nil
	}
	return c.inv.Vacate(ctx, txn, room)
}

// requireNoCheckedInStay keeps a room to at most one checked-in stay. The
// caller must hold the room lock.
func (c *Controller) requireNoCheckedInStay(ctx context.Context, txn *sql.Tx, room string) error {
	stays, err := c.dbq.CheckedInStaysForRoom(ctx, txn, room)
	if err != nil {
		return fderr.Store("[CheckedInStaysForRoom]", err)
	}
	if len(stays) == 0 {
		return nil
	}
	occupant, err := c.dbq.Reservation(ctx, txn, stays[0].ReservationID)
	if err != nil {
		return fderr.Store("[Reservation]", err)
	}
	return &fderr.ConflictError{
		Room:          room,
		GuestName:     occupant.GuestName,
		ReservationID: occupant.ID,
		ReservationNo: occupant.ReservationNo,
	}
}
