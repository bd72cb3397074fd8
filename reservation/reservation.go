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

// Package reservation is the desk's entry point for reservation records:
// manual and imported entry, lookup, note edits and cancellation, plus the
// stay and payment details kept alongside them.
package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/hotelfo/frontdesk/allocation"
	"github.com/hotelfo/frontdesk/inventory"
	"github.com/hotelfo/frontdesk/lib/conv"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/hotelfo/frontdesk/store"
	"github.com/hotelfo/frontdesk/store/actionlog"
	"github.com/hotelfo/frontdesk/store/fodb"
	"strings"
	"time"
)

const (
	ActionCreate      = "create_reservation"
	ActionUpdateNotes = "update_notes"
	ActionCancel      = "cancel_reservation"
	ActionStayComment = "stay_comment"
	ActionParking     = "stay_parking"
	ActionPayment     = "payment"
)

const (
	maxRoomLen   = 16
	maxRemarkLen = 2048
)

type Store struct {
	dbq    *store.DBQ
	inv    *inventory.Inventory
	engine *allocation.Engine
	rec    actionlog.Recorder
	now    func() time.Time
}

func New(dbq *store.DBQ, inv *inventory.Inventory, engine *allocation.Engine, rec actionlog.Recorder) *Store {
	if rec == nil {
		rec = actionlog.Discard{}
	}
	return &Store{
		dbq:    dbq,
		inv:    inv,
		engine: engine,
		rec:    rec,
		now:    time.Now,
	}
}

type NewReservation struct {
	ReservationNo string
	GuestName     string
	Arrival       time.Time
	Departure     time.Time
	Room          string
	MainClient    string
	MealPlan      string
	Adults        int32
	Children      int32
	Channel       string
	MainRemark    string
	TotalRemarks  string
}

func (n *NewReservation) normalize() error {
	n.GuestName = strings.TrimSpace(n.GuestName)
	n.ReservationNo = strings.TrimSpace(n.ReservationNo)
	n.MainClient = strings.TrimSpace(n.MainClient)
	n.MealPlan = strings.TrimSpace(n.MealPlan)
	n.Channel = strings.TrimSpace(n.Channel)
	n.MainRemark = truncate(strings.TrimSpace(n.MainRemark), maxRemarkLen)
	n.TotalRemarks = truncate(strings.TrimSpace(n.TotalRemarks), maxRemarkLen)
	if n.GuestName == "" {
		return fderr.Validation("Guest name is required")
	}
	if n.Arrival.IsZero() || n.Departure.IsZero() {
		return fderr.Validation("Arrival and departure dates are required")
	}
	n.Arrival, n.Departure = conv.Date(n.Arrival), conv.Date(n.Departure)
	if !n.Arrival.Before(n.Departure) {
		return fderr.Validation("Arrival date must be before departure date")
	}
	if n.Adults < 0 || n.Children < 0 {
		return fderr.Validation("Guest counts cannot be negative")
	}
	return nil
}

func (n NewReservation) params(room string) fodb.CreateReservationParams {
	return fodb.CreateReservationParams{
		ReservationNo: n.ReservationNo,
		GuestName:     n.GuestName,
		Arrival:       n.Arrival,
		Departure:     n.Departure,
		Room:          conv.TrimmedToSql(room, maxRoomLen),
		Status:        fodb.ReservationStatusCONFIRMED,
		MainClient:    n.MainClient,
		MealPlan:      n.MealPlan,
		Adults:        n.Adults,
		Children:      n.Children,
		Channel:       n.Channel,
		MainRemark:    n.MainRemark,
		TotalRemarks:  n.TotalRemarks,
	}
}

// Create enters a reservation by hand. A room, if given, must pass the same
// checks as AssignRoom, made under the same lock as the insert.
func (s *Store) Create(ctx context.Context, in NewReservation) (fodb.Reservation, error) {
	if err := in.normalize(); err != nil {
		return fodb.Reservation{}, err
	}
	if in.ReservationNo == "" {
		in.ReservationNo = "M-" + strings.ToUpper(uuid.NewString()[:8])
	}
	var room string
	if strings.TrimSpace(in.Room) != "" {
		var err error
		if room, err = s.inv.Catalog().ValidateRoomNumber(in.Room); err != nil {
			return fodb.Reservation{}, err
		}
	}

	txn, err := s.dbq.BeginTx(ctx, nil)
	if err != nil {
		return fodb.Reservation{}, fderr.Store("[BeginTx]", err)
	}
	defer store.Rollback(txn)

	if room != "" {
		if err = s.engine.Reserve(ctx, txn, room, in.Arrival, in.Departure, 0); err != nil {
			return fodb.Reservation{}, err
		}
	}
	params := in.params(room)
	params.Created = conv.TimeToFloat(s.now())
	id, err := s.dbq.CreateReservation(ctx, txn, params)
	if err != nil {
		return fodb.Reservation{}, fderr.Store("[CreateReservation]", err)
	}
	created, err := s.dbq.Reservation(ctx, txn, id)
	if err != nil {
		return fodb.Reservation{}, fderr.Store("[Reservation]", err)
	}
	if err = txn.Commit(); err != nil {
		return fodb.Reservation{}, fderr.Store("[Commit]", err)
	}
	if room != "" {
		s.inv.Invalidate()
	}
	s.rec.Record(ctx, actionlog.Entry{
		Action:        ActionCreate,
		ReservationID: id,
		Room:          room,
		Message:       fmt.Sprintf("Reservation %v created for %v", created.ReservationNo, created.GuestName),
	})
	return created, nil
}

// Import enters a reservation from a bulk export. Rooms are taken leniently
// and without availability checks, since the export is the source of truth
// for what was booked. A reservation number already on file is skipped, and
// created is false.
func (s *Store) Import(ctx context.Context, in NewReservation) (id int64, created bool, err error) {
	if err = in.normalize(); err != nil {
		return 0, false, err
	}
	room, err := inventory.CanonicalRoom(in.Room)
	if err != nil {
		return 0, false, err
	}
	if in.ReservationNo != "" {
		existing, err := s.dbq.ReservationByNumber(ctx, s.dbq, in.ReservationNo)
		if err == nil {
			return existing.ID, false, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, false, fderr.Store("[ReservationByNumber]", err)
		}
	}
	params := in.params(room)
	params.Created = conv.TimeToFloat(s.now())
	id, err = s.dbq.CreateReservation(ctx, s.dbq, params)
	if err != nil {
		return 0, false, fderr.Store("[CreateReservation]", err)
	}
	return id, true, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.dbq.CountReservations(ctx, s.dbq)
	if err != nil {
		return 0, fderr.Store("[CountReservations]", err)
	}
	return n, nil
}

func (s *Store) Get(ctx context.Context, id int64) (fodb.Reservation, error) {
	r, err := s.dbq.Reservation(ctx, s.dbq, id)
	if errors.Is(err, sql.ErrNoRows) {
		return r, fderr.NotFound("Reservation not found")
	}
	if err != nil {
		return r, fderr.Store("[Reservation]", err)
	}
	return r, nil
}

// Search matches q anywhere in the guest name, room, reservation number,
// main client or channel. A blank query matches nothing.
func (s *Store) Search(ctx context.Context, q string) ([]fodb.Reservation, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []fodb.Reservation{}, nil
	}
	rows, err := s.dbq.SearchReservations(ctx, s.dbq, "%"+escapeLike(q)+"%")
	if err != nil {
		return nil, fderr.Store("[SearchReservations]", err)
	}
	return rows, nil
}

func (s *Store) ByRoom(ctx context.Context, room string) ([]fodb.Reservation, error) {
	number, err := inventory.CanonicalRoom(room)
	if err != nil {
		return nil, err
	}
	if number == "" {
		return nil, fderr.Validation("Room number required")
	}
	rows, err := s.dbq.ReservationsByRoom(ctx, s.dbq, number)
	if err != nil {
		return nil, fderr.Store("[ReservationsByRoom]", err)
	}
	return rows, nil
}

func (s *Store) UpdateNotes(ctx context.Context, id int64, mainRemark, totalRemarks string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	err := s.dbq.SetReservationNotes(ctx, s.dbq, fodb.SetReservationNotesParams{
		MainRemark:   truncate(strings.TrimSpace(mainRemark), maxRemarkLen),
		TotalRemarks: truncate(strings.TrimSpace(totalRemarks), maxRemarkLen),
		ID:           id,
	})
	if err != nil {
		return fderr.Store("[SetReservationNotes]", err)
	}
	s.rec.Record(ctx, actionlog.Entry{
		Action:        ActionUpdateNotes,
		ReservationID: id,
		Message:       "Notes updated",
	})
	return nil
}

// CancelReservation cancels a confirmed reservation that has never had a
// stay. Its dates stop counting against the room.
func (s *Store) CancelReservation(ctx context.Context, id int64) error {
	txn, err := s.dbq.BeginTx(ctx, nil)
	if err != nil {
		return fderr.Store("[BeginTx]", err)
	}
	defer store.Rollback(txn)

	res, err := s.dbq.ReservationForUpdate(ctx, txn, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fderr.NotFound("Reservation not found")
	}
	if err != nil {
		return fderr.Store("[ReservationForUpdate]", err)
	}
	if res.Status != fodb.ReservationStatusCONFIRMED {
		return fderr.Statef("Reservation is %v and cannot be cancelled", res.Status)
	}
	_, err = s.dbq.LatestStayForReservation(ctx, txn, id)
	if err == nil {
		return fderr.State("Reservation has a stay. Cancel the check-in first.")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fderr.Store("[LatestStayForReservation]", err)
	}
	err = s.dbq.SetReservationStatus(ctx, txn, fodb.SetReservationStatusParams{
		Status: fodb.ReservationStatusCANCELLED,
		ID:     id,
	})
	if err != nil {
		return fderr.Store("[SetReservationStatus]", err)
	}
	if err = txn.Commit(); err != nil {
		return fderr.Store("[Commit]", err)
	}
	s.rec.Record(ctx, actionlog.Entry{
		Action:        ActionCancel,
		ReservationID: id,
		Room:          res.Room.String,
		Message:       "Reservation cancelled",
	})
	return nil
}

func (s *Store) GetStay(ctx context.Context, stayID int64) (fodb.Stay, error) {
	stay, err := s.dbq.Stay(ctx, s.dbq, stayID)
	if errors.Is(err, sql.ErrNoRows) {
		return stay, fderr.NotFound("Stay not found")
	}
	if err != nil {
		return stay, fderr.Store("[Stay]", err)
	}
	return stay, nil
}

func (s *Store) UpdateStayComment(ctx context.Context, stayID int64, comment string) error {
	stay, err := s.GetStay(ctx, stayID)
	if err != nil {
		return err
	}
	err = s.dbq.SetStayComment(ctx, s.dbq, fodb.SetStayCommentParams{
		Comment: truncate(strings.TrimSpace(comment), maxRemarkLen),
		ID:      stayID,
	})
	if err != nil {
		return fderr.Store("[SetStayComment]", err)
	}
	s.rec.Record(ctx, actionlog.Entry{
		Action:        ActionStayComment,
		ReservationID: stay.ReservationID,
		StayID:        stay.ID,
		Room:          stay.Room,
		Message:       "Stay comment updated",
	})
	return nil
}

type Parking struct {
	Space string
	Plate string
	Notes string
}

func (s *Store) UpdateParking(ctx context.Context, stayID int64, p Parking) error {
	stay, err := s.GetStay(ctx, stayID)
	if err != nil {
		return err
	}
	err = s.dbq.SetStayParking(ctx, s.dbq, fodb.SetStayParkingParams{
		ParkingSpace: truncate(strings.TrimSpace(p.Space), 32),
		ParkingPlate: truncate(strings.ToUpper(strings.TrimSpace(p.Plate)), 32),
		ParkingNotes: truncate(strings.TrimSpace(p.Notes), 1024),
		ID:           stayID,
	})
	if err != nil {
		return fderr.Store("[SetStayParking]", err)
	}
	s.rec.Record(ctx, actionlog.Entry{
		Action:        ActionParking,
		ReservationID: stay.ReservationID,
		StayID:        stay.ID,
		Room:          stay.Room,
		Message:       "Parking updated",
	})
	return nil
}

type PaymentInput struct {
	Amount    float64
	Type      fodb.PaymentType
	Method    string
	Reference string
	Note      string
}

// AddPayment appends a row to a reservation's ledger. The ledger is a
// record of money taken or refunded, not a balance.
func (s *Store) AddPayment(ctx context.Context, reservationID int64, in PaymentInput) (int64, error) {
	if in.Amount <= 0 {
		return 0, fderr.Validation("Amount must be greater than zero")
	}
	if in.Type == "" {
		in.Type = fodb.PaymentTypePAYMENT
	}
	in.Type = fodb.PaymentType(strings.ToUpper(string(in.Type)))
	if !in.Type.Valid() {
		return 0, fderr.Validation("Invalid payment type. Use PAYMENT or REFUND.")
	}
	res, err := s.Get(ctx, reservationID)
	if err != nil {
		return 0, err
	}
	id, err := s.dbq.AddPayment(ctx, s.dbq, fodb.AddPaymentParams{
		ReservationID: res.ID,
		GuestName:     res.GuestName,
		Amount:        in.Amount,
		PaymentType:   in.Type,
		Method:        strings.TrimSpace(in.Method),
		Reference:     strings.TrimSpace(in.Reference),
		Note:          truncate(strings.TrimSpace(in.Note), 1024),
		Created:       conv.TimeToFloat(s.now()),
	})
	if err != nil {
		return 0, fderr.Store("[AddPayment]", err)
	}
	s.rec.Record(ctx, actionlog.Entry{
		Action:        ActionPayment,
		ReservationID: res.ID,
		Message:       fmt.Sprintf("%v of %.2f recorded", in.Type, in.Amount),
	})
	return id, nil
}

func (s *Store) Payments(ctx context.Context, reservationID int64) ([]fodb.Payment, error) {
	if _, err := s.Get(ctx, reservationID); err != nil {
		return nil, err
	}
	rows, err := s.dbq.Payments(ctx, s.dbq, reservationID)
	if err != nil {
		return nil, fderr.Store("[Payments]", err)
	}
	return rows, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// truncate cuts s to the column's width in characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
