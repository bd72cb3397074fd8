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

package lifecycle_test

import (
	"context"
	"database/sql"
	"github.com/hotelfo/frontdesk/allocation"
	"github.com/hotelfo/frontdesk/conf"
	"github.com/hotelfo/frontdesk/inventory"
	"github.com/hotelfo/frontdesk/lib/conv"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/hotelfo/frontdesk/lifecycle"
	"github.com/hotelfo/frontdesk/store"
	"github.com/hotelfo/frontdesk/store/fodb"
	"github.com/hotelfo/frontdesk/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log"
	"os"
	"testing"
	"time"
)

var shared struct {
	dbq    *store.DBQ
	inv    *inventory.Inventory
	engine *allocation.Engine
	ctl    *lifecycle.Controller
}

var clock = time.Date(2027, 3, 5, 10, 30, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithCancel(context.Background())
	dbq, err := storetest.FakeDBQ(ctx)
	if err != nil {
		log.Panic(err)
	}
	shared.dbq = dbq
	shared.inv = inventory.New(dbq, inventory.NewCatalog([]conf.RoomBlock{
		{First: 500, Last: 519},
	}), nil, 0)
	shared.engine = allocation.New(dbq, shared.inv, nil)
	shared.ctl = lifecycle.New(dbq, shared.inv, shared.engine, nil,
		lifecycle.WithClock(func() time.Time { return clock }),
		lifecycle.WithLocation(time.UTC),
	)
	code := m.Run()
	cancel()
	os.Exit(code)
}

func day(s string) time.Time {
	d, err := conv.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newReservation(t *testing.T, guest, room, arrival, departure string) int64 {
	t.Helper()
	id, err := shared.dbq.CreateReservation(t.Context(), shared.dbq, fodb.CreateReservationParams{
		ReservationNo: "L-" + guest,
		GuestName:     guest,
		Arrival:       day(arrival),
		Departure:     day(departure),
		Room:          conv.TrimmedToSql(room, 16),
		Status:        fodb.ReservationStatusCONFIRMED,
		MainClient:    "Direct",
		Created:       conv.TimeToFloat(time.Now()),
	})
	require.NoError(t, err)
	return id
}

func requireRoomStatus(t *testing.T, room string, want fodb.RoomStatus) {
	t.Helper()
	r, err := shared.inv.Room(t.Context(), room)
	require.NoError(t, err)
	require.Equal(t, want, r.Status, "room %v", room)
}

func requireReservationStatus(t *testing.T, id int64, want fodb.ReservationStatus) {
	t.Helper()
	r, err := shared.dbq.Reservation(t.Context(), shared.dbq, id)
	require.NoError(t, err)
	require.Equal(t, want, r.Status)
}

// Runs before the parallel tests, while reservation ids are still ahead of
// stay ids, so the id can't be mistaken for a stay.
func TestCheckOutWithoutStay(t *testing.T) {
	ctx := t.Context()
	res := newReservation(t, "Walk Out", "512", "2027-03-04", "2027-03-05")

	stayID, err := shared.ctl.CheckOut(ctx, res)
	require.NoError(t, err)

	stay, err := shared.dbq.Stay(ctx, shared.dbq, stayID)
	require.NoError(t, err)
	assert.Equal(t, fodb.StayStatusCHECKEDOUT, stay.Status)
	assert.Equal(t, "512", stay.Room)
	assert.Equal(t, res, stay.ReservationID)
	assert.True(t, stay.ActualIn.Valid)
	assert.True(t, stay.ActualOut.Valid)
	requireRoomStatus(t, "512", fodb.RoomStatusVACANT)
	requireReservationStatus(t, res, fodb.ReservationStatusCHECKEDOUT)

	noRoom := newReservation(t, "Nowhere", "", "2027-03-04", "2027-03-05")
	_, err = shared.ctl.CheckOut(ctx, noRoom)
	require.Error(t, err)
	assert.Equal(t, "Reservation not found or no room assigned", fderr.Message(err))
}

// Like TestCheckOutWithoutStay, these run before the parallel tests so a
// reservation id can't be mistaken for a stay id.
func TestCheckOutWithoutStayRefusesClosedReservations(t *testing.T) {
	ctx := t.Context()
	noShow := newReservation(t, "Never Came", "515", "2027-03-01", "2027-03-02")
	_, err := shared.ctl.MarkNoShow(ctx, noShow, lifecycle.NoShowInput{})
	require.NoError(t, err)

	_, err = shared.ctl.CheckOut(ctx, noShow)
	require.Error(t, err)
	assert.Equal(t, fderr.KindState, fderr.KindOf(err))
	requireReservationStatus(t, noShow, fodb.ReservationStatusNOSHOW)

	cancelled := newReservation(t, "Called Off", "515", "2027-03-02", "2027-03-03")
	require.NoError(t, shared.dbq.SetReservationStatus(ctx, shared.dbq, fodb.SetReservationStatusParams{
		Status: fodb.ReservationStatusCANCELLED, ID: cancelled,
	}))
	_, err = shared.ctl.CheckOut(ctx, cancelled)
	require.Error(t, err)
	assert.Equal(t, fderr.KindState, fderr.KindOf(err))
	requireReservationStatus(t, cancelled, fodb.ReservationStatusCANCELLED)

	// a reservation that has a stay is checked out through that stay
	expected := newReservation(t, "Has Stay", "515", "2027-03-03", "2027-03-04")
	_, err = shared.dbq.CreateStay(ctx, shared.dbq, fodb.CreateStayParams{
		ReservationID: expected,
		Room:          "515",
		Status:        fodb.StayStatusEXPECTED,
		PlannedIn:     day("2027-03-03"),
		PlannedOut:    day("2027-03-04"),
	})
	require.NoError(t, err)
	_, err = shared.ctl.CheckOut(ctx, expected)
	require.Error(t, err)
	assert.Equal(t, fderr.KindState, fderr.KindOf(err))
	requireReservationStatus(t, expected, fodb.ReservationStatusCONFIRMED)
}

func TestCheckOutWithoutStayKeepsOccupiedRoom(t *testing.T) {
	ctx := t.Context()
	inHouse := newReservation(t, "In House", "516", "2027-03-04", "2027-03-08")
	inHouseStay, err := shared.ctl.CheckIn(ctx, inHouse)
	require.NoError(t, err)

	old := newReservation(t, "Old Import", "516", "2027-02-01", "2027-02-03")
	_, err = shared.ctl.CheckOut(ctx, old)
	require.NoError(t, err)
	requireReservationStatus(t, old, fodb.ReservationStatusCHECKEDOUT)

	requireRoomStatus(t, "516", fodb.RoomStatusOCCUPIED)
	stay, err := shared.dbq.Stay(ctx, shared.dbq, inHouseStay)
	require.NoError(t, err)
	assert.Equal(t, fodb.StayStatusCHECKEDIN, stay.Status)
}

func TestSyncRoomStatusFromStays(t *testing.T) {
	ctx := t.Context()
	res := newReservation(t, "Sync Guest", "510", "2027-04-01", "2027-04-03")
	_, err := shared.ctl.CheckIn(ctx, res)
	require.NoError(t, err)

	// knock the statuses out of line with the stays
	require.NoError(t, shared.dbq.SetRoomStatus(ctx, shared.dbq, fodb.SetRoomStatusParams{
		Status: fodb.RoomStatusVACANT, Number: "510",
	}))
	_, _, err = shared.inv.SetStatus(ctx, "511", "OCCUPIED")
	require.NoError(t, err)

	occupied, err := shared.ctl.SyncRoomStatusFromStays(ctx)
	require.NoError(t, err)
	// 510 plus the seeded guest in 101
	assert.GreaterOrEqual(t, occupied, 2)
	requireRoomStatus(t, "510", fodb.RoomStatusOCCUPIED)
	requireRoomStatus(t, "511", fodb.RoomStatusVACANT)
}

func TestCheckInCheckOutRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	res := newReservation(t, "Round Trip", "", "2027-03-01", "2027-03-05")
	_, err := shared.engine.AssignRoom(ctx, res, "501")
	require.NoError(t, err)

	stayID, err := shared.ctl.CheckIn(ctx, res)
	require.NoError(t, err)
	requireRoomStatus(t, "501", fodb.RoomStatusOCCUPIED)
	requireReservationStatus(t, res, fodb.ReservationStatusCHECKEDIN)

	inHouse, err := shared.ctl.ListInHouse(ctx, day("2027-03-02"))
	require.NoError(t, err)
	assert.True(t, containsStay(inHouse, stayID))

	// a checked-in reservation can't be checked in twice
	_, err = shared.ctl.CheckIn(ctx, res)
	require.Error(t, err)
	assert.Equal(t, fderr.KindState, fderr.KindOf(err))

	out, err := shared.ctl.CheckOut(ctx, stayID)
	require.NoError(t, err)
	assert.Equal(t, stayID, out)
	requireRoomStatus(t, "501", fodb.RoomStatusVACANT)
	requireReservationStatus(t, res, fodb.ReservationStatusCHECKEDOUT)

	checkedOut, err := shared.ctl.ListCheckedOut(ctx, clock)
	require.NoError(t, err)
	assert.True(t, containsStay(checkedOut, stayID))

	// checking out again changes nothing
	out, err = shared.ctl.CheckOut(ctx, stayID)
	require.NoError(t, err)
	assert.Equal(t, stayID, out)

	require.NoError(t, shared.ctl.CancelCheckOut(ctx, stayID))
	requireRoomStatus(t, "501", fodb.RoomStatusOCCUPIED)
	requireReservationStatus(t, res, fodb.ReservationStatusCHECKEDIN)
	stay, err := shared.dbq.Stay(ctx, shared.dbq, stayID)
	require.NoError(t, err)
	assert.Equal(t, fodb.StayStatusCHECKEDIN, stay.Status)
	assert.False(t, stay.ActualOut.Valid)

	err = shared.ctl.CancelCheckOut(ctx, stayID)
	require.Error(t, err)
	assert.Equal(t, "Stay is not checked out", fderr.Message(err))
}

func TestCheckInRequiresRoom(t *testing.T) {
	t.Parallel()
	res := newReservation(t, "No Room Yet", "", "2027-03-01", "2027-03-02")
	_, err := shared.ctl.CheckIn(t.Context(), res)
	require.Error(t, err)
	assert.Equal(t, "Assign a room first", fderr.Message(err))

	_, err = shared.ctl.CheckIn(t.Context(), 987654)
	require.Error(t, err)
	assert.Equal(t, fderr.KindNotFound, fderr.KindOf(err))
}

func TestCheckInIgnoresDirtyRoom(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	res := newReservation(t, "Early Bird", "513", "2027-03-01", "2027-03-02")
	_, _, err := shared.inv.SetStatus(ctx, "513", "DIRTY")
	require.NoError(t, err)

	_, err = shared.ctl.CheckIn(ctx, res)
	require.NoError(t, err)
	requireRoomStatus(t, "513", fodb.RoomStatusOCCUPIED)
}

func TestCancelCheckIn(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	res := newReservation(t, "Changed Mind", "502", "2027-03-01", "2027-03-03")

	stayID, err := shared.ctl.CheckIn(ctx, res)
	require.NoError(t, err)
	require.NoError(t, shared.ctl.CancelCheckIn(ctx, stayID))

	_, err = shared.dbq.Stay(ctx, shared.dbq, stayID)
	require.ErrorIs(t, err, sql.ErrNoRows)
	requireRoomStatus(t, "502", fodb.RoomStatusVACANT)
	requireReservationStatus(t, res, fodb.ReservationStatusCONFIRMED)

	arrivals, err := shared.ctl.ListArrivals(ctx, day("2027-03-01"))
	require.NoError(t, err)
	assert.True(t, containsReservation(arrivals, res))

	err = shared.ctl.CancelCheckIn(ctx, stayID)
	require.Error(t, err)
	assert.Equal(t, "Stay not found", fderr.Message(err))

	// the guest can check in again
	_, err = shared.ctl.CheckIn(ctx, res)
	require.NoError(t, err)
}

func TestCancelCheckOutWhenRoomRetaken(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	first := newReservation(t, "First Guest", "503", "2027-03-01", "2027-03-03")
	second := newReservation(t, "Second Guest", "503", "2027-03-10", "2027-03-12")

	firstStay, err := shared.ctl.CheckIn(ctx, first)
	require.NoError(t, err)
	_, err = shared.ctl.CheckOut(ctx, firstStay)
	require.NoError(t, err)
	_, err = shared.ctl.CheckIn(ctx, second)
	require.NoError(t, err)

	err = shared.ctl.CancelCheckOut(ctx, firstStay)
	require.Error(t, err)
	assert.True(t, fderr.IsConflict(err))
	assert.Equal(t, "Room 503 occupied by Second Guest (Res #L-Second Guest)", fderr.Message(err))

	// nothing changed
	requireReservationStatus(t, first, fodb.ReservationStatusCHECKEDOUT)
	requireRoomStatus(t, "503", fodb.RoomStatusOCCUPIED)
}

func TestMoveRoom(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	mover := newReservation(t, "Mover", "505", "2027-03-01", "2027-03-04")
	other := newReservation(t, "Neighbour", "506", "2027-03-02", "2027-03-06")

	moverStay, err := shared.ctl.CheckIn(ctx, mover)
	require.NoError(t, err)
	_, err = shared.ctl.CheckIn(ctx, other)
	require.NoError(t, err)

	_, err = shared.ctl.MoveRoom(ctx, moverStay, "506")
	require.Error(t, err)
	assert.True(t, fderr.IsConflict(err))

	_, err = shared.ctl.MoveRoom(ctx, moverStay, "599")
	require.Error(t, err)
	assert.Equal(t, fderr.KindValidation, fderr.KindOf(err))

	room, err := shared.ctl.MoveRoom(ctx, moverStay, " 507 ")
	require.NoError(t, err)
	assert.Equal(t, "507", room)
	requireRoomStatus(t, "505", fodb.RoomStatusVACANT)
	requireRoomStatus(t, "507", fodb.RoomStatusOCCUPIED)

	stay, err := shared.dbq.Stay(ctx, shared.dbq, moverStay)
	require.NoError(t, err)
	assert.Equal(t, "507", stay.Room)
	r, err := shared.dbq.Reservation(ctx, shared.dbq, mover)
	require.NoError(t, err)
	assert.Equal(t, "507", r.Room.String)

	_, err = shared.ctl.CheckOut(ctx, moverStay)
	require.NoError(t, err)
	_, err = shared.ctl.MoveRoom(ctx, moverStay, "508")
	require.Error(t, err)
	assert.Equal(t, fderr.KindState, fderr.KindOf(err))

	_, err = shared.ctl.MoveRoom(ctx, 987654, "508")
	require.Error(t, err)
	assert.Equal(t, "Stay not found", fderr.Message(err))
}

func TestMarkNoShow(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	arrival := day("2027-03-20")
	res := newReservation(t, "Absent", "509", "2027-03-20", "2027-03-22")

	potential, err := shared.ctl.ListPotentialNoShows(ctx, arrival)
	require.NoError(t, err)
	assert.True(t, containsReservation(potential, res))

	_, err = shared.ctl.MarkNoShow(ctx, res, lifecycle.NoShowInput{AmountCharged: -1})
	require.Error(t, err)
	assert.Equal(t, fderr.KindValidation, fderr.KindOf(err))

	id, err := shared.ctl.MarkNoShow(ctx, res, lifecycle.NoShowInput{
		Charged:       true,
		AmountCharged: 120,
		Comment:       "  first night charged ",
	})
	require.NoError(t, err)
	requireReservationStatus(t, res, fodb.ReservationStatusNOSHOW)

	noShows, err := shared.ctl.ListNoShows(ctx, arrival)
	require.NoError(t, err)
	var found *fodb.NoShow
	for i := range noShows {
		if noShows[i].ID == id {
			found = &noShows[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "Absent", found.GuestName)
	assert.Equal(t, "first night charged", found.Comment)
	assert.InDelta(t, 120.0, found.AmountCharged, 0.001)

	arrivals, err := shared.ctl.ListArrivals(ctx, arrival)
	require.NoError(t, err)
	assert.False(t, containsReservation(arrivals, res))

	// the room's dates are free again
	replacement := newReservation(t, "Replacement", "", "2027-03-20", "2027-03-22")
	_, err = shared.engine.AssignRoom(ctx, replacement, "509")
	require.NoError(t, err)

	_, err = shared.ctl.MarkNoShow(ctx, res, lifecycle.NoShowInput{})
	require.Error(t, err)
	assert.Equal(t, fderr.KindState, fderr.KindOf(err))
}

func TestDeparturesAndGuests(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	res := newReservation(t, "Leaving Soon", "514", "2027-03-25", "2027-03-27")
	stayID, err := shared.ctl.CheckIn(ctx, res)
	require.NoError(t, err)

	departures, err := shared.ctl.ListDepartures(ctx, day("2027-03-27"))
	require.NoError(t, err)
	assert.True(t, containsStay(departures, stayID))

	guests, err := shared.ctl.ListGuestsForDate(ctx, day("2027-03-26"))
	require.NoError(t, err)
	assert.True(t, containsReservation(guests, res))

	guests, err = shared.ctl.ListGuestsForDate(ctx, day("2027-03-27"))
	require.NoError(t, err)
	assert.False(t, containsReservation(guests, res))
}

func containsStay(rows []fodb.StayRow, stayID int64) bool {
	for _, r := range rows {
		if r.Stay.ID == stayID {
			return true
		}
	}
	return false
}

func containsReservation(rows []fodb.Reservation, id int64) bool {
	for _, r := range rows {
		if r.ID == id {
			return true
		}
	}
	return false
}
