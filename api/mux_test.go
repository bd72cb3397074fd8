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

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/hotelfo/frontdesk/allocation"
	"github.com/hotelfo/frontdesk/api"
	"github.com/hotelfo/frontdesk/conf"
	"github.com/hotelfo/frontdesk/housekeeping"
	"github.com/hotelfo/frontdesk/inventory"
	fdjson "github.com/hotelfo/frontdesk/json"
	"github.com/hotelfo/frontdesk/lib/authn"
	"github.com/hotelfo/frontdesk/lib/herr"
	"github.com/hotelfo/frontdesk/lifecycle"
	"github.com/hotelfo/frontdesk/reservation"
	"github.com/hotelfo/frontdesk/store/actionlog"
	"github.com/hotelfo/frontdesk/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

const (
	staffHandle   = "nightaudit"
	staffPassword = "front desk 24/7"
)

var shared struct {
	server *httptest.Server
	es     *api.EventSourcerer
}

func TestMain(m *testing.M) {
	ctx, cancel := context.WithCancel(context.Background())
	dbq, err := storetest.FakeDBQ(ctx)
	if err != nil {
		log.Panic(err)
	}
	hash, err := authn.Hash(staffPassword)
	if err != nil {
		log.Panic(err)
	}
	cfg := conf.DefaultFrontDesk()
	cfg.Staff.Users = []conf.StaffUser{{Handle: staffHandle, PasswordHash: hash}}

	shared.es = api.NewEventSourcerer()
	logger := actionlog.NewLogger(ctx, dbq, true, true)
	rec := actionlog.Recorders{logger, shared.es}

	inv := inventory.New(dbq, inventory.NewCatalog([]conf.RoomBlock{{First: 200, Last: 219}}), nil, 0)
	engine := allocation.New(dbq, inv, rec)
	mux := api.AddToMux(nil, shared.es, cfg, api.FrontDesk{
		DBQ:          dbq,
		Inventory:    inv,
		Engine:       engine,
		Lifecycle:    lifecycle.New(dbq, inv, engine, rec),
		Reservations: reservation.New(dbq, inv, engine, rec),
		Housekeeping: housekeeping.New(dbq, inv, rec),
		Recorder:     rec,
		Location:     time.UTC,
	})
	shared.server = httptest.NewServer(mux)

	code := m.Run()
	shared.server.Close()
	shared.es.Close()
	logger.Close()
	cancel()
	os.Exit(code)
}

type client struct {
	t     *testing.T
	token string
}

func (c client) do(method, path string, body any) *http.Response {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(c.t.Context(), method, shared.server.URL+path, r)
	require.NoError(c.t, err)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := shared.server.Client().Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// call sends the request, requires the status, and decodes the body into out.
func call[T any](c client, method, path string, body any, wantCode int) T {
	c.t.Helper()
	resp := c.do(method, path, body)
	b, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	require.Equal(c.t, wantCode, resp.StatusCode, string(b))
	var out T
	if len(b) > 0 && resp.Header.Get("Content-Type") != "text/plain; charset=utf-8" {
		require.NoError(c.t, json.Unmarshal(b, &out), string(b))
	}
	return out
}

func login(t *testing.T) client {
	t.Helper()
	c := client{t: t}
	resp := call[fdjson.AuthResponse](c, http.MethodPost, "/fo/api/auth",
		fdjson.AuthRequest{Handle: "NightAudit", Password: staffPassword}, http.StatusOK)
	require.NotEmpty(t, resp.Token)
	require.Greater(t, resp.ExpiresUnixMs, time.Now().UnixMilli())
	c.token = resp.Token
	return c
}

func TestAuth(t *testing.T) {
	t.Parallel()
	anon := client{t: t}

	p := call[herr.Problem](anon, http.MethodPost, "/fo/api/auth",
		fdjson.AuthRequest{Handle: staffHandle, Password: "nope"}, http.StatusUnauthorized)
	assert.Equal(t, "Failed login attempt (bad credentials)", p.Detail)
	call[herr.Problem](anon, http.MethodPost, "/fo/api/auth",
		fdjson.AuthRequest{Handle: "stranger", Password: staffPassword}, http.StatusUnauthorized)

	resp := anon.do(http.MethodGet, "/fo/api/rooms", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, herr.ApplicationProblemMediaType, resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get(api.RequestIDHeader))

	c := login(t)
	info := call[fdjson.AuthInfo](c, http.MethodGet, "/fo/api/auth", nil, http.StatusOK)
	assert.True(t, info.Authenticated)
	assert.Equal(t, staffHandle, info.Handle)

	resp = anon.do(http.MethodGet, "/fo/api/ping", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoomsAndValidation(t *testing.T) {
	t.Parallel()
	c := login(t)

	v := call[fdjson.RoomValidation](c, http.MethodGet, "/fo/api/rooms/validate?room=0215", nil, http.StatusOK)
	assert.True(t, v.Valid)
	assert.Equal(t, "215", v.Room)
	v = call[fdjson.RoomValidation](c, http.MethodGet, "/fo/api/rooms/validate?room=215.0", nil, http.StatusOK)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Message, "decimals")

	room := call[fdjson.Room](c, http.MethodPost, "/fo/api/rooms/216/status",
		fdjson.SetRoomStatus{Status: "dirty"}, http.StatusOK)
	assert.Equal(t, "216", room.Number)
	assert.Equal(t, "DIRTY", room.Status)

	p := call[herr.Problem](c, http.MethodPost, "/fo/api/rooms/216/status",
		fdjson.SetRoomStatus{Status: "sparkling"}, http.StatusBadRequest)
	assert.Equal(t, "validation", p.Kind)

	rooms := call[fdjson.Rooms](c, http.MethodGet, "/fo/api/rooms", nil, http.StatusOK)
	var found bool
	for _, r := range rooms {
		if r.Number == "216" {
			found = true
			assert.Equal(t, "DIRTY", r.Status)
		}
	}
	assert.True(t, found)
}

func TestFrontDeskDay(t *testing.T) {
	t.Parallel()
	c := login(t)

	first := call[fdjson.Reservation](c, http.MethodPost, "/fo/api/reservations", fdjson.NewReservation{
		ReservationNo: "API-1",
		GuestName:     "Ada Byron",
		Arrival:       "2027-09-01",
		Departure:     "2027-09-04",
		Room:          "201",
		Adults:        2,
	}, http.StatusCreated)
	assert.Equal(t, "201", first.Room)
	assert.Equal(t, "CONFIRMED", first.Status)

	// a second booking overlapping the first is refused with the holder named
	p := call[herr.Problem](c, http.MethodPost, "/fo/api/reservations", fdjson.NewReservation{
		ReservationNo: "API-2",
		GuestName:     "Charles Babbage",
		Arrival:       "2027-09-03",
		Departure:     "2027-09-06",
		Room:          "201",
	}, http.StatusConflict)
	assert.Equal(t, "conflict", p.Kind)
	assert.Equal(t, "Room 201 occupied by Ada Byron (Res #API-1)", p.Detail)

	avail := call[fdjson.Availability](c, http.MethodGet,
		"/fo/api/availability?room=201&arrival=2027-09-03&departure=2027-09-06", nil, http.StatusOK)
	assert.False(t, avail.Available)
	require.NotNil(t, avail.Conflict)
	assert.Equal(t, first.ID, avail.Conflict.ReservationID)

	// back-to-back is fine
	avail = call[fdjson.Availability](c, http.MethodGet,
		"/fo/api/availability?room=201&arrival=2027-09-04&departure=2027-09-06", nil, http.StatusOK)
	assert.True(t, avail.Available)

	second := call[fdjson.Reservation](c, http.MethodPost, "/fo/api/reservations", fdjson.NewReservation{
		ReservationNo: "API-2",
		GuestName:     "Charles Babbage",
		Arrival:       "2027-09-03",
		Departure:     "2027-09-06",
	}, http.StatusCreated)
	call[herr.Problem](c, http.MethodPost, fmt.Sprintf("/fo/api/reservations/%d/room", second.ID),
		fdjson.AssignRoom{Room: "201"}, http.StatusConflict)
	out := call[fdjson.Outcome](c, http.MethodPost, fmt.Sprintf("/fo/api/reservations/%d/room", second.ID),
		fdjson.AssignRoom{Room: "202"}, http.StatusOK)
	assert.Equal(t, "Room 202 assigned successfully", out.Message)

	checkIn := call[fdjson.Outcome](c, http.MethodPost,
		fmt.Sprintf("/fo/api/reservations/%d/checkin", first.ID), nil, http.StatusOK)
	stayID := checkIn.ID
	require.NotZero(t, stayID)

	inHouse := call[fdjson.Stays](c, http.MethodGet, "/fo/api/inhouse?date=2027-09-02", nil, http.StatusOK)
	var stay *fdjson.Stay
	for i := range inHouse {
		if inHouse[i].ID == stayID {
			stay = &inHouse[i]
		}
	}
	require.NotNil(t, stay)
	require.NotNil(t, stay.Reservation)
	assert.Equal(t, "Ada Byron", stay.Reservation.GuestName)
	assert.NotNil(t, stay.ActualIn)

	comment, plate := "Late breakfast", "ab 123"
	resp := c.do(http.MethodPost, fmt.Sprintf("/fo/api/stays/%d", stayID),
		fdjson.EditStay{Comment: &comment, ParkingPlate: &plate})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	got := call[fdjson.Stay](c, http.MethodGet, fmt.Sprintf("/fo/api/stays/%d", stayID), nil, http.StatusOK)
	assert.Equal(t, "Late breakfast", got.Comment)
	assert.Equal(t, "AB 123", got.ParkingPlate)

	// room 202 belongs to the second guest from the 3rd
	call[herr.Problem](c, http.MethodPost, fmt.Sprintf("/fo/api/stays/%d/move", stayID),
		fdjson.MoveRoom{Room: "202"}, http.StatusConflict)
	moved := call[fdjson.Outcome](c, http.MethodPost, fmt.Sprintf("/fo/api/stays/%d/move", stayID),
		fdjson.MoveRoom{Room: "203"}, http.StatusOK)
	assert.Equal(t, "203", moved.Room)

	call[fdjson.Outcome](c, http.MethodPost, fmt.Sprintf("/fo/api/stays/%d/checkout", stayID), nil, http.StatusOK)
	p = call[herr.Problem](c, http.MethodPost, fmt.Sprintf("/fo/api/stays/%d/cancel_checkin", stayID), nil, http.StatusConflict)
	assert.Equal(t, "state", p.Kind)

	rooms := call[fdjson.Rooms](c, http.MethodGet, "/fo/api/rooms", nil, http.StatusOK)
	for _, r := range rooms {
		if r.Number == "203" {
			assert.Equal(t, "VACANT", r.Status)
		}
	}

	payment := call[fdjson.Outcome](c, http.MethodPost, fmt.Sprintf("/fo/api/reservations/%d/payments", first.ID),
		fdjson.NewPayment{Amount: 240, Method: "card"}, http.StatusCreated)
	require.NotZero(t, payment.ID)
	payments := call[fdjson.Payments](c, http.MethodGet,
		fmt.Sprintf("/fo/api/reservations/%d/payments", first.ID), nil, http.StatusOK)
	require.Len(t, payments, 1)
	assert.Equal(t, "PAYMENT", payments[0].Type)

	logs := call[fdjson.ActionLogs](c, http.MethodGet, "/fo/api/action_logs?limit=500", nil, http.StatusOK)
	var sawCheckIn bool
	for _, l := range logs {
		if l.Action == lifecycle.ActionCheckIn && l.StayID == stayID {
			sawCheckIn = true
			assert.Equal(t, staffHandle, l.Actor)
		}
	}
	assert.True(t, sawCheckIn)
}

func TestNoShowAndCancel(t *testing.T) {
	t.Parallel()
	c := login(t)

	noShow := call[fdjson.Reservation](c, http.MethodPost, "/fo/api/reservations", fdjson.NewReservation{
		GuestName: "Grace Hopper",
		Arrival:   "2027-10-10",
		Departure: "2027-10-12",
		Room:      "210",
	}, http.StatusCreated)
	assert.NotEmpty(t, noShow.ReservationNo)

	potential := call[fdjson.Reservations](c, http.MethodGet, "/fo/api/potential_no_shows?date=2027-10-10", nil, http.StatusOK)
	assert.True(t, hasReservation(potential, noShow.ID))

	call[herr.Problem](c, http.MethodPost, fmt.Sprintf("/fo/api/reservations/%d/no_show", noShow.ID),
		fdjson.MarkNoShow{AmountCharged: -1}, http.StatusBadRequest)
	call[fdjson.Outcome](c, http.MethodPost, fmt.Sprintf("/fo/api/reservations/%d/no_show", noShow.ID),
		fdjson.MarkNoShow{Charged: true, AmountCharged: 80}, http.StatusOK)
	noShows := call[fdjson.NoShows](c, http.MethodGet, "/fo/api/no_shows?date=2027-10-10", nil, http.StatusOK)
	var charged float64
	for _, n := range noShows {
		if n.ReservationID == noShow.ID {
			charged = n.AmountCharged
		}
	}
	assert.InDelta(t, 80, charged, 0.001)

	// the no-show freed room 210 for the same nights
	cancelled := call[fdjson.Reservation](c, http.MethodPost, "/fo/api/reservations", fdjson.NewReservation{
		GuestName: "Alan Turing",
		Arrival:   "2027-10-10",
		Departure: "2027-10-11",
		Room:      "210",
	}, http.StatusCreated)
	call[fdjson.Outcome](c, http.MethodPost, fmt.Sprintf("/fo/api/reservations/%d/cancel", cancelled.ID), nil, http.StatusOK)
	got := call[fdjson.Reservation](c, http.MethodGet, fmt.Sprintf("/fo/api/reservations/%d", cancelled.ID), nil, http.StatusOK)
	assert.Equal(t, "CANCELLED", got.Status)

	found := call[fdjson.Reservations](c, http.MethodGet, "/fo/api/reservations?q=Turing", nil, http.StatusOK)
	assert.True(t, hasReservation(found, cancelled.ID))
	byRoom := call[fdjson.Reservations](c, http.MethodGet, "/fo/api/reservations?room=210", nil, http.StatusOK)
	assert.True(t, hasReservation(byRoom, noShow.ID))

	call[herr.Problem](c, http.MethodGet, "/fo/api/reservations/999999", nil, http.StatusNotFound)
	call[herr.Problem](c, http.MethodGet, "/fo/api/reservations/abc", nil, http.StatusBadRequest)
}

func TestHousekeepingEndpoints(t *testing.T) {
	t.Parallel()
	c := login(t)

	arriving := call[fdjson.Reservation](c, http.MethodPost, "/fo/api/reservations", fdjson.NewReservation{
		GuestName:  "Katherine Johnson",
		Arrival:    "2027-11-20",
		Departure:  "2027-11-22",
		Room:       "218",
		MainRemark: "VIP, accessible please",
	}, http.StatusCreated)

	tasks := call[fdjson.Tasks](c, http.MethodGet, "/fo/api/housekeeping/tasks?date=2027-11-20", nil, http.StatusOK)
	var arrival *fdjson.Task
	for i := range tasks {
		if tasks[i].ReservationID == arriving.ID && tasks[i].TaskType == "ARRIVAL" {
			arrival = &tasks[i]
		}
	}
	require.NotNil(t, arrival)
	assert.Equal(t, "ARRIVAL", arrival.TaskType)
	assert.Equal(t, "PENDING", arrival.Status)
	assert.Contains(t, arrival.Notes, housekeeping.NoteAccessible)

	resp := c.do(http.MethodPost, "/fo/api/housekeeping/tasks", fdjson.TaskStatusUpdate{
		Date:     "2027-11-20",
		Room:     "218",
		TaskType: "arrival",
		Status:   "done",
		Notes:    "flowers in room",
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	tasks = call[fdjson.Tasks](c, http.MethodGet, "/fo/api/housekeeping/tasks?date=2027-11-20", nil, http.StatusOK)
	for _, task := range tasks {
		if task.Room == "218" && task.TaskType == "ARRIVAL" {
			assert.Equal(t, "DONE", task.Status)
			assert.Equal(t, "flowers in room", task.StaffNotes)
			assert.Equal(t, arriving.ID, task.ReservationID)
		}
	}

	p := call[herr.Problem](c, http.MethodPost, "/fo/api/housekeeping/tasks", fdjson.TaskStatusUpdate{
		Date: "2027-11-20", Room: "218", TaskType: "ARRIVAL", Status: "HALF_DONE",
	}, http.StatusBadRequest)
	assert.Equal(t, "Invalid task status. Use PENDING or DONE.", p.Detail)

	call[herr.Problem](c, http.MethodGet, "/fo/api/housekeeping/tasks?date=tomorrow", nil, http.StatusBadRequest)

	sync := call[fdjson.SyncRooms](c, http.MethodPost, "/fo/api/admin/sync_rooms", nil, http.StatusOK)
	assert.GreaterOrEqual(t, sync.OccupiedRooms, 0)

	dash := call[fdjson.Dashboard](c, http.MethodGet, "/fo/api/dashboard?date=2027-11-20", nil, http.StatusOK)
	assert.Equal(t, "2027-11-20", dash.Date)
	assert.True(t, hasReservation(dash.Arrivals, arriving.ID))
}

func TestEventSourcerRecords(t *testing.T) {
	t.Parallel()
	before := shared.es.IdCounter.Load()
	shared.es.Record(t.Context(), actionlog.Entry{Action: "check_in", StayID: 1})
	assert.Greater(t, shared.es.IdCounter.Load(), before)

	ev := api.ChangeEvent{EventID: 3, Change: api.ChangeData{ReservationID: 5, Room: "201"}}
	assert.Equal(t, "3", ev.Id())
	assert.Equal(t, "Reservation", ev.Event())
	assert.JSONEq(t, `{"reservation_id":5,"room":"201"}`, ev.Data())
	assert.Equal(t, "Room", api.ChangeEvent{Change: api.ChangeData{Room: "201"}}.Event())
}

type exampleAction struct {
	output *bytes.Buffer
}

func (e exampleAction) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	fmt.Fprintln(e.output, "    in the action")
}

func namedAdapter(output *bytes.Buffer, indent, name string) api.Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintln(output, indent+name+" before")
			next.ServeHTTP(w, r)
			fmt.Fprintln(output, indent+name+" after")
		})
	}
}

// TestAdapt shows that adapters wrap in the order they are listed.
func TestAdapt(t *testing.T) {
	t.Parallel()
	b := bytes.Buffer{}
	api.Adapt(
		exampleAction{output: &b},
		namedAdapter(&b, "", "outer"),
		namedAdapter(&b, "  ", "inner"),
	).ServeHTTP(nil, nil)
	require.Equal(t, ""+
		"outer before\n"+
		"  inner before\n"+
		"    in the action\n"+
		"  inner after\n"+
		"outer after\n",
		b.String(),
	)
}

func hasReservation(rows fdjson.Reservations, id int64) bool {
	for _, r := range rows {
		if r.ID == id {
			return true
		}
	}
	return false
}
