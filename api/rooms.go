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

package api

import (
	"fmt"
	"github.com/hotelfo/frontdesk/allocation"
	"github.com/hotelfo/frontdesk/inventory"
	fdjson "github.com/hotelfo/frontdesk/json"
	"github.com/hotelfo/frontdesk/lib/conv"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/hotelfo/frontdesk/lib/herr"
	"github.com/hotelfo/frontdesk/store"
	"github.com/hotelfo/frontdesk/store/actionlog"
	"net/http"
	"time"
)

const ActionSetRoomStatus = "set_room_status"

type GetRooms struct {
	inv               *inventory.Inventory
	cacheControlShort time.Duration
}

func (action GetRooms) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	rooms, err := action.inv.Rooms(req.Context())
	if err != nil {
		herr.FromDomain(err).From("[Rooms]").WriteResponse(w)
		return
	}
	resp := make(fdjson.Rooms, 0, len(rooms))
	for _, r := range rooms {
		resp = append(resp, toRoom(r))
	}
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%v, private", action.cacheControlShort.Milliseconds()/1000))
	mustWriteJSON(w, req, resp)
}

type SetRoomStatus struct {
	inv *inventory.Inventory
	rec actionlog.Recorder
}

func (action SetRoomStatus) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.setRoomStatus(req)
	if errHTTP != nil {
		errHTTP.From("[setRoomStatus]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action SetRoomStatus) setRoomStatus(req *http.Request) (fdjson.Room, *herr.HTTPError) {
	body, errHTTP := readBodyAs[fdjson.SetRoomStatus](req)
	if errHTTP != nil {
		return fdjson.Room{}, errHTTP.From("[readBodyAs]")
	}
	number, status, err := action.inv.SetStatus(req.Context(), req.PathValue("room"), body.Status)
	if err != nil {
		return fdjson.Room{}, herr.FromDomain(err).From("[SetStatus]")
	}
	action.rec.Record(req.Context(), actionlog.Entry{
		Action:  ActionSetRoomStatus,
		Room:    number,
		Message: fmt.Sprintf("Room %v marked %v", number, status),
	})
	room, err := action.inv.Room(req.Context(), number)
	if err != nil {
		return fdjson.Room{}, herr.FromDomain(err).From("[Room]")
	}
	return toRoom(room), nil
}

// ValidateRoom answers whether a typed room number is acceptable. A bad
// number is a normal answer here, not an error response.
type ValidateRoom struct {
	inv *inventory.Inventory
}

func (action ValidateRoom) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	number, err := action.inv.Catalog().ValidateRoomNumber(req.URL.Query().Get("room"))
	if err != nil {
		mustWriteJSON(w, req, fdjson.RoomValidation{Valid: false, Message: fderr.Message(err)})
		return
	}
	mustWriteJSON(w, req, fdjson.RoomValidation{Valid: true, Room: number})
}

// GetAvailability reports whether a room is free for [arrival, departure).
// A conflict is part of the answer, so it comes back with status 200.
type GetAvailability struct {
	dbq    *store.DBQ
	engine *allocation.Engine
}

func (action GetAvailability) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getAvailability(req)
	if errHTTP != nil {
		errHTTP.From("[getAvailability]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetAvailability) getAvailability(req *http.Request) (fdjson.Availability, *herr.HTTPError) {
	var empty fdjson.Availability
	q := req.URL.Query()
	arrival, errHTTP := requiredDate(q.Get("arrival"), "arrival")
	if errHTTP != nil {
		return empty, errHTTP
	}
	departure, errHTTP := requiredDate(q.Get("departure"), "departure")
	if errHTTP != nil {
		return empty, errHTTP
	}
	var exclude int64
	if raw := q.Get("exclude"); raw != "" {
		var err error
		exclude, err = conv.ParseInt64(raw)
		if err != nil {
			return empty, herr.BadRequest("Invalid exclude id", err).SetExpectedError()
		}
	}
	err := action.engine.CheckAvailability(req.Context(), action.dbq, q.Get("room"), arrival, departure, exclude)
	if fderr.IsConflict(err) {
		return fdjson.Availability{
			Available: false,
			Message:   fderr.Message(err),
			Conflict:  toConflict(err),
		}, nil
	}
	if err != nil {
		return empty, herr.FromDomain(err).From("[CheckAvailability]")
	}
	return fdjson.Availability{Available: true}, nil
}
