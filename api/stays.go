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
	fdjson "github.com/hotelfo/frontdesk/json"
	"github.com/hotelfo/frontdesk/lib/herr"
	"github.com/hotelfo/frontdesk/lifecycle"
	"github.com/hotelfo/frontdesk/reservation"
	"net/http"
)

type GetStay struct {
	res *reservation.Store
}

func (action GetStay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getStay(req)
	if errHTTP != nil {
		errHTTP.From("[getStay]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetStay) getStay(req *http.Request) (fdjson.Stay, *herr.HTTPError) {
	id, errHTTP := pathID(req, "stayID")
	if errHTTP != nil {
		return fdjson.Stay{}, errHTTP
	}
	stay, err := action.res.GetStay(req.Context(), id)
	if err != nil {
		return fdjson.Stay{}, herr.FromDomain(err).From("[GetStay]")
	}
	r, err := action.res.Get(req.Context(), stay.ReservationID)
	if err != nil {
		return fdjson.Stay{}, herr.FromDomain(err).From("[Get]")
	}
	resp := toStay(stay)
	jr := toReservation(r)
	resp.Reservation = &jr
	return resp, nil
}

// EditStay applies whichever of the comment and parking fields are set.
type EditStay struct {
	res *reservation.Store
}

func (action EditStay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if errHTTP := action.editStay(req); errHTTP != nil {
		errHTTP.From("[editStay]").WriteResponse(w)
		return
	}
	herr.WriteNoContentResponse(w)
}

func (action EditStay) editStay(req *http.Request) *herr.HTTPError {
	id, errHTTP := pathID(req, "stayID")
	if errHTTP != nil {
		return errHTTP
	}
	body, errHTTP := readBodyAs[fdjson.EditStay](req)
	if errHTTP != nil {
		return errHTTP.From("[readBodyAs]")
	}
	ctx := req.Context()
	if body.Comment != nil {
		if err := action.res.UpdateStayComment(ctx, id, *body.Comment); err != nil {
			return herr.FromDomain(err).From("[UpdateStayComment]")
		}
	}
	if body.ParkingSpace == nil && body.ParkingPlate == nil && body.ParkingNotes == nil {
		return nil
	}
	current, err := action.res.GetStay(ctx, id)
	if err != nil {
		return herr.FromDomain(err).From("[GetStay]")
	}
	p := reservation.Parking{
		Space: current.ParkingSpace,
		Plate: current.ParkingPlate,
		Notes: current.ParkingNotes,
	}
	if body.ParkingSpace != nil {
		p.Space = *body.ParkingSpace
	}
	if body.ParkingPlate != nil {
		p.Plate = *body.ParkingPlate
	}
	if body.ParkingNotes != nil {
		p.Notes = *body.ParkingNotes
	}
	if err = action.res.UpdateParking(ctx, id, p); err != nil {
		return herr.FromDomain(err).From("[UpdateParking]")
	}
	return nil
}

// CheckOut accepts a stay id, or a reservation id for a guest who was never
// checked in through the desk.
type CheckOut struct {
	ctl *lifecycle.Controller
}

func (action CheckOut) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id, errHTTP := pathID(req, "stayID")
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	stayID, err := action.ctl.CheckOut(req.Context(), id)
	if err != nil {
		herr.FromDomain(err).From("[CheckOut]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, fdjson.Outcome{ID: stayID, Message: "Checked out successfully"})
}

type CancelCheckIn struct {
	ctl *lifecycle.Controller
}

func (action CancelCheckIn) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id, errHTTP := pathID(req, "stayID")
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	if err := action.ctl.CancelCheckIn(req.Context(), id); err != nil {
		herr.FromDomain(err).From("[CancelCheckIn]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, fdjson.Outcome{ID: id, Message: "Check-in cancelled"})
}

type CancelCheckOut struct {
	ctl *lifecycle.Controller
}

func (action CancelCheckOut) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id, errHTTP := pathID(req, "stayID")
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	if err := action.ctl.CancelCheckOut(req.Context(), id); err != nil {
		herr.FromDomain(err).From("[CancelCheckOut]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, fdjson.Outcome{ID: id, Message: "Check-out cancelled"})
}

type MoveRoom struct {
	ctl *lifecycle.Controller
}

func (action MoveRoom) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.moveRoom(req)
	if errHTTP != nil {
		errHTTP.From("[moveRoom]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action MoveRoom) moveRoom(req *http.Request) (fdjson.Outcome, *herr.HTTPError) {
	id, errHTTP := pathID(req, "stayID")
	if errHTTP != nil {
		return fdjson.Outcome{}, errHTTP
	}
	body, errHTTP := readBodyAs[fdjson.MoveRoom](req)
	if errHTTP != nil {
		return fdjson.Outcome{}, errHTTP.From("[readBodyAs]")
	}
	number, err := action.ctl.MoveRoom(req.Context(), id, body.Room)
	if err != nil {
		return fdjson.Outcome{}, herr.FromDomain(err).From("[MoveRoom]")
	}
	return fdjson.Outcome{ID: id, Room: number, Message: "Guest moved to room " + number}, nil
}
