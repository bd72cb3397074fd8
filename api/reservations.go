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
	fdjson "github.com/hotelfo/frontdesk/json"
	"github.com/hotelfo/frontdesk/lib/herr"
	"github.com/hotelfo/frontdesk/lifecycle"
	"github.com/hotelfo/frontdesk/reservation"
	"github.com/hotelfo/frontdesk/store/fodb"
	"net/http"
)

// GetReservations searches by ?q=, or lists a room's reservations by ?room=.
type GetReservations struct {
	res *reservation.Store
}

func (action GetReservations) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	var rows []fodb.Reservation
	var err error
	if room := q.Get("room"); room != "" {
		rows, err = action.res.ByRoom(req.Context(), room)
	} else {
		rows, err = action.res.Search(req.Context(), q.Get("q"))
	}
	if err != nil {
		herr.FromDomain(err).From("[getReservations]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, toReservations(rows))
}

type NewReservation struct {
	res *reservation.Store
}

func (action NewReservation) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.newReservation(req)
	if errHTTP != nil {
		errHTTP.From("[newReservation]").WriteResponse(w)
		return
	}
	w.Header().Set("FD-Reservation-ID", fmt.Sprint(resp.ID))
	mustWriteJSONStatus(w, req, http.StatusCreated, resp)
}

func (action NewReservation) newReservation(req *http.Request) (fdjson.Reservation, *herr.HTTPError) {
	var empty fdjson.Reservation
	body, errHTTP := readBodyAs[fdjson.NewReservation](req)
	if errHTTP != nil {
		return empty, errHTTP.From("[readBodyAs]")
	}
	in := reservation.NewReservation{
		ReservationNo: body.ReservationNo,
		GuestName:     body.GuestName,
		Room:          body.Room,
		MainClient:    body.MainClient,
		MealPlan:      body.MealPlan,
		Adults:        body.Adults,
		Children:      body.Children,
		Channel:       body.Channel,
		MainRemark:    body.MainRemark,
		TotalRemarks:  body.TotalRemarks,
	}
	// Missing dates are left zero for the store to reject with its own message.
	if body.Arrival != "" {
		if in.Arrival, errHTTP = requiredDate(body.Arrival, "arrival"); errHTTP != nil {
			return empty, errHTTP
		}
	}
	if body.Departure != "" {
		if in.Departure, errHTTP = requiredDate(body.Departure, "departure"); errHTTP != nil {
			return empty, errHTTP
		}
	}
	created, err := action.res.Create(req.Context(), in)
	if err != nil {
		return empty, herr.FromDomain(err).From("[Create]")
	}
	return toReservation(created), nil
}

type GetReservation struct {
	res *reservation.Store
}

func (action GetReservation) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id, errHTTP := pathID(req, "reservationID")
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	r, err := action.res.Get(req.Context(), id)
	if err != nil {
		herr.FromDomain(err).From("[Get]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, toReservation(r))
}

type AssignRoom struct {
	engine *allocation.Engine
}

func (action AssignRoom) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.assignRoom(req)
	if errHTTP != nil {
		errHTTP.From("[assignRoom]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action AssignRoom) assignRoom(req *http.Request) (fdjson.Outcome, *herr.HTTPError) {
	id, errHTTP := pathID(req, "reservationID")
	if errHTTP != nil {
		return fdjson.Outcome{}, errHTTP
	}
	body, errHTTP := readBodyAs[fdjson.AssignRoom](req)
	if errHTTP != nil {
		return fdjson.Outcome{}, errHTTP.From("[readBodyAs]")
	}
	number, err := action.engine.AssignRoom(req.Context(), id, body.Room)
	if err != nil {
		return fdjson.Outcome{}, herr.FromDomain(err).From("[AssignRoom]")
	}
	return fdjson.Outcome{
		ID:      id,
		Room:    number,
		Message: fmt.Sprintf("Room %v assigned successfully", number),
	}, nil
}

type EditNotes struct {
	res *reservation.Store
}

func (action EditNotes) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id, errHTTP := pathID(req, "reservationID")
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	body, errHTTP := readBodyAs[fdjson.Notes](req)
	if errHTTP != nil {
		errHTTP.From("[readBodyAs]").WriteResponse(w)
		return
	}
	if err := action.res.UpdateNotes(req.Context(), id, body.MainRemark, body.TotalRemarks); err != nil {
		herr.FromDomain(err).From("[UpdateNotes]").WriteResponse(w)
		return
	}
	herr.WriteNoContentResponse(w)
}

type CheckIn struct {
	ctl *lifecycle.Controller
}

func (action CheckIn) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id, errHTTP := pathID(req, "reservationID")
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	stayID, err := action.ctl.CheckIn(req.Context(), id)
	if err != nil {
		herr.FromDomain(err).From("[CheckIn]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, fdjson.Outcome{ID: stayID, Message: "Checked in successfully"})
}

type MarkNoShow struct {
	ctl *lifecycle.Controller
}

func (action MarkNoShow) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id, errHTTP := pathID(req, "reservationID")
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	body, errHTTP := readBodyAs[fdjson.MarkNoShow](req)
	if errHTTP != nil {
		errHTTP.From("[readBodyAs]").WriteResponse(w)
		return
	}
	noShowID, err := action.ctl.MarkNoShow(req.Context(), id, lifecycle.NoShowInput{
		Charged:       body.Charged,
		AmountCharged: body.AmountCharged,
		AmountPending: body.AmountPending,
		Comment:       body.Comment,
	})
	if err != nil {
		herr.FromDomain(err).From("[MarkNoShow]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, fdjson.Outcome{ID: noShowID, Message: "Marked as no-show"})
}

type CancelReservation struct {
	res *reservation.Store
}

func (action CancelReservation) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id, errHTTP := pathID(req, "reservationID")
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	if err := action.res.CancelReservation(req.Context(), id); err != nil {
		herr.FromDomain(err).From("[CancelReservation]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, fdjson.Outcome{ID: id, Message: "Reservation cancelled"})
}

type GetPayments struct {
	res *reservation.Store
}

func (action GetPayments) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id, errHTTP := pathID(req, "reservationID")
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	rows, err := action.res.Payments(req.Context(), id)
	if err != nil {
		herr.FromDomain(err).From("[Payments]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, toPayments(rows))
}

type NewPayment struct {
	res *reservation.Store
}

func (action NewPayment) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id, errHTTP := pathID(req, "reservationID")
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	body, errHTTP := readBodyAs[fdjson.NewPayment](req)
	if errHTTP != nil {
		errHTTP.From("[readBodyAs]").WriteResponse(w)
		return
	}
	paymentID, err := action.res.AddPayment(req.Context(), id, reservation.PaymentInput{
		Amount:    body.Amount,
		Type:      fodb.PaymentType(body.Type),
		Method:    body.Method,
		Reference: body.Reference,
		Note:      body.Note,
	})
	if err != nil {
		herr.FromDomain(err).From("[AddPayment]").WriteResponse(w)
		return
	}
	mustWriteJSONStatus(w, req, http.StatusCreated, fdjson.Outcome{ID: paymentID, Message: "Payment recorded"})
}
