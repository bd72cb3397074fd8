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
	"errors"
	"github.com/hotelfo/frontdesk/housekeeping"
	fdjson "github.com/hotelfo/frontdesk/json"
	"github.com/hotelfo/frontdesk/lib/conv"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/hotelfo/frontdesk/store/fodb"
)

func toRoom(r fodb.Room) fdjson.Room {
	return fdjson.Room{
		Number: r.Number,
		Status: string(r.Status),
		Twin:   r.Twin,
	}
}

func toReservation(r fodb.Reservation) fdjson.Reservation {
	return fdjson.Reservation{
		ID:            r.ID,
		ReservationNo: r.ReservationNo,
		GuestName:     r.GuestName,
		Arrival:       conv.FormatDate(r.Arrival),
		Departure:     conv.FormatDate(r.Departure),
		Room:          r.Room.String,
		Status:        string(r.Status),
		MainClient:    r.MainClient,
		MealPlan:      r.MealPlan,
		Adults:        r.Adults,
		Children:      r.Children,
		Channel:       r.Channel,
		MainRemark:    r.MainRemark,
		TotalRemarks:  r.TotalRemarks,
		Created:       conv.FloatToTime(r.Created),
	}
}

func toReservations(rows []fodb.Reservation) fdjson.Reservations {
	out := make(fdjson.Reservations, 0, len(rows))
	for _, r := range rows {
		out = append(out, toReservation(r))
	}
	return out
}

func toStay(s fodb.Stay) fdjson.Stay {
	return fdjson.Stay{
		ID:            s.ID,
		ReservationID: s.ReservationID,
		Room:          s.Room,
		Status:        string(s.Status),
		PlannedIn:     conv.FormatDate(s.PlannedIn),
		PlannedOut:    conv.FormatDate(s.PlannedOut),
		ActualIn:      conv.NullFloatToTimePtr(s.ActualIn),
		ActualOut:     conv.NullFloatToTimePtr(s.ActualOut),
		Comment:       s.Comment,
		ParkingSpace:  s.ParkingSpace,
		ParkingPlate:  s.ParkingPlate,
		ParkingNotes:  s.ParkingNotes,
	}
}

func toStayRows(rows []fodb.StayRow) fdjson.Stays {
	out := make(fdjson.Stays, 0, len(rows))
	for _, row := range rows {
		s := toStay(row.Stay)
		res := toReservation(row.Reservation)
		s.Reservation = &res
		out = append(out, s)
	}
	return out
}

func toNoShows(rows []fodb.NoShow) fdjson.NoShows {
	out := make(fdjson.NoShows, 0, len(rows))
	for _, n := range rows {
		out = append(out, fdjson.NoShow{
			ID:            n.ID,
			ReservationID: n.ReservationID.Int64,
			Arrival:       conv.FormatDate(n.Arrival),
			GuestName:     n.GuestName,
			MainClient:    n.MainClient,
			Charged:       n.Charged,
			AmountCharged: n.AmountCharged,
			AmountPending: n.AmountPending,
			Comment:       n.Comment,
			Created:       conv.FloatToTime(n.Created),
		})
	}
	return out
}

func toPayments(rows []fodb.Payment) fdjson.Payments {
	out := make(fdjson.Payments, 0, len(rows))
	for _, p := range rows {
		out = append(out, fdjson.Payment{
			ID:            p.ID,
			ReservationID: p.ReservationID,
			GuestName:     p.GuestName,
			Amount:        p.Amount,
			Type:          string(p.PaymentType),
			Method:        p.Method,
			Reference:     p.Reference,
			Note:          p.Note,
			Created:       conv.FloatToTime(p.Created),
		})
	}
	return out
}

func toTasks(tasks []housekeeping.Task) fdjson.Tasks {
	out := make(fdjson.Tasks, 0, len(tasks))
	for _, t := range tasks {
		notes := t.Notes
		if notes == nil {
			notes = []string{}
		}
		out = append(out, fdjson.Task{
			Date:          conv.FormatDate(t.Date),
			Room:          t.Room,
			TaskType:      string(t.Type),
			Priority:      string(t.Priority),
			Description:   t.Description,
			Notes:         notes,
			ReservationID: t.ReservationID,
			StayID:        t.StayID,
			Status:        string(t.Status),
			StaffNotes:    t.StaffNotes,
		})
	}
	return out
}

func toActionLogs(rows []fodb.ActionLog) fdjson.ActionLogs {
	out := make(fdjson.ActionLogs, 0, len(rows))
	for _, a := range rows {
		out = append(out, fdjson.ActionLog{
			ID:            a.ID,
			CreatedAt:     conv.FloatToTime(a.Created),
			Actor:         a.Actor,
			Action:        a.Action,
			ReservationID: a.ReservationID.Int64,
			StayID:        a.StayID.Int64,
			Room:          a.Room.String,
			Message:       a.Message,
		})
	}
	return out
}

// toConflict returns nil unless err is a room conflict.
func toConflict(err error) *fdjson.Conflict {
	var c *fderr.ConflictError
	if !errors.As(err, &c) {
		return nil
	}
	return &fdjson.Conflict{
		Room:          c.Room,
		GuestName:     c.GuestName,
		ReservationID: c.ReservationID,
		ReservationNo: c.ReservationNo,
	}
}
