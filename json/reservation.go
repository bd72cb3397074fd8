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

package json

import "time"

type Reservations []Reservation

// Reservation dates are calendar dates, formatted as YYYY-MM-DD. Departure
// is the morning the guest leaves.
type Reservation struct {
	ID            int64     `json:"id"`
	ReservationNo string    `json:"reservation_no"`
	GuestName     string    `json:"guest_name"`
	Arrival       string    `json:"arrival"`
	Departure     string    `json:"departure"`
	Room          string    `json:"room,omitzero"`
	Status        string    `json:"status"`
	MainClient    string    `json:"main_client,omitzero"`
	MealPlan      string    `json:"meal_plan,omitzero"`
	Adults        int32     `json:"adults,omitzero"`
	Children      int32     `json:"children,omitzero"`
	Channel       string    `json:"channel,omitzero"`
	MainRemark    string    `json:"main_remark,omitzero"`
	TotalRemarks  string    `json:"total_remarks,omitzero"`
	Created       time.Time `json:"created,omitzero"`
}

type NewReservation struct {
	ReservationNo string `json:"reservation_no"`
	GuestName     string `json:"guest_name"`
	Arrival       string `json:"arrival"`
	Departure     string `json:"departure"`
	Room          string `json:"room"`
	MainClient    string `json:"main_client"`
	MealPlan      string `json:"meal_plan"`
	Adults        int32  `json:"adults"`
	Children      int32  `json:"children"`
	Channel       string `json:"channel"`
	MainRemark    string `json:"main_remark"`
	TotalRemarks  string `json:"total_remarks"`
}

type AssignRoom struct {
	Room string `json:"room"`
}

type Notes struct {
	MainRemark   string `json:"main_remark"`
	TotalRemarks string `json:"total_remarks"`
}

// Outcome reports a successful change with the message shown at the desk.
type Outcome struct {
	ID      int64  `json:"id,omitzero"`
	Room    string `json:"room,omitzero"`
	Message string `json:"message"`
}

type NoShows []NoShow

type NoShow struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservation_id,omitzero"`
	Arrival       string    `json:"arrival"`
	GuestName     string    `json:"guest_name"`
	MainClient    string    `json:"main_client,omitzero"`
	Charged       bool      `json:"charged"`
	AmountCharged float64   `json:"amount_charged"`
	AmountPending float64   `json:"amount_pending"`
	Comment       string    `json:"comment,omitzero"`
	Created       time.Time `json:"created"`
}

type MarkNoShow struct {
	Charged       bool    `json:"charged"`
	AmountCharged float64 `json:"amount_charged"`
	AmountPending float64 `json:"amount_pending"`
	Comment       string  `json:"comment"`
}

type Payments []Payment

type Payment struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservation_id"`
	GuestName     string    `json:"guest_name"`
	Amount        float64   `json:"amount"`
	Type          string    `json:"type"`
	Method        string    `json:"method,omitzero"`
	Reference     string    `json:"reference,omitzero"`
	Note          string    `json:"note,omitzero"`
	Created       time.Time `json:"created"`
}

type NewPayment struct {
	Amount    float64 `json:"amount"`
	Type      string  `json:"type"`
	Method    string  `json:"method"`
	Reference string  `json:"reference"`
	Note      string  `json:"note"`
}
