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

type Stays []Stay

type Stay struct {
	ID            int64      `json:"id"`
	ReservationID int64      `json:"reservation_id"`
	Room          string     `json:"room"`
	Status        string     `json:"status"`
	PlannedIn     string     `json:"planned_in"`
	PlannedOut    string     `json:"planned_out"`
	ActualIn      *time.Time `json:"actual_in,omitempty"`
	ActualOut     *time.Time `json:"actual_out,omitempty"`
	Comment       string     `json:"comment,omitzero"`
	ParkingSpace  string     `json:"parking_space,omitzero"`
	ParkingPlate  string     `json:"parking_plate,omitzero"`
	ParkingNotes  string     `json:"parking_notes,omitzero"`

	Reservation *Reservation `json:"reservation,omitzero"`
}

// EditStay changes only the fields that are present. Parking fields are
// replaced together when any of them is present.
type EditStay struct {
	Comment      *string `json:"comment"`
	ParkingSpace *string `json:"parking_space"`
	ParkingPlate *string `json:"parking_plate"`
	ParkingNotes *string `json:"parking_notes"`
}

type MoveRoom struct {
	Room string `json:"room"`
}

// Dashboard is the desk's summary of one day.
type Dashboard struct {
	Date             string       `json:"date"`
	Arrivals         Reservations `json:"arrivals"`
	InHouse          Stays        `json:"in_house"`
	Departures       Stays        `json:"departures"`
	PotentialNoShows Reservations `json:"potential_no_shows"`
}
