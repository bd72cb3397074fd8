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

type Rooms []Room

type Room struct {
	Number string `json:"number"`
	Status string `json:"status"`
	Twin   bool   `json:"twin,omitzero"`
}

type SetRoomStatus struct {
	Status string `json:"status"`
}

type RoomValidation struct {
	Valid   bool   `json:"valid"`
	Room    string `json:"room,omitzero"`
	Message string `json:"message,omitzero"`
}

type Availability struct {
	Available bool      `json:"available"`
	Message   string    `json:"message,omitzero"`
	Conflict  *Conflict `json:"conflict,omitzero"`
}

// Conflict names the reservation already holding a room for some of the
// requested nights.
type Conflict struct {
	Room          string `json:"room"`
	GuestName     string `json:"guest_name"`
	ReservationID int64  `json:"reservation_id"`
	ReservationNo string `json:"reservation_no"`
}
