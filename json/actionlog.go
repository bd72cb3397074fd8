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

type ActionLogs []ActionLog

type ActionLog struct {
	ID            int64     `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Actor         string    `json:"actor"`
	Action        string    `json:"action"`
	ReservationID int64     `json:"reservation_id,omitzero"`
	StayID        int64     `json:"stay_id,omitzero"`
	Room          string    `json:"room,omitzero"`
	Message       string    `json:"message"`
}
