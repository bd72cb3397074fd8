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

type Tasks []Task

type Task struct {
	Date          string   `json:"date"`
	Room          string   `json:"room"`
	TaskType      string   `json:"task_type"`
	Priority      string   `json:"priority"`
	Description   string   `json:"description"`
	Notes         []string `json:"notes"`
	ReservationID int64    `json:"reservation_id,omitzero"`
	StayID        int64    `json:"stay_id,omitzero"`
	Status        string   `json:"status"`
	StaffNotes    string   `json:"staff_notes,omitzero"`
}

type TaskStatusUpdate struct {
	Date     string `json:"date"`
	Room     string `json:"room"`
	TaskType string `json:"task_type"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

type SyncRooms struct {
	OccupiedRooms int `json:"occupied_rooms"`
}
