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
	"github.com/hotelfo/frontdesk/housekeeping"
	fdjson "github.com/hotelfo/frontdesk/json"
	"github.com/hotelfo/frontdesk/lib/herr"
	"net/http"
)

type GetTasks struct {
	days dayParser
	hsk  *housekeeping.Generator
}

func (action GetTasks) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	date, errHTTP := action.days.fromQuery(req)
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	tasks, err := action.hsk.GenerateTasks(req.Context(), date)
	if err != nil {
		herr.FromDomain(err).From("[GenerateTasks]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, toTasks(tasks))
}

type UpdateTask struct {
	days dayParser
	hsk  *housekeeping.Generator
}

func (action UpdateTask) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if errHTTP := action.updateTask(req); errHTTP != nil {
		errHTTP.From("[updateTask]").WriteResponse(w)
		return
	}
	herr.WriteNoContentResponse(w)
}

func (action UpdateTask) updateTask(req *http.Request) *herr.HTTPError {
	body, errHTTP := readBodyAs[fdjson.TaskStatusUpdate](req)
	if errHTTP != nil {
		return errHTTP.From("[readBodyAs]")
	}
	date, errHTTP := action.days.parse(body.Date, "date")
	if errHTTP != nil {
		return errHTTP
	}
	taskType, err := housekeeping.ParseTaskType(body.TaskType)
	if err != nil {
		return herr.FromDomain(err).From("[ParseTaskType]")
	}
	status, err := housekeeping.ParseTaskStatus(body.Status)
	if err != nil {
		return herr.FromDomain(err).From("[ParseTaskStatus]")
	}
	err = action.hsk.UpdateTaskStatus(req.Context(), date, body.Room, taskType, status, body.Notes)
	if err != nil {
		return herr.FromDomain(err).From("[UpdateTaskStatus]")
	}
	return nil
}
