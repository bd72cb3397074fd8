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
	"github.com/hotelfo/frontdesk/lib/conv"
	"github.com/hotelfo/frontdesk/lib/herr"
	"github.com/hotelfo/frontdesk/lifecycle"
	"github.com/hotelfo/frontdesk/store"
	"github.com/hotelfo/frontdesk/store/fodb"
	"net/http"
)

const (
	defaultActionLogLimit = 200
	maxActionLogLimit     = 5000
)

// SyncRooms rebuilds every room's occupancy from the checked-in stays.
type SyncRooms struct {
	ctl *lifecycle.Controller
}

func (action SyncRooms) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	n, err := action.ctl.SyncRoomStatusFromStays(req.Context())
	if err != nil {
		herr.FromDomain(err).From("[SyncRoomStatusFromStays]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, fdjson.SyncRooms{OccupiedRooms: n})
}

// GetActionLogs lists the newest audit entries, optionally only those on or
// after ?since=YYYY-MM-DD.
type GetActionLogs struct {
	dbq *store.DBQ
}

func (action GetActionLogs) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getActionLogs(req)
	if errHTTP != nil {
		errHTTP.From("[getActionLogs]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetActionLogs) getActionLogs(req *http.Request) (fdjson.ActionLogs, *herr.HTTPError) {
	q := req.URL.Query()
	params := fodb.ActionLogsParams{Limit: defaultActionLogLimit}
	if raw := q.Get("since"); raw != "" {
		since, errHTTP := requiredDate(raw, "since")
		if errHTTP != nil {
			return nil, errHTTP
		}
		params.Since = conv.TimeToFloat(since)
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := conv.ParseInt32(raw)
		if err != nil || limit <= 0 {
			return nil, herr.BadRequest("Invalid limit", err).SetExpectedError()
		}
		params.Limit = min(limit, maxActionLogLimit)
	}
	rows, err := action.dbq.ActionLogs(req.Context(), action.dbq, params)
	if err != nil {
		return nil, herr.InternalServerError("Failed to fetch action logs", err).From("[ActionLogs]")
	}
	return toActionLogs(rows), nil
}

type GetBuildInfo struct{}

func (action GetBuildInfo) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	http.Error(w, buildInfo().String(), http.StatusOK)
}
