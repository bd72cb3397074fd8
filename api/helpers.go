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
	"encoding/json"
	"errors"
	"github.com/hotelfo/frontdesk/lib/conv"
	"github.com/hotelfo/frontdesk/lib/herr"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

func readBodyAs[T any](req *http.Request) (T, *herr.HTTPError) {
	empty := *new(T)
	defer shut(req.Body)
	bodyBytes, err := io.ReadAll(req.Body)
	if err != nil {
		return empty, herr.BadRequest("Failed to read request body", err).From("[io.ReadAll]")
	}
	var t T
	err = json.Unmarshal(bodyBytes, &t)
	if err != nil {
		return empty, herr.BadRequest("Failed to unmarshal request body", err).From("[Unmarshal]")
	}
	return t, nil
}

func mustWriteJSON(w http.ResponseWriter, req *http.Request, resp any) (success bool) {
	return mustWriteJSONStatus(w, req, http.StatusOK, resp)
}

func mustWriteJSONStatus(w http.ResponseWriter, req *http.Request, code int, resp any) (success bool) {
	marshalled, err := json.Marshal(resp)
	if err != nil {
		herr.InternalServerError("Failed to marshal JSON", err).From("[Marshal]").WriteResponse(w)
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, err = w.Write(marshalled)
	if err != nil {
		slog.Error("Failed to write JSON response", "error", err, "path", req.URL.Path)
		return false
	}
	return true
}

// pathID reads a numeric id from the named path segment.
func pathID(req *http.Request, name string) (int64, *herr.HTTPError) {
	raw := req.PathValue(name)
	id, err := conv.ParseInt64(raw)
	if err != nil || id <= 0 {
		if err == nil {
			err = errors.New("id must be positive")
		}
		return 0, herr.BadRequest("Invalid "+strings.TrimSuffix(name, "ID")+" id", err).From("[ParseInt64]")
	}
	return id, nil
}

// dayParser reads the date a view or task list is for.
type dayParser struct {
	loc *time.Location
	now func() time.Time
}

func (d dayParser) today() time.Time {
	now := time.Now
	if d.now != nil {
		now = d.now
	}
	return conv.Date(now().In(d.loc))
}

// fromQuery reads ?date=YYYY-MM-DD, defaulting to today at the hotel.
func (d dayParser) fromQuery(req *http.Request) (time.Time, *herr.HTTPError) {
	return d.parse(req.URL.Query().Get("date"), "date")
}

func (d dayParser) parse(raw, field string) (time.Time, *herr.HTTPError) {
	if strings.TrimSpace(raw) == "" {
		return d.today(), nil
	}
	t, err := conv.ParseDate(raw)
	if err != nil {
		return time.Time{}, herr.BadRequest("Invalid "+field+", use YYYY-MM-DD", err).SetExpectedError()
	}
	return t, nil
}

// requiredDate parses a date that has no sensible default.
func requiredDate(raw, field string) (time.Time, *herr.HTTPError) {
	t, err := conv.ParseDate(raw)
	if err != nil {
		return time.Time{}, herr.BadRequest("Invalid "+field+", use YYYY-MM-DD", err).SetExpectedError()
	}
	return t, nil
}

func getJwtCtx(req *http.Request) (JWTContext, *herr.HTTPError) {
	jwtCtx, found := req.Context().Value(JWTContextKey).(JWTContext)
	if !found {
		return JWTContext{}, herr.InternalServerError("This endpoint has been misconfigured", nil)
	}
	return jwtCtx, nil
}

func unauthorized(err error) *herr.HTTPError {
	return herr.Unauthorized("Invalid Authorization token", err).SetExpectedError()
}

func shut(c io.Closer) {
	err := c.Close()
	if err != nil {
		slog.Error("Failed to close Closer", "error", err)
	}
}
