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
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/hotelfo/frontdesk/store/fodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestMustWriteJSONErrors(t *testing.T) {
	t.Parallel()

	// error if the response can't be marshalled as JSON
	rec := httptest.NewRecorder()
	req := &http.Request{URL: &url.URL{}}
	cantBeMarshalled := complex64(1 + 1i)
	ok := mustWriteJSON(rec, req, cantBeMarshalled)
	assert.False(t, ok)
	assert.Equal(t, http.StatusInternalServerError, rec.Result().StatusCode)

	// error if the JSON can't be written to the response writer
	w := angryResponseWriter{httptest.NewRecorder()}
	ok = mustWriteJSON(w, req, "can be marshalled")
	assert.False(t, ok)
}

func TestMustWriteJSONStatus(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	req := &http.Request{URL: &url.URL{}}
	require.True(t, mustWriteJSONStatus(rec, req, http.StatusCreated, map[string]int{"id": 4}))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":4}`, rec.Body.String())
}

func TestReadBodyAsErrors(t *testing.T) {
	t.Parallel()

	// error if the request body read fails
	req := &http.Request{
		Body: angryReader{},
	}
	_, errHTTP := readBodyAs[any](req)
	require.NotNil(t, errHTTP)
	assert.Equal(t, http.StatusBadRequest, errHTTP.Code)

	// error if the request body isn't valid JSON
	req = &http.Request{
		Body: io.NopCloser(strings.NewReader("this isn't json")),
	}
	_, errHTTP = readBodyAs[any](req)
	require.NotNil(t, errHTTP)
	require.Equal(t, http.StatusBadRequest, errHTTP.Code)
}

func TestPathID(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/fo/api/stays/12", nil)
	req.SetPathValue("stayID", "12")
	id, errHTTP := pathID(req, "stayID")
	require.Nil(t, errHTTP)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"", "abc", "0", "-3", "1.5"} {
		req.SetPathValue("stayID", bad)
		_, errHTTP = pathID(req, "stayID")
		require.NotNil(t, errHTTP, bad)
		assert.Equal(t, http.StatusBadRequest, errHTTP.Code)
		assert.Equal(t, "Invalid stay id", errHTTP.ResponseMessage)
	}
}

func TestDayParser(t *testing.T) {
	t.Parallel()
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on the 1st is already the 2nd in Tokyo
	d := dayParser{loc: tokyo, now: func() time.Time {
		return time.Date(2027, 8, 1, 20, 0, 0, 0, time.UTC)
	}}

	got, errHTTP := d.fromQuery(httptest.NewRequest(http.MethodGet, "/fo/api/arrivals", nil))
	require.Nil(t, errHTTP)
	assert.Equal(t, time.Date(2027, 8, 2, 0, 0, 0, 0, time.UTC), got)

	got, errHTTP = d.fromQuery(httptest.NewRequest(http.MethodGet, "/fo/api/arrivals?date=2027-12-31", nil))
	require.Nil(t, errHTTP)
	assert.Equal(t, time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC), got)

	_, errHTTP = d.fromQuery(httptest.NewRequest(http.MethodGet, "/fo/api/arrivals?date=31/12/2027", nil))
	require.NotNil(t, errHTTP)
	assert.Equal(t, http.StatusBadRequest, errHTTP.Code)
}

func TestToConflict(t *testing.T) {
	t.Parallel()
	assert.Nil(t, toConflict(nil))
	assert.Nil(t, toConflict(fderr.Validation("nope")))

	err := &fderr.ConflictError{Room: "204", GuestName: "Ann Lee", ReservationID: 9, ReservationNo: "R-9"}
	c := toConflict(errors.Join(errors.New("outer"), err))
	require.NotNil(t, c)
	assert.Equal(t, "204", c.Room)
	assert.Equal(t, "Ann Lee", c.GuestName)
	assert.Equal(t, int64(9), c.ReservationID)
	assert.Equal(t, "R-9", c.ReservationNo)
}

func TestToTasksNeverNullNotes(t *testing.T) {
	t.Parallel()
	tasks := toTasks([]housekeeping.Task{{
		Date:     time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC),
		Room:     "101",
		Type:     fodb.TaskTypeSTAYOVER,
		Priority: housekeeping.PriorityMEDIUM,
		Status:   fodb.TaskStatusPENDING,
	}})
	require.Len(t, tasks, 1)
	assert.Equal(t, "2027-01-02", tasks[0].Date)
	assert.NotNil(t, tasks[0].Notes)
	assert.Empty(t, tasks[0].Notes)
}

// angryResponseWriter is an http.ResponseWriter that complains if
// you try to write to it.
type angryResponseWriter struct {
	*httptest.ResponseRecorder
}

func (angryResponseWriter) Write([]byte) (int, error) {
	return 0, errors.New("go away!")
}

type angryReader struct {
	io.ReadCloser
}

func (angryReader) Read([]byte) (int, error) {
	return 0, errors.New("go away!")
}

func (angryReader) Close() error {
	return nil
}
