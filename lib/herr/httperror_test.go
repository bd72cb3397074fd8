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

package herr

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()
	err := New(http.StatusOK, "ok", nil)
	assert.Equal(t, http.StatusOK, err.Code)
	assert.Equal(t, "ok", err.InternalErr.Error())
	assert.Equal(t, "ok", err.ResponseMessage)

	err = New(http.StatusOK, "ok", errors.New("some error"))
	assert.Equal(t, "some error", err.InternalErr.Error())
}

func TestError(t *testing.T) {
	t.Parallel()
	err := New(http.StatusOK, "ok", nil)
	assert.Equal(t, "HTTP 200: ResponseMessage:'ok', InternalError:'ok'", err.Error())
}

func TestSrcWrap(t *testing.T) {
	t.Parallel()
	err := outer()
	require.Error(t, err)
	assert.Equal(t, "Hey user! something went wrong", err.ResponseMessage)
	assert.Equal(t, "[outer]: [inner]: something bad", err.InternalErr.Error())
	assert.Equal(t, 500, err.Code)
	assert.ErrorIs(t, err, errInternal)
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()
	errHTTP := Unauthorized("hi user", errors.New("some error"))
	err := error(errHTTP)
	assert.Equal(t, errHTTP, AsHTTPError(err))

	err = errors.New("some error")
	errHTTP = AsHTTPError(err)
	assert.Equal(t, New(500, "Unknown server error", err), errHTTP)
}

func TestFromDomain(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{fderr.Validation("Room number cannot be empty"), http.StatusBadRequest, "Room number cannot be empty"},
		{fderr.NotFound("Reservation not found"), http.StatusNotFound, "Reservation not found"},
		{fderr.State("Not checked out"), http.StatusConflict, "Not checked out"},
		{&fderr.ConflictError{Room: "205", GuestName: "A", ReservationNo: "1"}, http.StatusConflict, "Room 205 occupied by A (Res #1)"},
		{fderr.Store("[Room]", sql.ErrConnDone), http.StatusInternalServerError, "Storage failure"},
		{errors.New("mystery"), http.StatusInternalServerError, "Unknown server error"},
	}
	for _, tc := range cases {
		errHTTP := FromDomain(fmt.Errorf("[op]: %w", tc.err))
		assert.Equal(t, tc.code, errHTTP.Code, tc.message)
		assert.Equal(t, tc.message, errHTTP.ResponseMessage)
		assert.ErrorIs(t, errHTTP, tc.err)
	}
	assert.True(t, FromDomain(fderr.Validation("x")).ExpectedError)
	assert.False(t, FromDomain(fderr.Store("[x]", sql.ErrConnDone)).ExpectedError)
}

func TestWriteResponse(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	FromDomain(&fderr.ConflictError{Room: "205", GuestName: "Grace"}).From("[assignRoom]").WriteResponse(rec)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ApplicationProblemMediaType, rec.Header().Get("Content-Type"))
	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, http.StatusConflict, p.Status)
	assert.Equal(t, "conflict", p.Kind)
	assert.Contains(t, p.Detail, "Room 205 occupied by Grace")
}

var errInternal = errors.New("something bad")

func inner() *HTTPError {
	return New(http.StatusInternalServerError, "Hey user! something went wrong", errInternal)
}

func outer() *HTTPError {
	if err := inner(); err != nil {
		return err.From("[inner]").From("[outer]")
	}
	return nil
}
