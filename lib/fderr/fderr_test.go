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

package fderr_test

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestKindOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, fderr.KindValidation, fderr.KindOf(fderr.Validation("Room number cannot be empty")))
	assert.Equal(t, fderr.KindNotFound, fderr.KindOf(fderr.NotFound("Reservation not found")))
	assert.Equal(t, fderr.KindState, fderr.KindOf(fderr.State("Not checked out")))
	assert.Equal(t, fderr.KindStore, fderr.KindOf(fderr.Store("[Room]", sql.ErrConnDone)))
	assert.Equal(t, fderr.KindConflict, fderr.KindOf(&fderr.ConflictError{Room: "205"}))
	assert.Equal(t, fderr.KindUnknown, fderr.KindOf(errors.New("boom")))
	assert.Equal(t, fderr.KindUnknown, fderr.KindOf(nil))

	wrapped := fmt.Errorf("[AssignRoom]: %w", &fderr.ConflictError{Room: "205"})
	assert.True(t, fderr.IsConflict(wrapped))
}

func TestStoreKeepsCause(t *testing.T) {
	t.Parallel()
	err := fderr.Store("[CreateStay]", sql.ErrConnDone)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), "[CreateStay]")
	assert.Equal(t, "Storage failure", fderr.Message(err))
}

func TestConflictMessage(t *testing.T) {
	t.Parallel()
	err := &fderr.ConflictError{Room: "205", GuestName: "Ada Lovelace", ReservationID: 7, ReservationNo: "R-1001"}
	assert.Equal(t, "Room 205 occupied by Ada Lovelace (Res #R-1001)", err.Error())

	err.ReservationNo = ""
	assert.Equal(t, "Room 205 occupied by Ada Lovelace (Res #7)", fderr.Message(fmt.Errorf("[x]: %w", err)))
}

func TestMessage_unknown(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Unexpected failure", fderr.Message(errors.New("internal detail")))
	assert.Equal(t, "Reservation not found", fderr.Message(fderr.NotFound("Reservation not found")))
}
