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

package fodb

import (
	"context"
	"database/sql"
	"time"
)

const stayColumns = `s.ID, s.RESERVATION_ID, s.ROOM, s.STATUS, s.PLANNED_IN, s.PLANNED_OUT, s.ACTUAL_IN, s.ACTUAL_OUT,
    s.COMMENT, s.PARKING_SPACE, s.PARKING_PLATE, s.PARKING_NOTES`

func stayDest(i *Stay) []any {
	return []any{
		&i.ID, &i.ReservationID, &i.Room, &i.Status, &i.PlannedIn, &i.PlannedOut, &i.ActualIn, &i.ActualOut,
		&i.Comment, &i.ParkingSpace, &i.ParkingPlate, &i.ParkingNotes,
	}
}

func scanStay(row scanner) (Stay, error) {
	var i Stay
	err := row.Scan(stayDest(&i)...)
	return i, err
}

func scanStayRow(row scanner) (StayRow, error) {
	var i StayRow
	err := row.Scan(append(stayDest(&i.Stay), reservationDest(&i.Reservation)...)...)
	return i, err
}

const createStay = `-- name: CreateStay :execlastid
insert into STAY (
    RESERVATION_ID, ROOM, STATUS, PLANNED_IN, PLANNED_OUT, ACTUAL_IN, ACTUAL_OUT
)
values (?, ?, ?, ?, ?, ?, ?)
`

type CreateStayParams struct {
	ReservationID int64
	Room          string
	Status        StayStatus
	PlannedIn     time.Time
	PlannedOut    time.Time
	ActualIn      sql.NullFloat64
	ActualOut     sql.NullFloat64
}

func (q *Queries) CreateStay(ctx context.Context, db DBTX, arg CreateStayParams) (int64, error) {
	return insertID(db.ExecContext(ctx, createStay,
		arg.ReservationID,
		arg.Room,
		arg.Status,
		arg.PlannedIn,
		arg.PlannedOut,
		arg.ActualIn,
		arg.ActualOut,
	))
}

const stay = `-- name: Stay :one
select ` + stayColumns + `
from STAY s
where s.ID = ?
`

func (q *Queries) Stay(ctx context.Context, db DBTX, id int64) (Stay, error) {
	return scanStay(db.QueryRowContext(ctx, stay, id))
}

const stayForUpdate = `-- name: StayForUpdate :one
select ` + stayColumns + `
from STAY s
where s.ID = ?
for update
`

func (q *Queries) StayForUpdate(ctx context.Context, db DBTX, id int64) (Stay, error) {
	return scanStay(db.QueryRowContext(ctx, stayForUpdate, id))
}

const latestStayForReservation = `-- name: LatestStayForReservation :one
select ` + stayColumns + `
from STAY s
where s.RESERVATION_ID = ?
order by s.ID desc
limit 1
`

func (q *Queries) LatestStayForReservation(ctx context.Context, db DBTX, reservationID int64) (Stay, error) {
	return scanStay(db.QueryRowContext(ctx, latestStayForReservation, reservationID))
}

const checkedInStaysForRoom = `-- name: CheckedInStaysForRoom :many
select ` + stayColumns + `
from STAY s
where s.ROOM = ?
    and s.STATUS = 'CHECKED_IN'
order by s.ID
`

func (q *Queries) CheckedInStaysForRoom(ctx context.Context, db DBTX, room string) ([]Stay, error) {
	return queryMany(ctx, db, checkedInStaysForRoom, scanStay, room)
}

const closeStay = `-- name: CloseStay :exec
update STAY set STATUS = 'CHECKED_OUT', ACTUAL_OUT = ?
where ID = ?
`

type CloseStayParams struct {
	ActualOut float64
	ID        int64
}

func (q *Queries) CloseStay(ctx context.Context, db DBTX, arg CloseStayParams) error {
	_, err := db.ExecContext(ctx, closeStay, arg.ActualOut, arg.ID)
	return err
}

const reopenStay = `-- name: ReopenStay :exec
update STAY set STATUS = 'CHECKED_IN', ACTUAL_OUT = null
where ID = ?
`

func (q *Queries) ReopenStay(ctx context.Context, db DBTX, id int64) error {
	_, err := db.ExecContext(ctx, reopenStay, id)
	return err
}

const deleteStay = `-- name: DeleteStay :exec
delete from STAY
where ID = ?
`

func (q *Queries) DeleteStay(ctx context.Context, db DBTX, id int64) error {
	_, err := db.ExecContext(ctx, deleteStay, id)
	return err
}

const setStayRoom = `-- name: SetStayRoom :exec
update STAY set ROOM = ?
where ID = ?
`

type SetStayRoomParams struct {
	Room string
	ID   int64
}

func (q *Queries) SetStayRoom(ctx context.Context, db DBTX, arg SetStayRoomParams) error {
	_, err := db.ExecContext(ctx, setStayRoom, arg.Room, arg.ID)
	return err
}

const setStayComment = `-- name: SetStayComment :exec
update STAY set COMMENT = ?
where ID = ?
`

type SetStayCommentParams struct {
	Comment string
	ID      int64
}

func (q *Queries) SetStayComment(ctx context.Context, db DBTX, arg SetStayCommentParams) error {
	_, err := db.ExecContext(ctx, setStayComment, arg.Comment, arg.ID)
	return err
}

const setStayParking = `-- name: SetStayParking :exec
update STAY set PARKING_SPACE = ?, PARKING_PLATE = ?, PARKING_NOTES = ?
where ID = ?
`

type SetStayParkingParams struct {
	ParkingSpace string
	ParkingPlate string
	ParkingNotes string
	ID           int64
}

func (q *Queries) SetStayParking(ctx context.Context, db DBTX, arg SetStayParkingParams) error {
	_, err := db.ExecContext(ctx, setStayParking,
		arg.ParkingSpace,
		arg.ParkingPlate,
		arg.ParkingNotes,
		arg.ID,
	)
	return err
}

const inHouse = `-- name: InHouse :many
select ` + stayColumns + `, ` + reservationColumns + `
from STAY s
join RESERVATION r on r.ID = s.RESERVATION_ID
where s.STATUS = 'CHECKED_IN'
    and s.PLANNED_IN <= ?
    and s.PLANNED_OUT > ?
order by cast(s.ROOM as unsigned), s.ID
`

// InHouse lists the checked-in stays that span the night of date.
func (q *Queries) InHouse(ctx context.Context, db DBTX, date time.Time) ([]StayRow, error) {
	return queryMany(ctx, db, inHouse, scanStayRow, date, date)
}

const departures = `-- name: Departures :many
select ` + stayColumns + `, ` + reservationColumns + `
from STAY s
join RESERVATION r on r.ID = s.RESERVATION_ID
where s.STATUS = 'CHECKED_IN'
    and s.PLANNED_OUT = ?
order by cast(s.ROOM as unsigned), s.ID
`

func (q *Queries) Departures(ctx context.Context, db DBTX, date time.Time) ([]StayRow, error) {
	return queryMany(ctx, db, departures, scanStayRow, date)
}

const checkedOut = `-- name: CheckedOut :many
select ` + stayColumns + `, ` + reservationColumns + `
from STAY s
join RESERVATION r on r.ID = s.RESERVATION_ID
where s.STATUS = 'CHECKED_OUT'
    and s.ACTUAL_OUT >= ?
    and s.ACTUAL_OUT < ?
order by cast(s.ROOM as unsigned), s.ID
`

type CheckedOutParams struct {
	From float64
	To   float64
}

// CheckedOut lists stays whose actual checkout time falls in [From, To).
func (q *Queries) CheckedOut(ctx context.Context, db DBTX, arg CheckedOutParams) ([]StayRow, error) {
	return queryMany(ctx, db, checkedOut, scanStayRow, arg.From, arg.To)
}
