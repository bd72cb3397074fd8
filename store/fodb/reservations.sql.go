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

const reservationColumns = `r.ID, r.RESERVATION_NO, r.GUEST_NAME, r.ARRIVAL, r.DEPARTURE, r.ROOM, r.STATUS,
    r.MAIN_CLIENT, r.MEAL_PLAN, r.ADULTS, r.CHILDREN, r.CHANNEL, r.MAIN_REMARK, r.TOTAL_REMARKS, r.CREATED`

func reservationDest(i *Reservation) []any {
	return []any{
		&i.ID, &i.ReservationNo, &i.GuestName, &i.Arrival, &i.Departure, &i.Room, &i.Status,
		&i.MainClient, &i.MealPlan, &i.Adults, &i.Children, &i.Channel, &i.MainRemark, &i.TotalRemarks, &i.Created,
	}
}

func scanReservation(row scanner) (Reservation, error) {
	var i Reservation
	err := row.Scan(reservationDest(&i)...)
	return i, err
}

const createReservation = `-- name: CreateReservation :execlastid
insert into RESERVATION (
    RESERVATION_NO, GUEST_NAME, ARRIVAL, DEPARTURE, ROOM, STATUS,
    MAIN_CLIENT, MEAL_PLAN, ADULTS, CHILDREN, CHANNEL, MAIN_REMARK, TOTAL_REMARKS, CREATED
)
values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateReservationParams struct {
	ReservationNo string
	GuestName     string
	Arrival       time.Time
	Departure     time.Time
	Room          sql.NullString
	Status        ReservationStatus
	MainClient    string
	MealPlan      string
	Adults        int32
	Children      int32
	Channel       string
	MainRemark    string
	TotalRemarks  string
	Created       float64
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (int64, error) {
	return insertID(db.ExecContext(ctx, createReservation,
		arg.ReservationNo,
		arg.GuestName,
		arg.Arrival,
		arg.Departure,
		arg.Room,
		arg.Status,
		arg.MainClient,
		arg.MealPlan,
		arg.Adults,
		arg.Children,
		arg.Channel,
		arg.MainRemark,
		arg.TotalRemarks,
		arg.Created,
	))
}

const reservation = `-- name: Reservation :one
select ` + reservationColumns + `
from RESERVATION r
where r.ID = ?
`

func (q *Queries) Reservation(ctx context.Context, db DBTX, id int64) (Reservation, error) {
	return scanReservation(db.QueryRowContext(ctx, reservation, id))
}

const reservationForUpdate = `-- name: ReservationForUpdate :one
select ` + reservationColumns + `
from RESERVATION r
where r.ID = ?
for update
`

func (q *Queries) ReservationForUpdate(ctx context.Context, db DBTX, id int64) (Reservation, error) {
	return scanReservation(db.QueryRowContext(ctx, reservationForUpdate, id))
}

const reservationByNumber = `-- name: ReservationByNumber :one
select ` + reservationColumns + `
from RESERVATION r
where r.RESERVATION_NO = ?
order by r.ID
limit 1
`

func (q *Queries) ReservationByNumber(ctx context.Context, db DBTX, reservationNo string) (Reservation, error) {
	return scanReservation(db.QueryRowContext(ctx, reservationByNumber, reservationNo))
}

const searchReservations = `-- name: SearchReservations :many
select ` + reservationColumns + `
from RESERVATION r
where r.GUEST_NAME like ?
    or r.ROOM like ?
    or r.RESERVATION_NO like ?
    or r.MAIN_CLIENT like ?
    or r.CHANNEL like ?
order by r.ARRIVAL desc, r.ID desc
limit 500
`

// SearchReservations matches a LIKE pattern against the guest, room, number,
// client and channel columns.
func (q *Queries) SearchReservations(ctx context.Context, db DBTX, pattern string) ([]Reservation, error) {
	return queryMany(ctx, db, searchReservations, scanReservation,
		pattern, pattern, pattern, pattern, pattern,
	)
}

const reservationsByRoom = `-- name: ReservationsByRoom :many
select ` + reservationColumns + `
from RESERVATION r
where r.ROOM = ?
order by r.ARRIVAL desc
limit 500
`

func (q *Queries) ReservationsByRoom(ctx context.Context, db DBTX, room string) ([]Reservation, error) {
	return queryMany(ctx, db, reservationsByRoom, scanReservation, room)
}

const overlappingReservations = `-- name: OverlappingReservations :many
select ` + reservationColumns + `
from RESERVATION r
where r.ROOM = ?
    and r.ARRIVAL < ?
    and r.DEPARTURE > ?
    and r.STATUS not in ('CANCELLED', 'NO_SHOW')
    and r.ID != ?
order by r.ARRIVAL, r.ID
`

type OverlappingReservationsParams struct {
	Room      string
	Departure time.Time
	Arrival   time.Time
	// ExcludeID is ignored when zero.
	ExcludeID int64
}

func (q *Queries) OverlappingReservations(ctx context.Context, db DBTX, arg OverlappingReservationsParams) ([]Reservation, error) {
	return queryMany(ctx, db, overlappingReservations, scanReservation,
		arg.Room,
		arg.Departure,
		arg.Arrival,
		arg.ExcludeID,
	)
}

const setReservationRoom = `-- name: SetReservationRoom :exec
update RESERVATION set ROOM = ?
where ID = ?
`

type SetReservationRoomParams struct {
	Room sql.NullString
	ID   int64
}

func (q *Queries) SetReservationRoom(ctx context.Context, db DBTX, arg SetReservationRoomParams) error {
	_, err := db.ExecContext(ctx, setReservationRoom, arg.Room, arg.ID)
	return err
}

const setReservationStatus = `-- name: SetReservationStatus :exec
update RESERVATION set STATUS = ?
where ID = ?
`

type SetReservationStatusParams struct {
	Status ReservationStatus
	ID     int64
}

func (q *Queries) SetReservationStatus(ctx context.Context, db DBTX, arg SetReservationStatusParams) error {
	_, err := db.ExecContext(ctx, setReservationStatus, arg.Status, arg.ID)
	return err
}

const setReservationNotes = `-- name: SetReservationNotes :exec
update RESERVATION set MAIN_REMARK = ?, TOTAL_REMARKS = ?
where ID = ?
`

type SetReservationNotesParams struct {
	MainRemark   string
	TotalRemarks string
	ID           int64
}

func (q *Queries) SetReservationNotes(ctx context.Context, db DBTX, arg SetReservationNotesParams) error {
	_, err := db.ExecContext(ctx, setReservationNotes, arg.MainRemark, arg.TotalRemarks, arg.ID)
	return err
}

const countReservations = `-- name: CountReservations :one
select count(*) from RESERVATION
`

func (q *Queries) CountReservations(ctx context.Context, db DBTX) (int64, error) {
	row := db.QueryRowContext(ctx, countReservations)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const arrivals = `-- name: Arrivals :many
select ` + reservationColumns + `
from RESERVATION r
where r.ARRIVAL = ?
    and r.STATUS not in ('CHECKED_IN', 'CHECKED_OUT', 'NO_SHOW', 'CANCELLED')
    and not exists (
        select 1 from STAY s
        where s.RESERVATION_ID = r.ID
            and s.STATUS in ('CHECKED_IN', 'CHECKED_OUT')
    )
order by coalesce(r.ROOM, ''), r.GUEST_NAME
`

// Arrivals lists the reservations still expected to arrive on a date.
func (q *Queries) Arrivals(ctx context.Context, db DBTX, date time.Time) ([]Reservation, error) {
	return queryMany(ctx, db, arrivals, scanReservation, date)
}

const potentialNoShows = `-- name: PotentialNoShows :many
select ` + reservationColumns + `
from RESERVATION r
where r.ARRIVAL = ?
    and r.STATUS = 'CONFIRMED'
    and not exists (
        select 1 from STAY s
        where s.RESERVATION_ID = r.ID
            and s.STATUS = 'CHECKED_IN'
    )
order by r.GUEST_NAME
`

func (q *Queries) PotentialNoShows(ctx context.Context, db DBTX, date time.Time) ([]Reservation, error) {
	return queryMany(ctx, db, potentialNoShows, scanReservation, date)
}

const guestsForDate = `-- name: GuestsForDate :many
select ` + reservationColumns + `
from RESERVATION r
where r.ARRIVAL <= ?
    and r.DEPARTURE > ?
    and r.STATUS not in ('NO_SHOW', 'CANCELLED')
order by r.GUEST_NAME
`

// GuestsForDate lists every active reservation that spans the night of date.
func (q *Queries) GuestsForDate(ctx context.Context, db DBTX, date time.Time) ([]Reservation, error) {
	return queryMany(ctx, db, guestsForDate, scanReservation, date, date)
}
