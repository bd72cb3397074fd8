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

const createNoShow = `-- name: CreateNoShow :execlastid
insert into NO_SHOW (
    RESERVATION_ID, ARRIVAL, GUEST_NAME, MAIN_CLIENT, CHARGED, AMOUNT_CHARGED, AMOUNT_PENDING, COMMENT, CREATED
)
values (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateNoShowParams struct {
	ReservationID sql.NullInt64
	Arrival       time.Time
	GuestName     string
	MainClient    string
	Charged       bool
	AmountCharged float64
	AmountPending float64
	Comment       string
	Created       float64
}

func (q *Queries) CreateNoShow(ctx context.Context, db DBTX, arg CreateNoShowParams) (int64, error) {
	return insertID(db.ExecContext(ctx, createNoShow,
		arg.ReservationID,
		arg.Arrival,
		arg.GuestName,
		arg.MainClient,
		arg.Charged,
		arg.AmountCharged,
		arg.AmountPending,
		arg.Comment,
		arg.Created,
	))
}

const noShows = `-- name: NoShows :many
select ID, RESERVATION_ID, ARRIVAL, GUEST_NAME, MAIN_CLIENT, CHARGED, AMOUNT_CHARGED, AMOUNT_PENDING, COMMENT, CREATED
from NO_SHOW
where ARRIVAL = ?
order by CREATED, ID
`

func (q *Queries) NoShows(ctx context.Context, db DBTX, arrival time.Time) ([]NoShow, error) {
	return queryMany(ctx, db, noShows, func(row scanner) (NoShow, error) {
		var i NoShow
		err := row.Scan(
			&i.ID,
			&i.ReservationID,
			&i.Arrival,
			&i.GuestName,
			&i.MainClient,
			&i.Charged,
			&i.AmountCharged,
			&i.AmountPending,
			&i.Comment,
			&i.Created,
		)
		return i, err
	}, arrival)
}

const addPayment = `-- name: AddPayment :execlastid
insert into PAYMENT (
    RESERVATION_ID, GUEST_NAME, AMOUNT, PAYMENT_TYPE, METHOD, REFERENCE, NOTE, CREATED
)
values (?, ?, ?, ?, ?, ?, ?, ?)
`

type AddPaymentParams struct {
	ReservationID int64
	GuestName     string
	Amount        float64
	PaymentType   PaymentType
	Method        string
	Reference     string
	Note          string
	Created       float64
}

func (q *Queries) AddPayment(ctx context.Context, db DBTX, arg AddPaymentParams) (int64, error) {
	return insertID(db.ExecContext(ctx, addPayment,
		arg.ReservationID,
		arg.GuestName,
		arg.Amount,
		arg.PaymentType,
		arg.Method,
		arg.Reference,
		arg.Note,
		arg.Created,
	))
}

const payments = `-- name: Payments :many
select ID, RESERVATION_ID, GUEST_NAME, AMOUNT, PAYMENT_TYPE, METHOD, REFERENCE, NOTE, CREATED
from PAYMENT
where RESERVATION_ID = ?
order by CREATED desc, ID desc
`

func (q *Queries) Payments(ctx context.Context, db DBTX, reservationID int64) ([]Payment, error) {
	return queryMany(ctx, db, payments, func(row scanner) (Payment, error) {
		var i Payment
		err := row.Scan(
			&i.ID,
			&i.ReservationID,
			&i.GuestName,
			&i.Amount,
			&i.PaymentType,
			&i.Method,
			&i.Reference,
			&i.Note,
			&i.Created,
		)
		return i, err
	}, reservationID)
}

const addActionLog = `-- name: AddActionLog :execlastid
insert into ACTION_LOG (CREATED, ACTOR, ACTION, RESERVATION_ID, STAY_ID, ROOM, MESSAGE)
values (?, ?, ?, ?, ?, ?, ?)
`

type AddActionLogParams struct {
	Created       float64
	Actor         string
	Action        string
	ReservationID sql.NullInt64
	StayID        sql.NullInt64
	Room          sql.NullString
	Message       string
}

func (q *Queries) AddActionLog(ctx context.Context, db DBTX, arg AddActionLogParams) (int64, error) {
	return insertID(db.ExecContext(ctx, addActionLog,
		arg.Created,
		arg.Actor,
		arg.Action,
		arg.ReservationID,
		arg.StayID,
		arg.Room,
		arg.Message,
	))
}

const actionLogs = `-- name: ActionLogs :many
select ID, CREATED, ACTOR, ACTION, RESERVATION_ID, STAY_ID, ROOM, MESSAGE
from ACTION_LOG
where CREATED >= ?
order by ID desc
limit ?
`

type ActionLogsParams struct {
	Since float64
	Limit int32
}

func (q *Queries) ActionLogs(ctx context.Context, db DBTX, arg ActionLogsParams) ([]ActionLog, error) {
	return queryMany(ctx, db, actionLogs, func(row scanner) (ActionLog, error) {
		var i ActionLog
		err := row.Scan(
			&i.ID,
			&i.Created,
			&i.Actor,
			&i.Action,
			&i.ReservationID,
			&i.StayID,
			&i.Room,
			&i.Message,
		)
		return i, err
	}, arg.Since, arg.Limit)
}
