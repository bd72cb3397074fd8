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
	"time"
)

const checkoutTasks = `-- name: CheckoutTasks :many
select ` + stayColumns + `, ` + reservationColumns + `
from STAY s
join RESERVATION r on r.ID = s.RESERVATION_ID
where s.PLANNED_OUT = ?
    and s.ROOM != ''
order by
    case when s.STATUS = 'CHECKED_OUT' then 0 else 1 end,
    cast(s.ROOM as unsigned),
    s.ID
`

// CheckoutTasks lists every stay planned to leave on date, already
// checked-out stays first.
func (q *Queries) CheckoutTasks(ctx context.Context, db DBTX, date time.Time) ([]StayRow, error) {
	return queryMany(ctx, db, checkoutTasks, scanStayRow, date)
}

const stayoverTasks = `-- name: StayoverTasks :many
select ` + stayColumns + `, ` + reservationColumns + `
from STAY s
join RESERVATION r on r.ID = s.RESERVATION_ID
where s.STATUS = 'CHECKED_IN'
    and s.PLANNED_IN >= ? and s.PLANNED_IN < ?
    and s.PLANNED_OUT >= ? and s.PLANNED_OUT < ?
order by cast(s.ROOM as unsigned), s.ID
`

type StayoverTasksParams struct {
	MonthStart time.Time
	NextMonth  time.Time
}

// StayoverTasks lists checked-in stays that both start and end inside the
// month [MonthStart, NextMonth).
func (q *Queries) StayoverTasks(ctx context.Context, db DBTX, arg StayoverTasksParams) ([]StayRow, error) {
	return queryMany(ctx, db, stayoverTasks, scanStayRow,
		arg.MonthStart, arg.NextMonth,
		arg.MonthStart, arg.NextMonth,
	)
}

const arrivalTasks = `-- name: ArrivalTasks :many
select ` + reservationColumns + `
from RESERVATION r
where r.ARRIVAL = ?
    and r.ROOM is not null
    and r.ROOM != ''
    and r.STATUS not in ('NO_SHOW', 'CANCELLED')
order by cast(r.ROOM as unsigned), r.ID
`

func (q *Queries) ArrivalTasks(ctx context.Context, db DBTX, date time.Time) ([]Reservation, error) {
	return queryMany(ctx, db, arrivalTasks, scanReservation, date)
}

const hskTaskStatuses = `-- name: HskTaskStatuses :many
select TASK_DATE, ROOM, TASK_TYPE, STATUS, NOTES, UPDATED
from HSK_TASK_STATUS
where TASK_DATE = ?
`

func (q *Queries) HskTaskStatuses(ctx context.Context, db DBTX, date time.Time) ([]HskTaskStatus, error) {
	return queryMany(ctx, db, hskTaskStatuses, func(row scanner) (HskTaskStatus, error) {
		var i HskTaskStatus
		err := row.Scan(&i.TaskDate, &i.Room, &i.TaskType, &i.Status, &i.Notes, &i.Updated)
		return i, err
	}, date)
}

const upsertHskTaskStatus = `-- name: UpsertHskTaskStatus :exec
insert into HSK_TASK_STATUS (TASK_DATE, ROOM, TASK_TYPE, STATUS, NOTES, UPDATED)
values (?, ?, ?, ?, ?, ?)
on duplicate key update
    STATUS = values(STATUS),
    NOTES = values(NOTES),
    UPDATED = values(UPDATED)
`

type UpsertHskTaskStatusParams struct {
	TaskDate time.Time
	Room     string
	TaskType TaskType
	Status   TaskStatus
	Notes    string
	Updated  float64
}

func (q *Queries) UpsertHskTaskStatus(ctx context.Context, db DBTX, arg UpsertHskTaskStatusParams) error {
	_, err := db.ExecContext(ctx, upsertHskTaskStatus,
		arg.TaskDate,
		arg.Room,
		arg.TaskType,
		arg.Status,
		arg.Notes,
		arg.Updated,
	)
	return err
}
