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
)

const schemaVersion = `-- name: SchemaVersion :one
select VERSION from SCHEMA_INFO
`

func (q *Queries) SchemaVersion(ctx context.Context, db DBTX) (int16, error) {
	row := db.QueryRowContext(ctx, schemaVersion)
	var version int16
	err := row.Scan(&version)
	return version, err
}

const seedRoom = `-- name: SeedRoom :exec
insert ignore into ROOM (NUMBER, STATUS, TWIN)
values (?, 'VACANT', ?)
`

type SeedRoomParams struct {
	Number string
	Twin   bool
}

func (q *Queries) SeedRoom(ctx context.Context, db DBTX, arg SeedRoomParams) error {
	_, err := db.ExecContext(ctx, seedRoom, arg.Number, arg.Twin)
	return err
}

const ensureRoom = `-- name: EnsureRoom :exec
insert ignore into ROOM (NUMBER, STATUS)
values (?, 'VACANT')
`

func (q *Queries) EnsureRoom(ctx context.Context, db DBTX, number string) error {
	_, err := db.ExecContext(ctx, ensureRoom, number)
	return err
}

const room = `-- name: Room :one
select NUMBER, STATUS, TWIN
from ROOM
where NUMBER = ?
`

func (q *Queries) Room(ctx context.Context, db DBTX, number string) (Room, error) {
	return scanRoom(db.QueryRowContext(ctx, room, number))
}

const roomForUpdate = `-- name: RoomForUpdate :one
select NUMBER, STATUS, TWIN
from ROOM
where NUMBER = ?
for update
`

// RoomForUpdate reads a room and locks its row until the transaction ends.
func (q *Queries) RoomForUpdate(ctx context.Context, db DBTX, number string) (Room, error) {
	return scanRoom(db.QueryRowContext(ctx, roomForUpdate, number))
}

const rooms = `-- name: Rooms :many
select NUMBER, STATUS, TWIN
from ROOM
order by cast(NUMBER as unsigned), NUMBER
`

func (q *Queries) Rooms(ctx context.Context, db DBTX) ([]Room, error) {
	return queryMany(ctx, db, rooms, scanRoom)
}

func scanRoom(row scanner) (Room, error) {
	var i Room
	err := row.Scan(&i.Number, &i.Status, &i.Twin)
	return i, err
}

const setRoomStatus = `-- name: SetRoomStatus :exec
update ROOM set STATUS = ?
where NUMBER = ?
`

type SetRoomStatusParams struct {
	Status RoomStatus
	Number string
}

func (q *Queries) SetRoomStatus(ctx context.Context, db DBTX, arg SetRoomStatusParams) error {
	_, err := db.ExecContext(ctx, setRoomStatus, arg.Status, arg.Number)
	return err
}

const setAllRoomsVacant = `-- name: SetAllRoomsVacant :exec
update ROOM set STATUS = 'VACANT'
`

func (q *Queries) SetAllRoomsVacant(ctx context.Context, db DBTX) error {
	_, err := db.ExecContext(ctx, setAllRoomsVacant)
	return err
}

const checkedInRooms = `-- name: CheckedInRooms :many
select distinct ROOM
from STAY
where STATUS = 'CHECKED_IN'
`

func (q *Queries) CheckedInRooms(ctx context.Context, db DBTX) ([]string, error) {
	return queryMany(ctx, db, checkedInRooms, func(row scanner) (string, error) {
		var number string
		err := row.Scan(&number)
		return number, err
	})
}
