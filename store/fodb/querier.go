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

type Querier interface {
	ActionLogs(ctx context.Context, db DBTX, arg ActionLogsParams) ([]ActionLog, error)
	AddActionLog(ctx context.Context, db DBTX, arg AddActionLogParams) (int64, error)
	AddPayment(ctx context.Context, db DBTX, arg AddPaymentParams) (int64, error)
	ArrivalTasks(ctx context.Context, db DBTX, date time.Time) ([]Reservation, error)
	Arrivals(ctx context.Context, db DBTX, date time.Time) ([]Reservation, error)
	CheckedInRooms(ctx context.Context, db DBTX) ([]string, error)
	CheckedInStaysForRoom(ctx context.Context, db DBTX, room string) ([]Stay, error)
	CheckedOut(ctx context.Context, db DBTX, arg CheckedOutParams) ([]StayRow, error)
	CheckoutTasks(ctx context.Context, db DBTX, date time.Time) ([]StayRow, error)
	CloseStay(ctx context.Context, db DBTX, arg CloseStayParams) error
	CountReservations(ctx context.Context, db DBTX) (int64, error)
	CreateNoShow(ctx context.Context, db DBTX, arg CreateNoShowParams) (int64, error)
	CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (int64, error)
	CreateStay(ctx context.Context, db DBTX, arg CreateStayParams) (int64, error)
	DeleteStay(ctx context.Context, db DBTX, id int64) error
	Departures(ctx context.Context, db DBTX, date time.Time) ([]StayRow, error)
	EnsureRoom(ctx context.Context, db DBTX, number string) error
	GuestsForDate(ctx context.Context, db DBTX, date time.Time) ([]Reservation, error)
	HskTaskStatuses(ctx context.Context, db DBTX, date time.Time) ([]HskTaskStatus, error)
	InHouse(ctx context.Context, db DBTX, date time.Time) ([]StayRow, error)
	LatestStayForReservation(ctx context.Context, db DBTX, reservationID int64) (Stay, error)
	NoShows(ctx context.Context, db DBTX, arrival time.Time) ([]NoShow, error)
	OverlappingReservations(ctx context.Context, db DBTX, arg OverlappingReservationsParams) ([]Reservation, error)
	Payments(ctx context.Context, db DBTX, reservationID int64) ([]Payment, error)
	PotentialNoShows(ctx context.Context, db DBTX, date time.Time) ([]Reservation, error)
	ReopenStay(ctx context.Context, db DBTX, id int64) error
	Reservation(ctx context.Context, db DBTX, id int64) (Reservation, error)
	ReservationByNumber(ctx context.Context, db DBTX, reservationNo string) (Reservation, error)
	ReservationForUpdate(ctx context.Context, db DBTX, id int64) (Reservation, error)
	ReservationsByRoom(ctx context.Context, db DBTX, room string) ([]Reservation, error)
	Room(ctx context.Context, db DBTX, number string) (Room, error)
	RoomForUpdate(ctx context.Context, db DBTX, number string) (Room, error)
	Rooms(ctx context.Context, db DBTX) ([]Room, error)
	SchemaVersion(ctx context.Context, db DBTX) (int16, error)
	SearchReservations(ctx context.Context, db DBTX, pattern string) ([]Reservation, error)
	SeedRoom(ctx context.Context, db DBTX, arg SeedRoomParams) error
	SetAllRoomsVacant(ctx context.Context, db DBTX) error
	SetReservationNotes(ctx context.Context, db DBTX, arg SetReservationNotesParams) error
	SetReservationRoom(ctx context.Context, db DBTX, arg SetReservationRoomParams) error
	SetReservationStatus(ctx context.Context, db DBTX, arg SetReservationStatusParams) error
	SetRoomStatus(ctx context.Context, db DBTX, arg SetRoomStatusParams) error
	SetStayComment(ctx context.Context, db DBTX, arg SetStayCommentParams) error
	SetStayParking(ctx context.Context, db DBTX, arg SetStayParkingParams) error
	SetStayRoom(ctx context.Context, db DBTX, arg SetStayRoomParams) error
	Stay(ctx context.Context, db DBTX, id int64) (Stay, error)
	StayForUpdate(ctx context.Context, db DBTX, id int64) (Stay, error)
	StayoverTasks(ctx context.Context, db DBTX, arg StayoverTasksParams) ([]StayRow, error)
	UpsertHskTaskStatus(ctx context.Context, db DBTX, arg UpsertHskTaskStatusParams) error
}

var _ Querier = (*Queries)(nil)
