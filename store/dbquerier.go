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

package store

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/hotelfo/frontdesk/store/fodb"
	"log/slog"
	"time"
)

// DBQ combines the SQL database and the Querier for the front office
// datastore. Each query is logged at DEBUG with its duration.
type DBQ struct {
	*sql.DB
	q fodb.Querier
}

func NewDBQ(sqlDB *sql.DB, querier fodb.Querier) *DBQ {
	return &DBQ{
		DB: sqlDB,
		q:  querier,
	}
}

func logQuery(queryName string, start time.Time, err error) {
	durationMS := float64(time.Since(start).Microseconds()) / 1000.0
	slog.Debug("Ran FO SQL: "+queryName,
		"duration", fmt.Sprintf("%.3fms", durationMS),
		"err", err,
	)
}

// Force DBQ to implement the fodb.Querier interface.
var _ fodb.Querier = (*DBQ)(nil)

func (l DBQ) ActionLogs(ctx context.Context, db fodb.DBTX, arg fodb.ActionLogsParams) ([]fodb.ActionLog, error) {
	start := time.Now()
	result, err := l.q.ActionLogs(ctx, db, arg)
	logQuery("ActionLogs", start, err)
	return result, err
}

func (l DBQ) AddActionLog(ctx context.Context, db fodb.DBTX, arg fodb.AddActionLogParams) (int64, error) {
	start := time.Now()
	result, err := l.q.AddActionLog(ctx, db, arg)
	logQuery("AddActionLog", start, err)
	return result, err
}

func (l DBQ) AddPayment(ctx context.Context, db fodb.DBTX, arg fodb.AddPaymentParams) (int64, error) {
	start := time.Now()
	result, err := l.q.AddPayment(ctx, db, arg)
	logQuery("AddPayment", start, err)
	return result, err
}

func (l DBQ) ArrivalTasks(ctx context.Context, db fodb.DBTX, date time.Time) ([]fodb.Reservation, error) {
	start := time.Now()
	result, err := l.q.ArrivalTasks(ctx, db, date)
	logQuery("ArrivalTasks", start, err)
	return result, err
}

func (l DBQ) Arrivals(ctx context.Context, db fodb.DBTX, date time.Time) ([]fodb.Reservation, error) {
	start := time.Now()
	result, err := l.q.Arrivals(ctx, db, date)
	logQuery("Arrivals", start, err)
	return result, err
}

func (l DBQ) CheckedInRooms(ctx context.Context, db fodb.DBTX) ([]string, error) {
	start := time.Now()
	result, err := l.q.CheckedInRooms(ctx, db)
	logQuery("CheckedInRooms", start, err)
	return result, err
}

func (l DBQ) CheckedInStaysForRoom(ctx context.Context, db fodb.DBTX, room string) ([]fodb.Stay, error) {
	start := time.Now()
	result, err := l.q.CheckedInStaysForRoom(ctx, db, room)
	logQuery("CheckedInStaysForRoom", start, err)
	return result, err
}

func (l DBQ) CheckedOut(ctx context.Context, db fodb.DBTX, arg fodb.CheckedOutParams) ([]fodb.StayRow, error) {
	start := time.Now()
	result, err := l.q.CheckedOut(ctx, db, arg)
	logQuery("CheckedOut", start, err)
	return result, err
}

func (l DBQ) CheckoutTasks(ctx context.Context, db fodb.DBTX, date time.Time) ([]fodb.StayRow, error) {
	start := time.Now()
	result, err := l.q.CheckoutTasks(ctx, db, date)
	logQuery("CheckoutTasks", start, err)
	return result, err
}

func (l DBQ) CloseStay(ctx context.Context, db fodb.DBTX, arg fodb.CloseStayParams) error {
	start := time.Now()
	err := l.q.CloseStay(ctx, db, arg)
	logQuery("CloseStay", start, err)
	return err
}

func (l DBQ) CountReservations(ctx context.Context, db fodb.DBTX) (int64, error) {
	start := time.Now()
	result, err := l.q.CountReservations(ctx, db)
	logQuery("CountReservations", start, err)
	return result, err
}

func (l DBQ) CreateNoShow(ctx context.Context, db fodb.DBTX, arg fodb.CreateNoShowParams) (int64, error) {
	start := time.Now()
	result, err := l.q.CreateNoShow(ctx, db, arg)
	logQuery("CreateNoShow", start, err)
	return result, err
}

func (l DBQ) CreateReservation(ctx context.Context, db fodb.DBTX, arg fodb.CreateReservationParams) (int64, error) {
	start := time.Now()
	result, err := l.q.CreateReservation(ctx, db, arg)
	logQuery("CreateReservation", start, err)
	return result, err
}

func (l DBQ) CreateStay(ctx context.Context, db fodb.DBTX, arg fodb.CreateStayParams) (int64, error) {
	start := time.Now()
	result, err := l.q.CreateStay(ctx, db, arg)
	logQuery("CreateStay", start, err)
	return result, err
}

func (l DBQ) DeleteStay(ctx context.Context, db fodb.DBTX, id int64) error {
	start := time.Now()
	err := l.q.DeleteStay(ctx, db, id)
	logQuery("DeleteStay", start, err)
	return err
}

func (l DBQ) Departures(ctx context.Context, db fodb.DBTX, date time.Time) ([]fodb.StayRow, error) {
	start := time.Now()
	result, err := l.q.Departures(ctx, db, date)
	logQuery("Departures", start, err)
	return result, err
}

func (l DBQ) EnsureRoom(ctx context.Context, db fodb.DBTX, number string) error {
	start := time.Now()
	err := l.q.EnsureRoom(ctx, db, number)
	logQuery("EnsureRoom", start, err)
	return err
}

func (l DBQ) GuestsForDate(ctx context.Context, db fodb.DBTX, date time.Time) ([]fodb.Reservation, error) {
	start := time.Now()
	result, err := l.q.GuestsForDate(ctx, db, date)
	logQuery("GuestsForDate", start, err)
	return result, err
}

func (l DBQ) HskTaskStatuses(ctx context.Context, db fodb.DBTX, date time.Time) ([]fodb.HskTaskStatus, error) {
	start := time.Now()
	result, err := l.q.HskTaskStatuses(ctx, db, date)
	logQuery("HskTaskStatuses", start, err)
	return result, err
}

func (l DBQ) InHouse(ctx context.Context, db fodb.DBTX, date time.Time) ([]fodb.StayRow, error) {
	start := time.Now()
	result, err := l.q.InHouse(ctx, db, date)
	logQuery("InHouse", start, err)
	return result, err
}

func (l DBQ) LatestStayForReservation(ctx context.Context, db fodb.DBTX, reservationID int64) (fodb.Stay, error) {
	start := time.Now()
	result, err := l.q.LatestStayForReservation(ctx, db, reservationID)
	logQuery("LatestStayForReservation", start, err)
	return result, err
}

func (l DBQ) NoShows(ctx context.Context, db fodb.DBTX, arrival time.Time) ([]fodb.NoShow, error) {
	start := time.Now()
	result, err := l.q.NoShows(ctx, db, arrival)
	logQuery("NoShows", start, err)
	return result, err
}

func (l DBQ) OverlappingReservations(ctx context.Context, db fodb.DBTX, arg fodb.OverlappingReservationsParams) ([]fodb.Reservation, error) {
	start := time.Now()
	result, err := l.q.OverlappingReservations(ctx, db, arg)
	logQuery("OverlappingReservations", start, err)
	return result, err
}

func (l DBQ) Payments(ctx context.Context, db fodb.DBTX, reservationID int64) ([]fodb.Payment, error) {
	start := time.Now()
	result, err := l.q.Payments(ctx, db, reservationID)
	logQuery("Payments", start, err)
	return result, err
}

func (l DBQ) PotentialNoShows(ctx context.Context, db fodb.DBTX, date time.Time) ([]fodb.Reservation, error) {
	start := time.Now()
	result, err := l.q.PotentialNoShows(ctx, db, date)
	logQuery("PotentialNoShows", start, err)
	return result, err
}

func (l DBQ) ReopenStay(ctx context.Context, db fodb.DBTX, id int64) error {
	start := time.Now()
	err := l.q.ReopenStay(ctx, db, id)
	logQuery("ReopenStay", start, err)
	return err
}

func (l DBQ) Reservation(ctx context.Context, db fodb.DBTX, id int64) (fodb.Reservation, error) {
	start := time.Now()
	result, err := l.q.Reservation(ctx, db, id)
	logQuery("Reservation", start, err)
	return result, err
}

func (l DBQ) ReservationByNumber(ctx context.Context, db fodb.DBTX, reservationNo string) (fodb.Reservation, error) {
	start := time.Now()
	result, err := l.q.ReservationByNumber(ctx, db, reservationNo)
	logQuery("ReservationByNumber", start, err)
	return result, err
}

func (l DBQ) ReservationForUpdate(ctx context.Context, db fodb.DBTX, id int64) (fodb.Reservation, error) {
	start := time.Now()
	result, err := l.q.ReservationForUpdate(ctx, db, id)
	logQuery("ReservationForUpdate", start, err)
	return result, err
}

func (l DBQ) ReservationsByRoom(ctx context.Context, db fodb.DBTX, room string) ([]fodb.Reservation, error) {
	start := time.Now()
	result, err := l.q.ReservationsByRoom(ctx, db, room)
	logQuery("ReservationsByRoom", start, err)
	return result, err
}

func (l DBQ) Room(ctx context.Context, db fodb.DBTX, number string) (fodb.Room, error) {
	start := time.Now()
	result, err := l.q.Room(ctx, db, number)
	logQuery("Room", start, err)
	return result, err
}

func (l DBQ) RoomForUpdate(ctx context.Context, db fodb.DBTX, number string) (fodb.Room, error) {
	start := time.Now()
	result, err := l.q.RoomForUpdate(ctx, db, number)
	logQuery("RoomForUpdate", start, err)
	return result, err
}

func (l DBQ) Rooms(ctx context.Context, db fodb.DBTX) ([]fodb.Room, error) {
	start := time.Now()
	result, err := l.q.Rooms(ctx, db)
	logQuery("Rooms", start, err)
	return result, err
}

func (l DBQ) SchemaVersion(ctx context.Context, db fodb.DBTX) (int16, error) {
	start := time.Now()
	result, err := l.q.SchemaVersion(ctx, db)
	logQuery("SchemaVersion", start, err)
	return result, err
}

func (l DBQ) SearchReservations(ctx context.Context, db fodb.DBTX, pattern string) ([]fodb.Reservation, error) {
	start := time.Now()
	result, err := l.q.SearchReservations(ctx, db, pattern)
	logQuery("SearchReservations", start, err)
	return result, err
}

func (l DBQ) SeedRoom(ctx context.Context, db fodb.DBTX, arg fodb.SeedRoomParams) error {
	start := time.Now()
	err := l.q.SeedRoom(ctx, db, arg)
	logQuery("SeedRoom", start, err)
	return err
}

func (l DBQ) SetAllRoomsVacant(ctx context.Context, db fodb.DBTX) error {
	start := time.Now()
	err := l.q.SetAllRoomsVacant(ctx, db)
	logQuery("SetAllRoomsVacant", start, err)
	return err
}

func (l DBQ) SetReservationNotes(ctx context.Context, db fodb.DBTX, arg fodb.SetReservationNotesParams) error {
	start := time.Now()
	err := l.q.SetReservationNotes(ctx, db, arg)
	logQuery("SetReservationNotes", start, err)
	return err
}

func (l DBQ) SetReservationRoom(ctx context.Context, db fodb.DBTX, arg fodb.SetReservationRoomParams) error {
	start := time.Now()
	err := l.q.SetReservationRoom(ctx, db, arg)
	logQuery("SetReservationRoom", start, err)
	return err
}

func (l DBQ) SetReservationStatus(ctx context.Context, db fodb.DBTX, arg fodb.SetReservationStatusParams) error {
	start := time.Now()
	err := l.q.SetReservationStatus(ctx, db, arg)
	logQuery("SetReservationStatus", start, err)
	return err
}

func (l DBQ) SetRoomStatus(ctx context.Context, db fodb.DBTX, arg fodb.SetRoomStatusParams) error {
	start := time.Now()
	err := l.q.SetRoomStatus(ctx, db, arg)
	logQuery("SetRoomStatus", start, err)
	return err
}

func (l DBQ) SetStayComment(ctx context.Context, db fodb.DBTX, arg fodb.SetStayCommentParams) error {
	start := time.Now()
	err := l.q.SetStayComment(ctx, db, arg)
	logQuery("SetStayComment", start, err)
	return err
}

func (l DBQ) SetStayParking(ctx context.Context, db fodb.DBTX, arg fodb.SetStayParkingParams) error {
	start := time.Now()
	err := l.q.SetStayParking(ctx, db, arg)
	logQuery("SetStayParking", start, err)
	return err
}

func (l DBQ) SetStayRoom(ctx context.Context, db fodb.DBTX, arg fodb.SetStayRoomParams) error {
	start := time.Now()
	err := l.q.SetStayRoom(ctx, db, arg)
	logQuery("SetStayRoom", start, err)
	return err
}

func (l DBQ) Stay(ctx context.Context, db fodb.DBTX, id int64) (fodb.Stay, error) {
	start := time.Now()
	result, err := l.q.Stay(ctx, db, id)
	logQuery("Stay", start, err)
	return result, err
}

func (l DBQ) StayForUpdate(ctx context.Context, db fodb.DBTX, id int64) (fodb.Stay, error) {
	start := time.Now()
	result, err := l.q.StayForUpdate(ctx, db, id)
	logQuery("StayForUpdate", start, err)
	return result, err
}

func (l DBQ) StayoverTasks(ctx context.Context, db fodb.DBTX, arg fodb.StayoverTasksParams) ([]fodb.StayRow, error) {
	start := time.Now()
	result, err := l.q.StayoverTasks(ctx, db, arg)
	logQuery("StayoverTasks", start, err)
	return result, err
}

func (l DBQ) UpsertHskTaskStatus(ctx context.Context, db fodb.DBTX, arg fodb.UpsertHskTaskStatusParams) error {
	start := time.Now()
	err := l.q.UpsertHskTaskStatus(ctx, db, arg)
	logQuery("UpsertHskTaskStatus", start, err)
	return err
}
