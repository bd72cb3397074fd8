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

// Package housekeeping derives a day's cleaning work from the stays and
// reservations, and keeps the staff's progress on each task.
package housekeeping

import (
	"context"
	"fmt"
	"github.com/hotelfo/frontdesk/inventory"
	"github.com/hotelfo/frontdesk/lib/conv"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/hotelfo/frontdesk/store"
	"github.com/hotelfo/frontdesk/store/actionlog"
	"github.com/hotelfo/frontdesk/store/fodb"
	"golang.org/x/sync/errgroup"
	"strings"
	"time"
)

const ActionTaskStatus = "task_status"

type Priority string

const (
	PriorityURGENT Priority = "URGENT"
	PriorityHIGH   Priority = "HIGH"
	PriorityMEDIUM Priority = "MEDIUM"
)

const (
	NoteTwinBeds   = "2 TWIN BEDS"
	NoteVIP        = "VIP/SPECIAL"
	NoteCleanNow   = "CHECKED OUT - CLEAN NOW"
	NoteAccessible = "ACCESSIBLE ROOM"
)

// Task is one room's cleaning job for a day. Only Status and StaffNotes are
// stored; everything else is worked out again on every call.
type Task struct {
	Date          time.Time
	Room          string
	Type          fodb.TaskType
	Priority      Priority
	Description   string
	Notes         []string
	ReservationID int64
	StayID        int64
	Status        fodb.TaskStatus
	StaffNotes    string
}

type taskKey struct {
	room     string
	taskType fodb.TaskType
}

type Generator struct {
	dbq *store.DBQ
	inv *inventory.Inventory
	rec actionlog.Recorder
	now func() time.Time
}

func New(dbq *store.DBQ, inv *inventory.Inventory, rec actionlog.Recorder) *Generator {
	if rec == nil {
		rec = actionlog.Discard{}
	}
	return &Generator{
		dbq: dbq,
		inv: inv,
		rec: rec,
		now: time.Now,
	}
}

// GenerateTasks lists the day's checkouts, then stayovers, then arrivals.
// Checkouts already vacated come first among the checkouts.
func (g *Generator) GenerateTasks(ctx context.Context, date time.Time) ([]Task, error) {
	date = conv.Date(date)
	monthStart, nextMonth := conv.MonthBounds(date)

	var checkouts, stayovers []fodb.StayRow
	var arrivals []fodb.Reservation
	statuses := make(map[taskKey]fodb.HskTaskStatus)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		checkouts, err = g.dbq.CheckoutTasks(groupCtx, g.dbq, date)
		if err != nil {
			return fderr.Store("[CheckoutTasks]", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		stayovers, err = g.dbq.StayoverTasks(groupCtx, g.dbq, fodb.StayoverTasksParams{
			MonthStart: monthStart,
			NextMonth:  nextMonth,
		})
		if err != nil {
			return fderr.Store("[StayoverTasks]", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		arrivals, err = g.dbq.ArrivalTasks(groupCtx, g.dbq, date)
		if err != nil {
			return fderr.Store("[ArrivalTasks]", err)
		}
		return nil
	})
	group.Go(func() error {
		rows, err := g.dbq.HskTaskStatuses(groupCtx, g.dbq, date)
		if err != nil {
			return fderr.Store("[HskTaskStatuses]", err)
		}
		for _, row := range rows {
			statuses[taskKey{room: row.Room, taskType: row.TaskType}] = row
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(checkouts)+len(stayovers)+len(arrivals))
	for _, row := range checkouts {
		tasks = append(tasks, checkoutTask(date, row))
	}
	seen := make(map[string]bool)
	for _, row := range stayovers {
		if seen[row.Stay.Room] {
			continue
		}
		seen[row.Stay.Room] = true
		tasks = append(tasks, stayoverTask(date, row))
	}
	for _, res := range arrivals {
		tasks = append(tasks, arrivalTask(date, res))
	}

	for i := range tasks {
		tasks[i].Status = fodb.TaskStatusPENDING
		if st, ok := statuses[taskKey{room: tasks[i].Room, taskType: tasks[i].Type}]; ok {
			tasks[i].Status = st.Status
			tasks[i].StaffNotes = st.Notes
		}
	}
	return tasks, nil
}

func checkoutTask(date time.Time, row fodb.StayRow) Task {
	room, guest := row.Stay.Room, row.Reservation.GuestName
	checkedOut := row.Stay.Status == fodb.StayStatusCHECKEDOUT
	t := Task{
		Date:          date,
		Room:          room,
		Type:          fodb.TaskTypeCHECKOUT,
		Priority:      PriorityHIGH,
		Description:   fmt.Sprintf("Clean room %v - %v checkout", room, guest),
		Notes:         []string{},
		ReservationID: row.Reservation.ID,
		StayID:        row.Stay.ID,
	}
	if checkedOut {
		t.Priority = PriorityURGENT
	}
	flags := ClassifyRemarks(row.Reservation.MainRemark, row.Reservation.TotalRemarks)
	if flags.TwinBeds {
		t.Notes = append(t.Notes, NoteTwinBeds)
	}
	if flags.VIP {
		t.Priority = PriorityURGENT
		t.Notes = append(t.Notes, NoteVIP)
	}
	if checkedOut {
		t.Notes = append(t.Notes, NoteCleanNow)
	}
	return t
}

func stayoverTask(date time.Time, row fodb.StayRow) Task {
	return Task{
		Date:          date,
		Room:          row.Stay.Room,
		Type:          fodb.TaskTypeSTAYOVER,
		Priority:      PriorityMEDIUM,
		Description:   fmt.Sprintf("Refresh room %v - %v stayover", row.Stay.Room, row.Reservation.GuestName),
		Notes:         []string{},
		ReservationID: row.Reservation.ID,
		StayID:        row.Stay.ID,
	}
}

func arrivalTask(date time.Time, res fodb.Reservation) Task {
	room := strings.TrimSpace(res.Room.String)
	t := Task{
		Date:          date,
		Room:          room,
		Type:          fodb.TaskTypeARRIVAL,
		Priority:      PriorityHIGH,
		Description:   fmt.Sprintf("Prepare room %v for %v arrival", room, res.GuestName),
		Notes:         []string{},
		ReservationID: res.ID,
	}
	flags := ClassifyRemarks(res.MainRemark, res.TotalRemarks)
	if flags.TwinBeds {
		t.Notes = append(t.Notes, NoteTwinBeds)
	}
	if flags.Accessible {
		t.Notes = append(t.Notes, NoteAccessible)
	}
	return t
}

func ParseTaskType(s string) (fodb.TaskType, error) {
	tt := fodb.TaskType(strings.ToUpper(strings.TrimSpace(s)))
	if !tt.Valid() {
		return "", fderr.Validation("Invalid task type. Use CHECKOUT, STAYOVER or ARRIVAL.")
	}
	return tt, nil
}

func ParseTaskStatus(s string) (fodb.TaskStatus, error) {
	ts := fodb.TaskStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !ts.Valid() {
		return "", fderr.Validation("Invalid task status. Use PENDING or DONE.")
	}
	return ts, nil
}

// UpdateTaskStatus stores a task's progress. Finishing a CHECKOUT task also
// marks the room CLEAN, in the same transaction.
func (g *Generator) UpdateTaskStatus(
	ctx context.Context,
	date time.Time,
	room string,
	taskType fodb.TaskType,
	status fodb.TaskStatus,
	notes string,
) error {
	number, err := inventory.CanonicalRoom(room)
	if err != nil {
		return err
	}
	if number == "" {
		return fderr.Validation("Room number required")
	}
	if !taskType.Valid() {
		return fderr.Validationf("Invalid task type %q", taskType)
	}
	if !status.Valid() {
		return fderr.Validationf("Invalid task status %q", status)
	}
	date = conv.Date(date)

	txn, err := g.dbq.BeginTx(ctx, nil)
	if err != nil {
		return fderr.Store("[BeginTx]", err)
	}
	defer store.Rollback(txn)

	err = g.dbq.UpsertHskTaskStatus(ctx, txn, fodb.UpsertHskTaskStatusParams{
		TaskDate: date,
		Room:     number,
		TaskType: taskType,
		Status:   status,
		Notes:    strings.TrimSpace(notes),
		Updated:  conv.TimeToFloat(g.now()),
	})
	if err != nil {
		return fderr.Store("[UpsertHskTaskStatus]", err)
	}
	roomCleaned := taskType == fodb.TaskTypeCHECKOUT && status == fodb.TaskStatusDONE
	if roomCleaned {
		if err = g.inv.EnsureExists(ctx, txn, number); err != nil {
			return err
		}
		if err = g.inv.MarkClean(ctx, txn, number); err != nil {
			return err
		}
	}
	if err = txn.Commit(); err != nil {
		return fderr.Store("[Commit]", err)
	}
	if roomCleaned {
		g.inv.Invalidate()
	}
	g.rec.Record(ctx, actionlog.Entry{
		Action:  ActionTaskStatus,
		Room:    number,
		Message: fmt.Sprintf("%v %v on %v set to %v", taskType, number, conv.FormatDate(date), status),
	})
	return nil
}
