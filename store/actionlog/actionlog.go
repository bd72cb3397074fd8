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

// Package actionlog writes the front office audit trail. Writes happen on a
// background worker so that a slow insert never holds up a desk operation.
package actionlog

import (
	"context"
	"database/sql"
	"github.com/hotelfo/frontdesk/lib/conv"
	"github.com/hotelfo/frontdesk/store"
	"github.com/hotelfo/frontdesk/store/fodb"
	"log/slog"
	"sync"
	"time"
)

const (
	workQueueMaxLength = 1024
	insertDeadline     = 10 * time.Second
)

// Entry is one audited action. Zero IDs and an empty Room are stored as null.
type Entry struct {
	Actor         string
	Action        string
	ReservationID int64
	StayID        int64
	Room          string
	Message       string
}

type Logger struct {
	work                chan fodb.AddActionLogParams
	dbq                 *store.DBQ
	actionLogEnabled    bool
	synchronousForTests bool
	done                chan struct{}
	closeOnce           sync.Once
}

func NewLogger(
	ctx context.Context,
	dbq *store.DBQ,
	actionLogEnabled bool,
	synchronousForTests bool,
) *Logger {
	logger := &Logger{
		work:                make(chan fodb.AddActionLogParams, workQueueMaxLength),
		dbq:                 dbq,
		actionLogEnabled:    actionLogEnabled,
		synchronousForTests: synchronousForTests,
		done:                make(chan struct{}),
	}
	go logger.startWorker(ctx)
	return logger
}

// Log queues an entry. When the queue is full the entry is dropped with an
// error log rather than blocking the caller.
func (l *Logger) Log(ctx context.Context, e Entry) {
	if l == nil || !l.actionLogEnabled {
		return
	}
	row := fodb.AddActionLogParams{
		Created:       conv.TimeToFloat(time.Now()),
		Actor:         e.Actor,
		Action:        e.Action,
		ReservationID: nullID(e.ReservationID),
		StayID:        nullID(e.StayID),
		Room:          conv.TrimmedToSql(e.Room, 16),
		Message:       e.Message,
	}
	if l.synchronousForTests {
		l.writeRow(ctx, row)
		return
	}
	select {
	case l.work <- row:
	default:
		slog.Error("Action log queue is full, dropping entry", "action", e.Action)
	}
}

// Close stops accepting entries and waits for queued ones to be written.
func (l *Logger) Close() {
	l.closeOnce.Do(func() {
		close(l.work)
		<-l.done
	})
}

func (l *Logger) startWorker(ctx context.Context) {
	defer close(l.done)
	// Detached so the last rows still get written after a shutdown signal
	// cancels ctx.
	ctx = context.WithoutCancel(ctx)
	for row := range l.work {
		l.writeRow(ctx, row)
	}
	slog.Info("actionlog.Logger worker finished")
}

func (l *Logger) writeRow(ctx context.Context, row fodb.AddActionLogParams) {
	ctx, cancel := context.WithTimeout(ctx, insertDeadline)
	defer cancel()
	_, err := l.dbq.AddActionLog(ctx, l.dbq, row)
	if err != nil {
		slog.Error("Failed to add action log to db", "error", err, "action", row.Action)
	}
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
