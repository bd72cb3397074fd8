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

package api

import (
	"context"
	"encoding/json"
	"github.com/hotelfo/frontdesk/store/actionlog"
	"github.com/launchdarkly/eventsource"
	"log/slog"
	"strconv"
	"sync/atomic"
)

const EventSourceChannel = "fdevents"

// ChangeData tells desk terminals what to refetch. The event type is named
// after the most specific id present. InitialEvent marks the greeting sent
// on connect.
type ChangeData struct {
	Action        string `json:"action,omitzero"`
	Actor         string `json:"actor,omitzero"`
	ReservationID int64  `json:"reservation_id,omitzero"`
	StayID        int64  `json:"stay_id,omitzero"`
	Room          string `json:"room,omitzero"`
	Message       string `json:"message,omitzero"`
	InitialEvent  bool   `json:"initial_event,omitzero"`
}

type ChangeEvent struct {
	EventID int64
	Change  ChangeData
}

func (e ChangeEvent) Id() string {
	return strconv.FormatInt(e.EventID, 10)
}

func (e ChangeEvent) Event() string {
	switch {
	case e.Change.InitialEvent:
		return "InitialEvent"
	case e.Change.StayID > 0:
		return "Stay"
	case e.Change.ReservationID > 0:
		return "Reservation"
	case e.Change.Room != "":
		return "Room"
	}
	return "Change"
}

func (e ChangeEvent) Data() string {
	b, err := json.Marshal(e.Change)
	if err != nil {
		slog.Error("Error converting ChangeEvent to JSON", "data", e.Change, "err", err)
	}
	return string(b)
}

// EventSourcerer pushes every recorded change to connected terminals.
type EventSourcerer struct {
	Server    *eventsource.Server
	IdCounter atomic.Int64
}

var _ actionlog.Recorder = (*EventSourcerer)(nil)

func NewEventSourcerer() *EventSourcerer {
	es := &EventSourcerer{
		Server: eventsource.NewServer(),
	}
	es.Server.Register(EventSourceChannel, es)
	es.Server.ReplayAll = true
	return es
}

func (es *EventSourcerer) Replay(channel, id string) chan eventsource.Event {
	if channel != EventSourceChannel {
		return nil
	}
	out := make(chan eventsource.Event, 1)
	out <- ChangeEvent{
		EventID: es.IdCounter.Load(),
		Change: ChangeData{
			InitialEvent: true,
			Message:      "The most recent SSE ID is provided in this message",
		},
	}
	close(out)
	return out
}

func (es *EventSourcerer) Record(ctx context.Context, e actionlog.Entry) {
	actor := e.Actor
	if actor == "" {
		actor = actionlog.ActorFrom(ctx)
	}
	es.Server.Publish([]string{EventSourceChannel}, ChangeEvent{
		EventID: es.IdCounter.Add(1),
		Change: ChangeData{
			Action:        e.Action,
			Actor:         actor,
			ReservationID: e.ReservationID,
			StayID:        e.StayID,
			Room:          e.Room,
			Message:       e.Message,
		},
	})
}

func (es *EventSourcerer) Close() {
	es.Server.Close()
}
