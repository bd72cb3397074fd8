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

package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/hotelfo/frontdesk/inventory"
	"github.com/hotelfo/frontdesk/reservation"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Column headers of the property-management system's arrivals export.
const (
	colArrival       = "Arrival Date"
	colDeparture     = "Depart"
	colRoom          = "Room"
	colReservationNo = "Reservation No."
	colGuest         = "Guest or Group's name"
	colMainClient    = "Main client"
	colMealPlan      = "Meal Plan"
	colMainRemark    = "Main Rem."
	colAdults        = "AD"
	colChannel       = "Chanl"
)

// dateLayouts are tried in order. Slashed dates are month first, dotted
// dates day first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"01/02/2006 15:04",
	"02.01.2006",
	"02.01.2006 15:04",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReadStats counts what happened to the rows of one file.
type ReadStats struct {
	Rows        int
	BadDates    int
	BadRooms    int
	MissingName int
}

// ReadReservations parses an arrivals export. Rows whose arrival or
// departure date can't be read are dropped, as are rows without a guest.
// A room number that can't be read is dropped but the reservation is kept.
func ReadReservations(r io.Reader) ([]reservation.NewReservation, ReadStats, error) {
	var stats ReadStats
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, nil
	}
	if err != nil {
		return nil, stats, fmt.Errorf("[csv.Read] header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		cols[h] = i
	}
	for _, required := range []string{colArrival, colDeparture, colGuest} {
		if _, ok := cols[required]; !ok {
			return nil, stats, fmt.Errorf("missing column %q", required)
		}
	}
	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var out []reservation.NewReservation
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("[csv.Read]: %w", err)
		}
		stats.Rows++
		arrival, okA := parseDate(field(record, colArrival))
		departure, okD := parseDate(field(record, colDeparture))
		if !okA || !okD {
			stats.BadDates++
			continue
		}
		guest := field(record, colGuest)
		if guest == "" {
			stats.MissingName++
			continue
		}
		room, err := inventory.CanonicalRoom(field(record, colRoom))
		if err != nil {
			slog.Warn("Dropping unreadable room number from import",
				"room", field(record, colRoom),
				"reservation", field(record, colReservationNo),
			)
			stats.BadRooms++
			room = ""
		}
		adults := int32(1)
		if ad, err := strconv.ParseFloat(field(record, colAdults), 64); err == nil && ad >= 0 {
			adults = int32(ad)
		}
		out = append(out, reservation.NewReservation{
			ReservationNo: strings.TrimSuffix(field(record, colReservationNo), ".0"),
			GuestName:     guest,
			Arrival:       arrival,
			Departure:     departure,
			Room:          room,
			MainClient:    field(record, colMainClient),
			MealPlan:      field(record, colMealPlan),
			Adults:        adults,
			Channel:       field(record, colChannel),
			MainRemark:    field(record, colMainRemark),
		})
	}
	return out, stats, nil
}
