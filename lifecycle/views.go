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

package lifecycle

import (
	"context"
	"github.com/hotelfo/frontdesk/lib/conv"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/hotelfo/frontdesk/store/fodb"
	"time"
)

// ListInHouse lists the checked-in stays spanning the night of date.
func (c *Controller) ListInHouse(ctx context.Context, date time.Time) ([]fodb.StayRow, error) {
	rows, err := c.dbq.InHouse(ctx, c.dbq, conv.Date(date))
	if err != nil {
		return nil, fderr.Store("[InHouse]", err)
	}
	return rows, nil
}

// ListArrivals lists the reservations arriving on date that haven't been
// checked in, checked out, cancelled or marked no-show.
func (c *Controller) ListArrivals(ctx context.Context, date time.Time) ([]fodb.Reservation, error) {
	rows, err := c.dbq.Arrivals(ctx, c.dbq, conv.Date(date))
	if err != nil {
		return nil, fderr.Store("[Arrivals]", err)
	}
	return rows, nil
}

// ListDepartures lists the checked-in stays planned to leave on date.
func (c *Controller) ListDepartures(ctx context.Context, date time.Time) ([]fodb.StayRow, error) {
	rows, err := c.dbq.Departures(ctx, c.dbq, conv.Date(date))
	if err != nil {
		return nil, fderr.Store("[Departures]", err)
	}
	return rows, nil
}

// ListCheckedOut lists the stays actually checked out during date, in the
// hotel's time zone.
func (c *Controller) ListCheckedOut(ctx context.Context, date time.Time) ([]fodb.StayRow, error) {
	from, to := conv.DayBounds(date, c.loc)
	rows, err := c.dbq.CheckedOut(ctx, c.dbq, fodb.CheckedOutParams{From: from, To: to})
	if err != nil {
		return nil, fderr.Store("[CheckedOut]", err)
	}
	return rows, nil
}

func (c *Controller) ListPotentialNoShows(ctx context.Context, date time.Time) ([]fodb.Reservation, error) {
	rows, err := c.dbq.PotentialNoShows(ctx, c.dbq, conv.Date(date))
	if err != nil {
		return nil, fderr.Store("[PotentialNoShows]", err)
	}
	return rows, nil
}

func (c *Controller) ListNoShows(ctx context.Context, date time.Time) ([]fodb.NoShow, error) {
	rows, err := c.dbq.NoShows(ctx, c.dbq, conv.Date(date))
	if err != nil {
		return nil, fderr.Store("[NoShows]", err)
	}
	return rows, nil
}

// ListGuestsForDate lists the reservations whose dates cover date, leaving
// out no-shows and cancellations.
func (c *Controller) ListGuestsForDate(ctx context.Context, date time.Time) ([]fodb.Reservation, error) {
	rows, err := c.dbq.GuestsForDate(ctx, c.dbq, conv.Date(date))
	if err != nil {
		return nil, fderr.Store("[GuestsForDate]", err)
	}
	return rows, nil
}
