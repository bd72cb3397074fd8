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
	fdjson "github.com/hotelfo/frontdesk/json"
	"github.com/hotelfo/frontdesk/lib/conv"
	"github.com/hotelfo/frontdesk/lib/herr"
	"github.com/hotelfo/frontdesk/lifecycle"
	"github.com/hotelfo/frontdesk/store/fodb"
	"golang.org/x/sync/errgroup"
	"net/http"
	"time"
)

// GetReservationView serves a dated list of reservations, such as the
// day's arrivals.
type GetReservationView struct {
	days dayParser
	list func(ctx context.Context, date time.Time) ([]fodb.Reservation, error)
}

func (action GetReservationView) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	date, errHTTP := action.days.fromQuery(req)
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	rows, err := action.list(req.Context(), date)
	if err != nil {
		herr.FromDomain(err).From("[GetReservationView]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, toReservations(rows))
}

// GetStayView serves a dated list of stays with their reservations.
type GetStayView struct {
	days dayParser
	list func(ctx context.Context, date time.Time) ([]fodb.StayRow, error)
}

func (action GetStayView) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	date, errHTTP := action.days.fromQuery(req)
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	rows, err := action.list(req.Context(), date)
	if err != nil {
		herr.FromDomain(err).From("[GetStayView]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, toStayRows(rows))
}

type GetNoShows struct {
	days dayParser
	ctl  *lifecycle.Controller
}

func (action GetNoShows) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	date, errHTTP := action.days.fromQuery(req)
	if errHTTP != nil {
		errHTTP.WriteResponse(w)
		return
	}
	rows, err := action.ctl.ListNoShows(req.Context(), date)
	if err != nil {
		herr.FromDomain(err).From("[ListNoShows]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, toNoShows(rows))
}

// GetDashboard gathers the day's four desk lists in one response.
type GetDashboard struct {
	days dayParser
	ctl  *lifecycle.Controller
}

func (action GetDashboard) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.getDashboard(req)
	if errHTTP != nil {
		errHTTP.From("[getDashboard]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action GetDashboard) getDashboard(req *http.Request) (fdjson.Dashboard, *herr.HTTPError) {
	date, errHTTP := action.days.fromQuery(req)
	if errHTTP != nil {
		return fdjson.Dashboard{}, errHTTP
	}
	var arrivals, noShows []fodb.Reservation
	var inHouse, departures []fodb.StayRow
	g, ctx := errgroup.WithContext(req.Context())
	g.Go(func() (err error) {
		arrivals, err = action.ctl.ListArrivals(ctx, date)
		return err
	})
	g.Go(func() (err error) {
		inHouse, err = action.ctl.ListInHouse(ctx, date)
		return err
	})
	g.Go(func() (err error) {
		departures, err = action.ctl.ListDepartures(ctx, date)
		return err
	})
	g.Go(func() (err error) {
		noShows, err = action.ctl.ListPotentialNoShows(ctx, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return fdjson.Dashboard{}, herr.FromDomain(err).From("[errgroup.Wait]")
	}
	return fdjson.Dashboard{
		Date:             conv.FormatDate(date),
		Arrivals:         toReservations(arrivals),
		InHouse:          toStayRows(inHouse),
		Departures:       toStayRows(departures),
		PotentialNoShows: toReservations(noShows),
	}, nil
}
