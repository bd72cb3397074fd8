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
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/hotelfo/frontdesk/allocation"
	"github.com/hotelfo/frontdesk/conf"
	"github.com/hotelfo/frontdesk/housekeeping"
	"github.com/hotelfo/frontdesk/inventory"
	"github.com/hotelfo/frontdesk/lib/authz"
	"github.com/hotelfo/frontdesk/lib/herr"
	"github.com/hotelfo/frontdesk/lifecycle"
	"github.com/hotelfo/frontdesk/reservation"
	"github.com/hotelfo/frontdesk/store"
	"github.com/hotelfo/frontdesk/store/actionlog"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// FrontDesk holds the services the handlers call into.
type FrontDesk struct {
	DBQ          *store.DBQ
	Inventory    *inventory.Inventory
	Engine       *allocation.Engine
	Lifecycle    *lifecycle.Controller
	Reservations *reservation.Store
	Housekeeping *housekeeping.Generator
	// Recorder hears about changes made directly by handlers, such as a
	// manual room status override.
	Recorder actionlog.Recorder
	// Location is the hotel's time zone. A view requested without a date
	// shows today in this zone.
	Location *time.Location
}

func AddToMux(
	mux *http.ServeMux,
	es *EventSourcerer,
	cfg *conf.FrontDeskConfig,
	fd FrontDesk,
) *http.ServeMux {
	if mux == nil {
		mux = http.NewServeMux()
	}
	if fd.Recorder == nil {
		fd.Recorder = actionlog.Discard{}
	}
	if fd.Location == nil {
		fd.Location = time.Local
	}

	jwter := authz.JWTer{SecretKey: cfg.Core.JWTSecret}
	maxBytes := cfg.Core.MaxRequestBytes
	days := dayParser{loc: fd.Location}

	// authed covers every route except login, ping and the event stream.
	authed := func(h http.Handler) http.Handler {
		return Adapt(h,
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(maxBytes),
		)
	}

	mux.Handle("POST /fo/api/auth",
		Adapt(
			PostAuth{cfg.Staff.Users, jwter, cfg.Core.AccessTokenLifetime},
			RecoverFromPanic(),
			LogRequest(),
			LimitRequestBytes(maxBytes),
			// No authentication here, since the point is to get a token.
		),
	)

	mux.Handle("GET /fo/api/auth", authed(GetAuth{}))

	mux.Handle("GET /fo/api/rooms", authed(GetRooms{fd.Inventory, cfg.Core.CacheControlShort}))
	mux.Handle("POST /fo/api/rooms/{room}/status", authed(SetRoomStatus{fd.Inventory, fd.Recorder}))
	mux.Handle("GET /fo/api/rooms/validate", authed(ValidateRoom{fd.Inventory}))
	mux.Handle("GET /fo/api/availability", authed(GetAvailability{fd.DBQ, fd.Engine}))

	mux.Handle("GET /fo/api/reservations", authed(GetReservations{fd.Reservations}))
	mux.Handle("POST /fo/api/reservations", authed(NewReservation{fd.Reservations}))
	mux.Handle("GET /fo/api/reservations/{reservationID}", authed(GetReservation{fd.Reservations}))
	mux.Handle("POST /fo/api/reservations/{reservationID}/room", authed(AssignRoom{fd.Engine}))
	mux.Handle("POST /fo/api/reservations/{reservationID}/notes", authed(EditNotes{fd.Reservations}))
	mux.Handle("POST /fo/api/reservations/{reservationID}/checkin", authed(CheckIn{fd.Lifecycle}))
	mux.Handle("POST /fo/api/reservations/{reservationID}/no_show", authed(MarkNoShow{fd.Lifecycle}))
	mux.Handle("POST /fo/api/reservations/{reservationID}/cancel", authed(CancelReservation{fd.Reservations}))
	mux.Handle("GET /fo/api/reservations/{reservationID}/payments", authed(GetPayments{fd.Reservations}))
	mux.Handle("POST /fo/api/reservations/{reservationID}/payments", authed(NewPayment{fd.Reservations}))

	mux.Handle("GET /fo/api/stays/{stayID}", authed(GetStay{fd.Reservations}))
	mux.Handle("POST /fo/api/stays/{stayID}", authed(EditStay{fd.Reservations}))
	mux.Handle("POST /fo/api/stays/{stayID}/checkout", authed(CheckOut{fd.Lifecycle}))
	mux.Handle("POST /fo/api/stays/{stayID}/cancel_checkin", authed(CancelCheckIn{fd.Lifecycle}))
	mux.Handle("POST /fo/api/stays/{stayID}/cancel_checkout", authed(CancelCheckOut{fd.Lifecycle}))
	mux.Handle("POST /fo/api/stays/{stayID}/move", authed(MoveRoom{fd.Lifecycle}))

	ctl := fd.Lifecycle
	mux.Handle("GET /fo/api/arrivals", authed(GetReservationView{days, ctl.ListArrivals}))
	mux.Handle("GET /fo/api/potential_no_shows", authed(GetReservationView{days, ctl.ListPotentialNoShows}))
	mux.Handle("GET /fo/api/guests", authed(GetReservationView{days, ctl.ListGuestsForDate}))
	mux.Handle("GET /fo/api/inhouse", authed(GetStayView{days, ctl.ListInHouse}))
	mux.Handle("GET /fo/api/departures", authed(GetStayView{days, ctl.ListDepartures}))
	mux.Handle("GET /fo/api/checked_out", authed(GetStayView{days, ctl.ListCheckedOut}))
	mux.Handle("GET /fo/api/no_shows", authed(GetNoShows{days, ctl}))
	mux.Handle("GET /fo/api/dashboard", authed(GetDashboard{days, ctl}))

	mux.Handle("GET /fo/api/housekeeping/tasks", authed(GetTasks{days, fd.Housekeeping}))
	mux.Handle("POST /fo/api/housekeeping/tasks", authed(UpdateTask{days, fd.Housekeeping}))

	mux.Handle("POST /fo/api/admin/sync_rooms", authed(SyncRooms{fd.Lifecycle}))
	mux.Handle("GET /fo/api/action_logs", authed(GetActionLogs{fd.DBQ}))
	mux.Handle("GET /fo/api/debug/buildinfo", authed(GetBuildInfo{}))

	mux.Handle("GET /fo/api/eventsource",
		Adapt(
			es.Server.Handler(EventSourceChannel),
			RecoverFromPanic(),
			LogRequest(),
			LimitRequestBytes(maxBytes),
		),
	)

	return AddBasicHandlers(mux)
}

// AddBasicHandlers registers the routes that need no services at all.
func AddBasicHandlers(mux *http.ServeMux) *http.ServeMux {
	if mux == nil {
		mux = http.NewServeMux()
	}
	mux.HandleFunc("GET /fo/api/ping",
		func(w http.ResponseWriter, req *http.Request) {
			herr.WriteOKResponse(w, "ack")
		},
	)
	return mux
}

var buildInfo = sync.OnceValue[debug.BuildInfo](func() debug.BuildInfo {
	bi, ok := debug.ReadBuildInfo()
	if ok {
		return *bi
	}
	slog.Info("Build info was unavailable, so an empty placeholder will be used instead")
	return debug.BuildInfo{}
})

type Adapter func(http.Handler) http.Handler

// responseWriter is a wrapper around http.ResponseWriter that lets us
// capture details about the response.
type responseWriter struct {
	http.ResponseWriter
	code int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.code = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush lets the event stream push through the wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func LimitRequestBytes(maxRequestBytes int64) Adapter {
	return func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, maxRequestBytes)
	}
}

const RequestIDHeader = "X-Request-Id"

// LogRequest tags the response with a request id and logs each request at
// debug level once it has been served.
func LogRequest() Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			w.Header().Set(RequestIDHeader, requestID)
			writ := &responseWriter{w, http.StatusOK}

			next.ServeHTTP(writ, r)

			username := "(unauthenticated)"
			jwtCtx, _ := r.Context().Value(JWTContextKey).(JWTContext)
			if jwtCtx.Claims != nil {
				username = jwtCtx.Claims.StaffHandle()
			}
			durationMS := float64(time.Since(start).Microseconds()) / 1000.0
			slog.Debug(fmt.Sprintf("Served request for: %v %v ", r.Method, r.URL.Path),
				"request-id", requestID,
				"duration", fmt.Sprintf("%.3fms", durationMS),
				"method", r.Method,
				"user", username,
				"code", writ.code,
				"remote-addr", r.RemoteAddr,
				"build", buildInfo().Main.Version,
			)
		})
	}
}

func RecoverFromPanic() Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					slog.Error("Recovered from panic", "err", err)
					debug.PrintStack()
					http.Error(w, "The server malfunctioned", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type ContextKey string

const JWTContextKey ContextKey = "JWTContext"

type JWTContext struct {
	Claims *authz.StaffClaims
}

// RequireAuthN rejects requests without a valid staff token. The staff
// handle becomes the actor of every action log entry the request causes.
func RequireAuthN(j authz.JWTer) Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			claims, err := j.AuthenticateJWT(strings.TrimPrefix(header, "Bearer "))
			if err == nil && claims == nil {
				err = errors.New("no claims in JWT")
			}
			if err != nil {
				unauthorized(err).WriteResponse(w)
				return
			}
			ctx := context.WithValue(r.Context(), JWTContextKey, JWTContext{Claims: claims})
			ctx = actionlog.WithActor(ctx, claims.StaffHandle())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Adapt(handler http.Handler, adapters ...Adapter) http.Handler {
	for i := range adapters {
		adapter := adapters[len(adapters)-1-i] // range in reverse
		handler = adapter(handler)
	}
	return handler
}
