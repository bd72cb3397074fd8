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
	"fmt"
	"github.com/hotelfo/frontdesk/conf"
	fdjson "github.com/hotelfo/frontdesk/json"
	"github.com/hotelfo/frontdesk/lib/authn"
	"github.com/hotelfo/frontdesk/lib/authz"
	"github.com/hotelfo/frontdesk/lib/herr"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type PostAuth struct {
	staff          []conf.StaffUser
	jwter          authz.JWTer
	accessLifetime time.Duration
}

func (action PostAuth) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, errHTTP := action.postAuth(req)
	if errHTTP != nil {
		errHTTP.From("[postAuth]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, resp)
}

func (action PostAuth) postAuth(req *http.Request) (fdjson.AuthResponse, *herr.HTTPError) {
	var empty fdjson.AuthResponse
	vals, errHTTP := readBodyAs[fdjson.AuthRequest](req)
	if errHTTP != nil {
		return empty, errHTTP.From("[readBodyAs]")
	}
	var matched *conf.StaffUser
	for i := range action.staff {
		if strings.EqualFold(action.staff[i].Handle, strings.TrimSpace(vals.Handle)) {
			matched = &action.staff[i]
			break
		}
	}
	if matched == nil {
		return empty, herr.Unauthorized("Failed login attempt (bad credentials)",
			fmt.Errorf("login attempt for nonexistent user %q", vals.Handle)).SetExpectedError()
	}
	correct, err := authn.Verify(vals.Password, matched.PasswordHash)
	if err != nil {
		return empty, herr.InternalServerError("Failed to verify password", err).From("[Verify]")
	}
	if !correct {
		return empty, herr.Unauthorized("Failed login attempt (bad credentials)",
			fmt.Errorf("bad password for valid user %q", matched.Handle)).SetExpectedError()
	}
	slog.Info("Successful login for staff member", "handle", matched.Handle)

	expiration := time.Now().Add(action.accessLifetime)
	token, err := action.jwter.CreateAccessToken(matched.Handle, expiration)
	if err != nil {
		return empty, herr.InternalServerError("Failed to create access token", err).From("[CreateAccessToken]")
	}
	return fdjson.AuthResponse{Token: token, ExpiresUnixMs: expiration.UnixMilli()}, nil
}

type GetAuth struct{}

func (action GetAuth) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	jwtCtx, errHTTP := getJwtCtx(req)
	if errHTTP != nil {
		errHTTP.From("[getJwtCtx]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, req, fdjson.AuthInfo{
		Authenticated: true,
		Handle:        jwtCtx.Claims.StaffHandle(),
	})
}
