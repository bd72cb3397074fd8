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

package authz_test

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/hotelfo/frontdesk/lib/authz"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestCreateAndGetValidJWT(t *testing.T) {
	t.Parallel()
	jwter := authz.JWTer{SecretKey: "some-secret"}
	j, err := jwter.CreateAccessToken("nightaudit", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := jwter.AuthenticateJWT("Bearer " + j)
	require.NoError(t, err)
	require.Equal(t, "nightaudit", claims.StaffHandle())
	sub, err := claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, "nightaudit", sub)
}

func TestCreateAndGetInvalidJWTs(t *testing.T) {
	t.Parallel()
	jwter := authz.JWTer{SecretKey: "some-secret"}

	expired, err := jwter.CreateAccessToken("nightaudit", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = jwter.AuthenticateJWT(expired)
	require.ErrorContains(t, err, "expired")

	otherKey, err := authz.JWTer{SecretKey: "some-other-secret"}.CreateAccessToken("nightaudit", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = jwter.AuthenticateJWT(otherKey)
	require.ErrorContains(t, err, "signature is invalid")

	noHandle, err := jwter.CreateAccessToken("", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = jwter.AuthenticateJWT(noHandle)
	require.ErrorContains(t, err, "staff handle is required")

	_, err = jwter.AuthenticateJWT("")
	require.ErrorContains(t, err, "no token provided")

	// same key, wrong algorithm
	none, err := jwt.NewWithClaims(jwt.SigningMethodHS512, authz.StaffClaims{}.
		WithStaffHandle("nightaudit").
		WithIssuer("frontdesk").
		WithExpiration(time.Now().Add(time.Hour)),
	).SignedString([]byte("some-secret"))
	require.NoError(t, err)
	_, err = jwter.AuthenticateJWT(none)
	require.Error(t, err)
}
