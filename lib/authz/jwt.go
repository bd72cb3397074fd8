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

package authz

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"strings"
	"time"
)

const issuer = "frontdesk"

type JWTer struct {
	SecretKey string
}

type StaffClaims struct {
	jwt.RegisteredClaims
	Handle string `json:"han"`
}

func (c StaffClaims) WithExpiration(t time.Time) StaffClaims {
	c.ExpiresAt = jwt.NewNumericDate(t)
	return c
}

func (c StaffClaims) WithIssuedAt(t time.Time) StaffClaims {
	c.IssuedAt = jwt.NewNumericDate(t)
	return c
}

func (c StaffClaims) WithIssuer(s string) StaffClaims {
	c.Issuer = s
	return c
}

func (c StaffClaims) WithStaffHandle(s string) StaffClaims {
	c.Handle = s
	c.Subject = s
	return c
}

func (c StaffClaims) StaffHandle() string {
	return c.Handle
}

// CreateAccessToken signs a token for a front desk staff member.
func (j JWTer) CreateAccessToken(handle string, expiration time.Time) (string, error) {
	token, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		StaffClaims{}.
			WithIssuedAt(time.Now()).
			WithExpiration(expiration).
			WithIssuer(issuer).
			WithStaffHandle(handle),
	).SignedString([]byte(j.SecretKey))
	if err != nil {
		return "", fmt.Errorf("[SignedString]: %w", err)
	}
	return token, nil
}

// AuthenticateJWT validates a token, with or without its "Bearer " prefix.
func (j JWTer) AuthenticateJWT(jwtStr string) (*StaffClaims, error) {
	jwtStr = strings.TrimPrefix(jwtStr, "Bearer ")
	if jwtStr == "" {
		return nil, errors.New("no token provided")
	}
	claims := StaffClaims{}
	tok, err := jwt.ParseWithClaims(jwtStr, &claims, func(token *jwt.Token) (any, error) {
		return []byte(j.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("[jwt.ParseWithClaims]: %w", err)
	}
	if tok == nil || !tok.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.StaffHandle() == "" {
		return nil, errors.New("staff handle is required")
	}
	return &claims, nil
}
