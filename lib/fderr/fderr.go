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

// Package fderr holds the front desk's error taxonomy. Validation, conflict,
// not-found and state errors are business outcomes whose messages are meant
// for the person at the desk. Store errors mean the database failed.
package fderr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindState
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not found"
	case KindState:
		return "state"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is a business or infrastructure failure with a message that is safe
// to show to staff.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func State(message string) error {
	return &Error{Kind: KindState, Message: message}
}

func Statef(format string, args ...any) error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

// Store wraps a database failure. The source names the failing call, in the
// same "[Callee]" form used for breadcrumbs elsewhere.
func Store(source string, err error) error {
	return &Error{Kind: KindStore, Message: "Storage failure", Err: fmt.Errorf("%v: %w", source, err)}
}

// ConflictError names the reservation that already holds a room for an
// overlapping window.
type ConflictError struct {
	Room          string
	GuestName     string
	ReservationID int64
	ReservationNo string
}

func (e *ConflictError) Error() string {
	ref := e.ReservationNo
	if ref == "" {
		ref = fmt.Sprint(e.ReservationID)
	}
	return fmt.Sprintf("Room %v occupied by %v (Res #%v)", e.Room, e.GuestName, ref)
}

// KindOf classifies err, looking through any wrapping.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return KindConflict
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Message returns the staff-facing text for err, or a generic message for
// failures that aren't part of the taxonomy.
func Message(err error) string {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict.Error()
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return "Unexpected failure"
}

func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}
