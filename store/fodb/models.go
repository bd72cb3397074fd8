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

package fodb

import (
	"database/sql"
	"fmt"
	"time"
)

type RoomStatus string

const (
	RoomStatusVACANT   RoomStatus = "VACANT"
	RoomStatusOCCUPIED RoomStatus = "OCCUPIED"
	RoomStatusCLEAN    RoomStatus = "CLEAN"
	RoomStatusDIRTY    RoomStatus = "DIRTY"
)

func (e *RoomStatus) Scan(src interface{}) error {
	return scanEnum(e, src)
}

func (e RoomStatus) Valid() bool {
	switch e {
	case RoomStatusVACANT, RoomStatusOCCUPIED, RoomStatusCLEAN, RoomStatusDIRTY:
		return true
	}
	return false
}

type ReservationStatus string

const (
	ReservationStatusCONFIRMED  ReservationStatus = "CONFIRMED"
	ReservationStatusCHECKEDIN  ReservationStatus = "CHECKED_IN"
	ReservationStatusCHECKEDOUT ReservationStatus = "CHECKED_OUT"
	ReservationStatusNOSHOW     ReservationStatus = "NO_SHOW"
	ReservationStatusCANCELLED  ReservationStatus = "CANCELLED"
)

func (e *ReservationStatus) Scan(src interface{}) error {
	return scanEnum(e, src)
}

// Active reports whether a reservation with this status still holds its
// room for availability purposes.
func (e ReservationStatus) Active() bool {
	return e != ReservationStatusCANCELLED && e != ReservationStatusNOSHOW
}

type StayStatus string

const (
	StayStatusEXPECTED   StayStatus = "EXPECTED"
	StayStatusCHECKEDIN  StayStatus = "CHECKED_IN"
	StayStatusCHECKEDOUT StayStatus = "CHECKED_OUT"
)

func (e *StayStatus) Scan(src interface{}) error {
	return scanEnum(e, src)
}

type TaskType string

const (
	TaskTypeCHECKOUT TaskType = "CHECKOUT"
	TaskTypeSTAYOVER TaskType = "STAYOVER"
	TaskTypeARRIVAL  TaskType = "ARRIVAL"
)

func (e *TaskType) Scan(src interface{}) error {
	return scanEnum(e, src)
}

func (e TaskType) Valid() bool {
	switch e {
	case TaskTypeCHECKOUT, TaskTypeSTAYOVER, TaskTypeARRIVAL:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskStatusPENDING TaskStatus = "PENDING"
	TaskStatusDONE    TaskStatus = "DONE"
)

func (e *TaskStatus) Scan(src interface{}) error {
	return scanEnum(e, src)
}

func (e TaskStatus) Valid() bool {
	return e == TaskStatusPENDING || e == TaskStatusDONE
}

type PaymentType string

const (
	PaymentTypePAYMENT PaymentType = "PAYMENT"
	PaymentTypeREFUND  PaymentType = "REFUND"
)

func (e *PaymentType) Scan(src interface{}) error {
	return scanEnum(e, src)
}

func (e PaymentType) Valid() bool {
	return e == PaymentTypePAYMENT || e == PaymentTypeREFUND
}

func scanEnum[E ~string](e *E, src interface{}) error {
	switch s := src.(type) {
	case []byte:
		*e = E(s)
	case string:
		*e = E(s)
	default:
		return fmt.Errorf("unsupported scan type for %T: %T", *e, src)
	}
	return nil
}

type Room struct {
	Number string
	Status RoomStatus
	Twin   bool
}

type Reservation struct {
	ID            int64
	ReservationNo string
	GuestName     string
	Arrival       time.Time
	Departure     time.Time
	Room          sql.NullString
	Status        ReservationStatus
	MainClient    string
	MealPlan      string
	Adults        int32
	Children      int32
	Channel       string
	MainRemark    string
	TotalRemarks  string
	Created       float64
}

type Stay struct {
	ID            int64
	ReservationID int64
	Room          string
	Status        StayStatus
	PlannedIn     time.Time
	PlannedOut    time.Time
	ActualIn      sql.NullFloat64
	ActualOut     sql.NullFloat64
	Comment       string
	ParkingSpace  string
	ParkingPlate  string
	ParkingNotes  string
}

// StayRow is a stay joined with the reservation it belongs to.
type StayRow struct {
	Stay        Stay
	Reservation Reservation
}

type HskTaskStatus struct {
	TaskDate time.Time
	Room     string
	TaskType TaskType
	Status   TaskStatus
	Notes    string
	Updated  float64
}

type NoShow struct {
	ID            int64
	ReservationID sql.NullInt64
	Arrival       time.Time
	GuestName     string
	MainClient    string
	Charged       bool
	AmountCharged float64
	AmountPending float64
	Comment       string
	Created       float64
}

type Payment struct {
	ID            int64
	ReservationID int64
	GuestName     string
	Amount        float64
	PaymentType   PaymentType
	Method        string
	Reference     string
	Note          string
	Created       float64
}

type ActionLog struct {
	ID            int64
	Created       float64
	Actor         string
	Action        string
	ReservationID sql.NullInt64
	StayID        sql.NullInt64
	Room          sql.NullString
	Message       string
}
