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

package conv

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is how calendar dates travel over the API and in import files.
const DateLayout = time.DateOnly

type IntLike interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func FormatInt[T IntLike](i T) string {
	return strconv.FormatInt(int64(i), 10)
}

func ParseInt16(s string) (int16, error) {
	i, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return int16(i), nil
}

func ParseInt32(s string) (int32, error) {
	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(i), nil
}

func ParseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func SqlToString(v sql.NullString) *string {
	if v.Valid {
		return &v.String
	}
	return nil
}

func SqlToInt32(v sql.NullInt32) *int32 {
	if v.Valid {
		return &v.Int32
	}
	return nil
}

func SqlToInt64(v sql.NullInt64) *int64 {
	if v.Valid {
		return &v.Int64
	}
	return nil
}

// StringToSql converts a string pointer into a sql.NullString.
//
// The string will be truncated at maxLength, if maxLength > 0. This uses the fact
// that Go and the MariaDB tables encode strings in UTF-8.
func StringToSql(s *string, maxLength int) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	val := *s
	if maxLength > 0 && len(val) > maxLength {
		val = val[:maxLength]
	}
	return sql.NullString{String: val, Valid: true}
}

// TrimmedToSql is StringToSql for values that arrive as plain strings,
// where blank means absent.
func TrimmedToSql(s string, maxLength int) sql.NullString {
	s = strings.TrimSpace(s)
	return StringToSql(&s, maxLength)
}

func Int32ToSql(i *int32) sql.NullInt32 {
	if i == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *i, Valid: true}
}

// FloatToTime converts the float number of seconds since Unix epoch into a time.Time.
func FloatToTime(f float64) time.Time {
	return time.Unix(int64(f), int64(f*1e9)%1e9)
}

// TimeToFloat converts a time.Time into the float number of seconds since Unix epoch.
func TimeToFloat(t time.Time) float64 {
	decimalPart := float64(t.Nanosecond()) / 1e9
	return decimalPart + float64(t.Unix())
}

func NullFloatToTimePtr(f sql.NullFloat64) *time.Time {
	if !f.Valid {
		return nil
	}
	res := FloatToTime(f.Float64)
	return &res
}

func TimeToNullFloat(t time.Time) sql.NullFloat64 {
	if t.IsZero() {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{
		Valid:   true,
		Float64: TimeToFloat(t),
	}
}

func EmptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Date truncates t to midnight UTC of its calendar day in t's own location.
// All stored calendar dates go through here, so that DATE columns compare
// equal regardless of the caller's time zone.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("[time.Parse]: %w", err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthBounds returns the first day of t's month and the first day of the
// following month.
func MonthBounds(t time.Time) (start, next time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// DayBounds returns t's calendar day as a half-open range of epoch seconds in
// loc, for matching against the float timestamps kept in the database.
func DayBounds(t time.Time, loc *time.Location) (from, to float64) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return TimeToFloat(start), TimeToFloat(start.AddDate(0, 0, 1))
}
