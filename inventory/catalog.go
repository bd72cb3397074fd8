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

// Package inventory owns the hotel's rooms: which numbers exist, and what
// state each room is in.
package inventory

import (
	"fmt"
	"github.com/hotelfo/frontdesk/conf"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"slices"
	"strconv"
	"strings"
)

// Catalog is the fixed set of valid room numbers, as inclusive blocks.
// It is a value and is never modified after construction.
type Catalog struct {
	blocks []conf.RoomBlock
}

func NewCatalog(blocks []conf.RoomBlock) Catalog {
	return Catalog{blocks: slices.Clone(blocks)}
}

func (c Catalog) Blocks() []conf.RoomBlock {
	return slices.Clone(c.blocks)
}

func (c Catalog) Contains(n int64) bool {
	for _, b := range c.blocks {
		if n >= int64(b.First) && n <= int64(b.Last) {
			return true
		}
	}
	return false
}

// Numbers lists every room number in the catalog, block by block.
func (c Catalog) Numbers() []string {
	var numbers []string
	for _, b := range c.blocks {
		for n := b.First; n <= b.Last; n++ {
			numbers = append(numbers, strconv.Itoa(int(n)))
		}
	}
	return numbers
}

// ValidateRoomNumber returns the canonical form of a room number typed at
// the desk, e.g. " 0205" becomes "205".
func (c Catalog) ValidateRoomNumber(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fderr.Validation("Room number cannot be empty")
	}
	if strings.Contains(input, ".") {
		return "", fderr.Validation("Room number cannot have decimals. Use whole numbers only")
	}
	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return "", fderr.Validation("Room number must be a valid whole number")
	}
	if !c.Contains(n) {
		return "", fderr.Validationf("Room %d not in valid ranges: %v", n, c.rangesString())
	}
	return strconv.FormatInt(n, 10), nil
}

func (c Catalog) rangesString() string {
	ranges := make([]string, len(c.blocks))
	for i, b := range c.blocks {
		ranges[i] = b.String()
	}
	return strings.Join(ranges, ", ")
}

// CanonicalRoom is the lenient form used for imported data and availability
// lookups, where a spreadsheet may have written room 205 as "205.0". It
// does not check the catalog.
func CanonicalRoom(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	f, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return "", fderr.Validation("Invalid room number format")
	}
	return fmt.Sprint(int64(f)), nil
}
