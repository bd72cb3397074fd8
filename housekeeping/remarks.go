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

package housekeeping

import (
	"strings"
)

// RemarkFlags are the special requests picked out of a reservation's free
// text remarks.
type RemarkFlags struct {
	TwinBeds   bool
	VIP        bool
	Accessible bool
}

// ClassifyRemarks looks for the desk's shorthand in the combined remarks,
// ignoring case. "2t" asks for two twin beds, "vip" or "birthday" marks a
// special guest, and "accessible" or "disabled" an accessible room.
func ClassifyRemarks(mainRemark, totalRemarks string) RemarkFlags {
	remarks := strings.ToLower(mainRemark + " " + totalRemarks)
	return RemarkFlags{
		TwinBeds:   strings.Contains(remarks, "2t"),
		VIP:        strings.Contains(remarks, "vip") || strings.Contains(remarks, "birthday"),
		Accessible: strings.Contains(remarks, "accessible") || strings.Contains(remarks, "disabled"),
	}
}
