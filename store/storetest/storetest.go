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

// Package storetest gives test packages a migrated, seeded fake database.
package storetest

import (
	"context"
	"fmt"
	"github.com/hotelfo/frontdesk/conf"
	"github.com/hotelfo/frontdesk/store"
	"github.com/hotelfo/frontdesk/store/fodb"
)

// FakeDBQ starts a fresh in-process database. It lives until ctx is done.
func FakeDBQ(ctx context.Context) (*store.DBQ, error) {
	db, err := store.SqlDB(ctx,
		conf.DBStore{
			Type: conf.DBStoreTypeFake,
			Fake: conf.DefaultFrontDesk().Store.Fake,
		},
		true,
	)
	if err != nil {
		return nil, fmt.Errorf("[SqlDB]: %w", err)
	}
	return store.NewDBQ(db, fodb.New()), nil
}
