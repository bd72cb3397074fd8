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

package inventory_test

import (
	"context"
	"github.com/hotelfo/frontdesk/conf"
	"github.com/hotelfo/frontdesk/inventory"
	"github.com/hotelfo/frontdesk/lib/fderr"
	"github.com/hotelfo/frontdesk/store"
	"github.com/hotelfo/frontdesk/store/fodb"
	"github.com/hotelfo/frontdesk/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log"
	"os"
	"testing"
)

var shared struct {
	dbq *store.DBQ
}

func TestMain(m *testing.M) {
	ctx, cancel := context.WithCancel(context.Background())
	dbq, err := storetest.FakeDBQ(ctx)
	if err != nil {
		log.Panic(err)
	}
	shared.dbq = dbq
	code := m.Run()
	cancel()
	os.Exit(code)
}

func newInventory(blocks ...conf.RoomBlock) *inventory.Inventory {
	return inventory.New(shared.dbq, inventory.NewCatalog(blocks), []string{"2002"}, 0)
}

func TestSeed(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	inv := newInventory(conf.RoomBlock{First: 2000, Last: 2003})
	require.NoError(t, inv.Seed(ctx))
	// seeding twice changes nothing
	require.NoError(t, inv.Seed(ctx))

	r, err := inv.Room(ctx, "2002")
	require.NoError(t, err)
	assert.Equal(t, fodb.RoomStatusVACANT, r.Status)
	assert.True(t, r.Twin)

	twins, err := inv.TwinRooms(ctx)
	require.NoError(t, err)
	assert.Contains(t, twins, "2002")
	assert.NotContains(t, twins, "2001")
}

func TestSetStatus(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	inv := newInventory(conf.RoomBlock{First: 2100, Last: 2105})

	// not seeded yet, so SetStatus starts tracking it
	room, status, err := inv.SetStatus(ctx, " 2101 ", "dirty")
	require.NoError(t, err)
	assert.Equal(t, "2101", room)
	assert.Equal(t, fodb.RoomStatusDIRTY, status)

	clean, err := inv.IsClean(ctx, shared.dbq, "2101")
	require.NoError(t, err)
	assert.False(t, clean)

	_, _, err = inv.SetStatus(ctx, "2101", "CLEAN")
	require.NoError(t, err)
	clean, err = inv.IsClean(ctx, shared.dbq, "2101")
	require.NoError(t, err)
	assert.True(t, clean)

	_, _, err = inv.SetStatus(ctx, "2101", "SPARKLING")
	assert.Equal(t, fderr.KindValidation, fderr.KindOf(err))
	_, _, err = inv.SetStatus(ctx, "", "CLEAN")
	assert.Equal(t, "Room number required", fderr.Message(err))
	_, _, err = inv.SetStatus(ctx, "2200", "CLEAN")
	assert.Equal(t, fderr.KindValidation, fderr.KindOf(err))
}

func TestIsCleanUnknownRoom(t *testing.T) {
	t.Parallel()
	inv := newInventory(conf.RoomBlock{First: 2300, Last: 2301})
	clean, err := inv.IsClean(t.Context(), shared.dbq, "2300")
	require.NoError(t, err)
	assert.True(t, clean)
}

func TestEnsureExists(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	inv := newInventory(conf.RoomBlock{First: 2400, Last: 2401})
	_, err := inv.Room(ctx, "2400")
	assert.Equal(t, fderr.KindNotFound, fderr.KindOf(err))

	require.NoError(t, inv.EnsureExists(ctx, shared.dbq, "2400"))
	require.NoError(t, inv.Occupy(ctx, shared.dbq, "2400"))
	require.NoError(t, inv.EnsureExists(ctx, shared.dbq, "2400"))

	r, err := inv.Room(ctx, "2400")
	require.NoError(t, err)
	assert.Equal(t, fodb.RoomStatusOCCUPIED, r.Status)
}
