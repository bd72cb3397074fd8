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

package noopdb_test

import (
	"database/sql"
	"errors"
	"github.com/hotelfo/frontdesk/lib/noopdb"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestNoOpDB(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	db, err := sql.Open(noopdb.DriverName, "")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(ctx, "update ROOM set STATUS = ? where NUMBER = ?", "CLEAN", "205")
	require.NoError(t, err)

	rows, err := db.QueryContext(ctx, "select NUMBER from ROOM where STATUS = ?", "DIRTY")
	require.NoError(t, err)
	require.False(t, rows.Next())
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())

	var n string
	err = db.QueryRowContext(ctx, "select NUMBER from ROOM").Scan(&n)
	require.True(t, errors.Is(err, sql.ErrNoRows))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
}
