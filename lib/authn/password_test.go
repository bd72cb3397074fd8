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

package authn_test

import (
	"github.com/hotelfo/frontdesk/lib/authn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()
	hashed, err := authn.Hash("front desk 24/7")
	require.NoError(t, err)
	assert.NotEqual(t, "front desk 24/7", hashed)

	ok, err := authn.Verify("front desk 24/7", hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = authn.Verify("wrong password", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()
	h1, err := authn.Hash("same")
	require.NoError(t, err)
	h2, err := authn.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerify_badStoredValue(t *testing.T) {
	t.Parallel()
	_, err := authn.Verify("some_password", "salt:sha1hex")
	require.ErrorContains(t, err, "unsupported non-bcrypt")

	_, err = authn.Verify("some_password", "$2a$10$tooShort")
	require.Error(t, err)
}
