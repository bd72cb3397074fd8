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

package cache_test

import (
	"context"
	"errors"
	"github.com/hotelfo/frontdesk/lib/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"sync/atomic"
	"testing"
	"time"
)

type cacheVal struct {
	nonThreadSafe int64
	threadSafe    int64
}

func doTest(t *testing.T, ttl time.Duration, rounds int64) (numRefreshes int64) {
	t.Helper()
	var refreshCountNonThreadSafe int64
	var refreshCountAtomic atomic.Int64
	cacher := cache.New[cacheVal](ttl, func(ctx context.Context) (cacheVal, error) {
		refreshCountNonThreadSafe++
		return cacheVal{
			nonThreadSafe: refreshCountNonThreadSafe,
			threadSafe:    refreshCountAtomic.Add(1),
		}, nil
	})

	group, ctx := errgroup.WithContext(t.Context())
	for range rounds {
		group.Go(func() error {
			cv, err := cacher.Get(ctx)
			if err != nil {
				return err
			}
			if cv.threadSafe != cv.nonThreadSafe {
				return errors.New("refresher ran concurrently")
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())
	assert.Equal(t, refreshCountAtomic.Load(), refreshCountNonThreadSafe)

	return refreshCountAtomic.Load()
}

func TestInMemoryCache_WorksWithNoRace(t *testing.T) {
	t.Parallel()

	// a zero ttl refreshes on every call, without running the refresher concurrently
	require.Equal(t, int64(500), doTest(t, 0, 500))

	// a long ttl refreshes just once
	require.Equal(t, int64(1), doTest(t, time.Hour, 500))

	numRefreshes := doTest(t, 5*time.Microsecond, 500)
	require.LessOrEqual(t, int64(1), numRefreshes)
	require.GreaterOrEqual(t, int64(500), numRefreshes)
}

func TestInMemoryCache_ExpiryAndInvalidate(t *testing.T) {
	t.Parallel()
	now := time.Unix(1767225600, 0)
	var calls int
	c := cache.New[int](time.Minute, func(context.Context) (int, error) {
		calls++
		return calls, nil
	}, cache.WithClock[int](func() time.Time { return now }))

	v, err := c.Get(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	now = now.Add(30 * time.Second)
	v, _ = c.Get(t.Context())
	assert.Equal(t, 1, v)

	now = now.Add(time.Minute)
	v, _ = c.Get(t.Context())
	assert.Equal(t, 2, v)

	c.Invalidate()
	v, _ = c.Get(t.Context())
	assert.Equal(t, 3, v)
}

func TestInMemoryCache_RefresherError(t *testing.T) {
	t.Parallel()
	fail := true
	c := cache.New[string](time.Hour, func(context.Context) (string, error) {
		if fail {
			return "", errors.New("db down")
		}
		return "rooms", nil
	})
	_, err := c.Get(t.Context())
	require.ErrorContains(t, err, "db down")

	// a failed refresh isn't cached
	fail = false
	v, err := c.Get(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "rooms", v)
}
