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

package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// InMemory holds one value of type T, refreshed lazily once it is older than
// the ttl. Readers never block each other while the value is fresh.
type InMemory[T any] struct {
	current   atomic.Pointer[entry[T]]
	ttl       time.Duration
	refresher func(context.Context) (T, error)
	now       func() time.Time
	writeMu   sync.Mutex
}

type entry[T any] struct {
	data    T
	fetched time.Time
	valid   bool
}

type Option[T any] func(*InMemory[T])

// WithClock replaces time.Now, for tests.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(im *InMemory[T]) {
		im.now = now
	}
}

// New creates a new InMemory cache. The ttl indicates how long a cached value is valid, and the refresher
// function is what fetches a new value for the cache when a refresh is needed.
func New[T any](
	ttl time.Duration,
	refresher func(context.Context) (T, error),
	opts ...Option[T],
) *InMemory[T] {
	im := &InMemory[T]{
		ttl:       ttl,
		refresher: refresher,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(im)
	}
	im.current.Store(&entry[T]{})
	return im
}

func (im *InMemory[T]) Get(ctx context.Context) (T, error) {
	if e := im.current.Load(); im.fresh(e) {
		return e.data, nil
	}
	im.writeMu.Lock()
	defer im.writeMu.Unlock()
	// another caller may have refreshed while we waited for the lock
	if e := im.current.Load(); im.fresh(e) {
		return e.data, nil
	}
	data, err := im.refresher(ctx)
	if err != nil {
		var empty T
		return empty, fmt.Errorf("[refresher]: %w", err)
	}
	im.current.Store(&entry[T]{data: data, fetched: im.now(), valid: true})
	return data, nil
}

// Invalidate drops the held value, so the next Get refreshes. Writers call
// this after changing whatever the cache mirrors.
func (im *InMemory[T]) Invalidate() {
	im.writeMu.Lock()
	defer im.writeMu.Unlock()
	im.current.Store(&entry[T]{})
}

func (im *InMemory[T]) fresh(e *entry[T]) bool {
	return e.valid && im.now().Before(e.fetched.Add(im.ttl))
}
