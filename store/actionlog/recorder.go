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

package actionlog

import (
	"context"
)

// Recorder hears about every committed front desk change.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

func (l *Logger) Record(ctx context.Context, e Entry) {
	if e.Actor == "" {
		e.Actor = ActorFrom(ctx)
	}
	l.Log(ctx, e)
}

// Recorders fans an entry out to several recorders in order.
type Recorders []Recorder

func (rs Recorders) Record(ctx context.Context, e Entry) {
	for _, r := range rs {
		if r != nil {
			r.Record(ctx, e)
		}
	}
}

// Discard is a Recorder that does nothing.
type Discard struct{}

func (Discard) Record(context.Context, Entry) {}

type actorKey struct{}

// WithActor attaches the handle of the staff member acting on ctx.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFrom(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}
