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

// Package log provides a colorized, human-oriented slog.Handler for the
// front desk server's console output.
package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	timeFormat = "[15:04:05.000]"

	reset = "\033[0m"

	darkGray     = 90
	lightRed     = 91
	lightYellow  = 93
	lightBlue    = 94
	lightMagenta = 95
	lightCyan    = 96
	white        = 97
)

func colorize(colorCode int, v string) string {
	return fmt.Sprintf("\033[%sm%s%s", strconv.Itoa(colorCode), v, reset)
}

type Handler struct {
	h                slog.Handler
	r                func([]string, slog.Attr) slog.Attr
	b                *bytes.Buffer
	m                *sync.Mutex
	writer           io.Writer
	colorize         bool
	outputEmptyAttrs bool
}

type Option func(h *Handler)

func WithDestinationWriter(writer io.Writer) Option {
	return func(h *Handler) {
		h.writer = writer
	}
}

func WithColor() Option {
	return func(h *Handler) {
		h.colorize = true
	}
}

func WithOutputEmptyAttrs() Option {
	return func(h *Handler) {
		h.outputEmptyAttrs = true
	}
}

// New builds a Handler that writes one line per record, to stderr unless
// WithDestinationWriter says otherwise.
func New(handlerOptions *slog.HandlerOptions, options ...Option) *Handler {
	if handlerOptions == nil {
		handlerOptions = &slog.HandlerOptions{}
	}
	buf := &bytes.Buffer{}
	handler := &Handler{
		b: buf,
		h: slog.NewJSONHandler(buf, &slog.HandlerOptions{
			Level:       handlerOptions.Level,
			AddSource:   handlerOptions.AddSource,
			ReplaceAttr: suppressDefaults(handlerOptions.ReplaceAttr),
		}),
		r:      handlerOptions.ReplaceAttr,
		m:      &sync.Mutex{},
		writer: os.Stderr,
	}
	for _, opt := range options {
		opt(handler)
	}
	return handler
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{h: h.h.WithAttrs(attrs), b: h.b, r: h.r, m: h.m, writer: h.writer,
		colorize: h.colorize, outputEmptyAttrs: h.outputEmptyAttrs}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{h: h.h.WithGroup(name), b: h.b, r: h.r, m: h.m, writer: h.writer,
		colorize: h.colorize, outputEmptyAttrs: h.outputEmptyAttrs}
}

func (h *Handler) paint(code int, v string) string {
	if !h.colorize {
		return v
	}
	return colorize(code, v)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	switch {
	case r.Level <= slog.LevelDebug:
		level = h.paint(lightMagenta, level)
	case r.Level <= slog.LevelInfo:
		level = h.paint(lightBlue, level)
	case r.Level < slog.LevelWarn:
		level = h.paint(lightCyan, level)
	case r.Level < slog.LevelError:
		level = h.paint(lightYellow, level)
	default:
		level = h.paint(lightRed, level)
	}

	attrs, err := h.computeAttrs(ctx, r)
	if err != nil {
		return err
	}
	var attrsAsBytes []byte
	if h.outputEmptyAttrs || len(attrs) > 0 {
		attrsAsBytes, err = json.Marshal(attrs)
		if err != nil {
			return fmt.Errorf("[json.Marshal]: %w", err)
		}
	}

	out := bytes.Buffer{}
	if !r.Time.IsZero() {
		out.WriteString(h.paint(white, r.Time.Format(timeFormat)))
		out.WriteString(" ")
	}
	out.WriteString(level)
	out.WriteString(" ")
	out.WriteString(h.paint(white, r.Message))
	if len(attrsAsBytes) > 0 {
		out.WriteString(" ")
		out.WriteString(h.paint(darkGray, string(attrsAsBytes)))
	}
	out.WriteString("\n")

	h.m.Lock()
	defer h.m.Unlock()
	_, err = io.Copy(h.writer, &out)
	if err != nil {
		return fmt.Errorf("[io.Copy]: %w", err)
	}
	return nil
}

// computeAttrs lets the wrapped JSON handler resolve groups and attributes,
// then reads them back out of its buffer.
func (h *Handler) computeAttrs(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.m.Lock()
	defer func() {
		h.b.Reset()
		h.m.Unlock()
	}()
	if err := h.h.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("[Handle]: %w", err)
	}
	var attrs map[string]any
	if err := json.Unmarshal(h.b.Bytes(), &attrs); err != nil {
		return nil, fmt.Errorf("[json.Unmarshal]: %w", err)
	}
	return attrs, nil
}

// suppressDefaults drops the time, level and message keys from the JSON
// output, since Handle prints those itself.
func suppressDefaults(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 {
			switch a.Key {
			case slog.TimeKey, slog.LevelKey, slog.MessageKey:
				return slog.Attr{}
			}
		}
		if d, ok := a.Value.Any().(time.Duration); ok {
			a.Value = slog.StringValue(d.String())
		}
		if next == nil {
			return a
		}
		return next(groups, a)
	}
}
