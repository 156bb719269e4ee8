// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package zaputil

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yandex/qpsgen/lib/errutil"
)

// NewStackExtractCore returns core that moves stacktraces of github.com/pkg/errors
// errors from error fields to zapcore.Entry.Stack, on Write.
// Errors accumulated with errutil.Join are inspected one by one, so every
// failed file stack is reported.
// Check of underlying core is not called, only its LevelEnabler is used.
func NewStackExtractCore(c zapcore.Core) zapcore.Core {
	return &stackExtractCore{Core: c}
}

type stackExtractCore struct {
	zapcore.Core
	stacks string
}

func (c *stackExtractCore) With(fields []zapcore.Field) zapcore.Core {
	stacks, fields := extractStacks(fields)
	return &stackExtractCore{
		Core:   c.Core.With(fields),
		stacks: joinStacks(c.stacks, stacks),
	}
}

func (c *stackExtractCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *stackExtractCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	stacks, fields := extractStacks(fields)
	ent.Stack = joinStacks(ent.Stack, c.stacks, stacks)
	return c.Core.Write(ent, fields)
}

// extractStacks replaces stacked error fields with their messages.
// Passed fields are not modified.
func extractStacks(fields []zapcore.Field) (string, []zapcore.Field) {
	var (
		stacks []string
		cloned bool
	)
	for i, field := range fields {
		if field.Type != zapcore.ErrorType {
			continue
		}
		err, ok := field.Interface.(error)
		if !ok {
			continue
		}
		var found bool
		for _, e := range errutil.Errors(err) {
			tracer, ok := e.(errutil.StackTracer)
			if !ok {
				continue
			}
			found = true
			stacks = append(stacks, fmt.Sprintf("%s stacktrace:%+v", field.Key, tracer.StackTrace()))
		}
		if !found {
			continue
		}
		if !cloned {
			fields = append([]zapcore.Field(nil), fields...)
			cloned = true
		}
		fields[i] = zap.String(field.Key, err.Error())
	}
	return strings.Join(stacks, "\n"), fields
}

func joinStacks(stacks ...string) string {
	nonEmpty := stacks[:0:0]
	for _, s := range stacks {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return strings.Join(nonEmpty, "\n")
}
