// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package script

import (
	"context"
	"io"
	"maps"
	"strconv"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/rvcm/harness"
	"github.com/ezrec/rvcm/translate"
)

const localContext = "rvcm.context"

// Session runs scripts against the module of a harness. Check results of
// every script run accumulate in Report.
type Session struct {
	Harness *harness.Harness
	Output  io.Writer // Destination of print(), discarded if nil.
	Report  harness.Report
}

// New session.
func New(h *harness.Harness, output io.Writer) *Session {
	return &Session{
		Harness: h,
		Output:  output,
	}
}

// Predeclared returns the builtins and the module defines.
func (s *Session) Predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	for key, str := range s.Harness.Module.Defines() {
		value, err := strconv.ParseUint(str, 0, 32)
		if err != nil {
			continue
		}
		pred[key] = starlark.MakeUint64(value)
	}

	maps.Copy(pred, s.builtins())

	return
}

// Exec runs the script src (a filename, string, []byte or io.Reader, as
// accepted by starlark.ExecFileOptions) and returns its globals. The
// script is cancelled when ctx is done.
func (s *Session) Exec(ctx context.Context, filename string, src any) (globals starlark.StringDict, err error) {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			if s.Output != nil {
				translate.Fprintf(s.Output, "%s\n", msg)
			}
		},
	}
	thread.SetLocal(localContext, ctx)

	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	// Debug scripts are flat: loops, conditionals and updated globals at
	// top level.
	opts := syntax.FileOptions{
		TopLevelControl: true,
		GlobalReassign:  true,
		While:           true,
	}
	log.WithField("script", filename).Debugf("exec")

	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, s.Predeclared())
	if err != nil {
		if ctx.Err() != nil {
			err = errors.Annotate(ctx.Err(), filename)
			return
		}
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			log.Debug(evalErr.Backtrace())
		}
	}

	return
}

func threadContext(thread *starlark.Thread) context.Context {
	if ctx, ok := thread.Local(localContext).(context.Context); ok {
		return ctx
	}
	return context.Background()
}
