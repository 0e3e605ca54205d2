// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package harness

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/rvcm/cm"
)

// Harness drives one control module.
type Harness struct {
	Module *cm.Module
	Settle time.Duration   // Wait after starting or stepping the core.
	Logger log.FieldLogger // Receives PASS lines at Info, FAIL lines at Error.
}

// New harness for mod.
func New(mod *cm.Module, settle time.Duration) *Harness {
	return &Harness{
		Module: mod,
		Settle: settle,
		Logger: log.StandardLogger(),
	}
}

// Load halts the core, points the program counter at origin and writes
// the program words to block memory starting at origin.
func (h *Harness) Load(origin uint32, program []uint32) {
	mod := h.Module

	mod.Control.Stop()
	mod.Control.SetPC(origin)
	mod.Bram.WriteWords(origin, program)

	h.Logger.Debugf("loaded %d words at 0x%x", len(program), origin)
}

// Wait out the settle delay, or until ctx is done.
func (h *Harness) Wait(ctx context.Context) (err error) {
	if h.Settle <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(h.Settle)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-timer.C:
	}

	return
}

// Check reads the value named by c and logs the result.
func (h *Harness) Check(c Check) (res Result) {
	mod := h.Module

	res.Check = c
	switch c.Kind {
	case CHECK_REG:
		res.Got = mod.RegFile.Read(c.Reg)
	case CHECK_BYTE:
		res.Word = mod.Bram.ReadWord(cm.WordAddress(c.Addr))
		res.Got = uint32(cm.ExtractByte(res.Word, c.Addr))
	default:
		res.Got = mod.Bram.ReadWord(c.Addr)
	}

	if res.Pass() {
		h.Logger.Info(res.String())
	} else {
		h.Logger.Error(res.String())
	}

	return
}

// CheckAll runs each check in order.
func (h *Harness) CheckAll(checks ...Check) (rep Report) {
	for _, c := range checks {
		rep.Add(h.Check(c))
	}
	return
}

// RunScenario loads the scenario program, starts the core, waits the
// settle delay and runs the final checks.
func (h *Harness) RunScenario(ctx context.Context, sc *Scenario) (rep Report, err error) {
	h.Logger.Infof("%s: start", sc.Name)

	h.Load(sc.Origin, sc.Program)
	h.Module.Control.Start()

	err = h.Wait(ctx)
	if err != nil {
		return
	}

	rep = h.CheckAll(sc.Checks...)

	h.Logger.Infof("%s: complete", sc.Name)
	return
}

// StepScenario loads the scenario program and single steps the halted
// core through it, running the checks of each step after it retires.
func (h *Harness) StepScenario(ctx context.Context, sc *Scenario) (rep Report, err error) {
	h.Logger.Infof("%s: single step", sc.Name)

	h.Load(sc.Origin, sc.Program)

	for n, step := range sc.Steps {
		h.Logger.Infof("Step %d: Execute '%s'", n+1, step.Name)

		h.Module.Control.Step()
		err = h.Wait(ctx)
		if err != nil {
			return
		}

		part := h.CheckAll(step.Checks...)
		rep.Add(part.Results...)
	}

	h.Logger.Infof("%s: complete", sc.Name)
	return
}
