// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package script

import (
	"context"
	"math"
	"time"

	"go.starlark.net/starlark"

	"github.com/ezrec/rvcm/cm"
	"github.com/ezrec/rvcm/harness"
)

type builtinFunc = func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func (s *Session) builtins() starlark.StringDict {
	table := map[string]builtinFunc{
		"stop":         s.stop,
		"start":        s.start,
		"step":         s.step,
		"settle":       s.settle,
		"sleep":        s.sleep,
		"pc":           s.pc,
		"set_pc":       s.setPC,
		"reg":          s.reg,
		"set_reg":      s.setReg,
		"regs":         s.regs,
		"mem":          s.mem,
		"set_mem":      s.setMem,
		"mem_byte":     s.memByte,
		"set_mem_byte": s.setMemByte,
		"load_program": s.loadProgram,
		"check_reg":    s.checkReg,
		"check_byte":   s.checkByte,
		"check_word":   s.checkWord,
		"report":       s.report,
	}

	dict := starlark.StringDict{}
	for name, fn := range table {
		dict[name] = starlark.NewBuiltin(name, fn)
	}

	return dict
}

func (s *Session) module() *cm.Module {
	return s.Harness.Module
}

// toUint32 accepts any integer in [-2^31, 2^32).
func toUint32(b *starlark.Builtin, v starlark.Value) (value uint32, err error) {
	if i, ok := v.(starlark.Int); ok {
		if x, ok := i.Int64(); ok && x >= math.MinInt32 && x <= math.MaxUint32 {
			value = uint32(x)
			return
		}
	}

	err = &ErrValue{Builtin: b.Name(), Value: v.String()}
	return
}

func toRegister(b *starlark.Builtin, v starlark.Value) (reg cm.Register, err error) {
	switch v := v.(type) {
	case starlark.String:
		reg, err = cm.ParseRegister(string(v))
		if err == nil {
			return
		}
	case starlark.Int:
		if x, ok := v.Int64(); ok && x >= 0 && x < cm.REGISTER_COUNT {
			reg = cm.Register(x)
			return
		}
	}

	err = &ErrRegister{Builtin: b.Name(), Value: v.String()}
	return
}

func fromUint32(value uint32) starlark.Value {
	return starlark.MakeUint64(uint64(value))
}

func (s *Session) wait(thread *starlark.Thread, delay time.Duration) (err error) {
	ctx := threadContext(thread)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		err = context.Cause(ctx)
	case <-timer.C:
	}

	return
}

func (s *Session) stop(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	s.module().Control.Stop()
	return starlark.None, nil
}

func (s *Session) start(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	s.module().Control.Start()
	return starlark.None, nil
}

func (s *Session) step(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	count := 1
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "count?", &count); err != nil {
		return nil, err
	}

	for range count {
		s.module().Control.Step()
		if err := s.wait(thread, s.Harness.Settle); err != nil {
			return nil, err
		}
	}

	return starlark.None, nil
}

func (s *Session) settle(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	if err := s.wait(thread, s.Harness.Settle); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (s *Session) sleep(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var seconds starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "seconds", &seconds); err != nil {
		return nil, err
	}

	secs, ok := starlark.AsFloat(seconds)
	if !ok || secs < 0 {
		return nil, &ErrValue{Builtin: b.Name(), Value: seconds.String()}
	}

	if err := s.wait(thread, time.Duration(secs*float64(time.Second))); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (s *Session) pc(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return fromUint32(s.module().Control.PC()), nil
}

func (s *Session) setPC(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var arg starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &arg); err != nil {
		return nil, err
	}

	value, err := toUint32(b, arg)
	if err != nil {
		return nil, err
	}

	s.module().Control.SetPC(value)
	return starlark.None, nil
}

func (s *Session) reg(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var arg starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "r", &arg); err != nil {
		return nil, err
	}

	reg, err := toRegister(b, arg)
	if err != nil {
		return nil, err
	}

	return fromUint32(s.module().RegFile.Read(reg)), nil
}

func (s *Session) setReg(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var argReg, argValue starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "r", &argReg, "value", &argValue); err != nil {
		return nil, err
	}

	reg, err := toRegister(b, argReg)
	if err != nil {
		return nil, err
	}
	value, err := toUint32(b, argValue)
	if err != nil {
		return nil, err
	}

	s.module().RegFile.Write(reg, value)
	return starlark.None, nil
}

func (s *Session) regs(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	dump := s.module().RegFile.Dump()
	list := make([]starlark.Value, len(dump))
	for n, value := range dump {
		list[n] = fromUint32(value)
	}

	return starlark.NewList(list), nil
}

func (s *Session) mem(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var argAddr starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &argAddr); err != nil {
		return nil, err
	}

	addr, err := toUint32(b, argAddr)
	if err != nil {
		return nil, err
	}

	return fromUint32(s.module().Bram.ReadWord(addr)), nil
}

func (s *Session) setMem(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var argAddr, argValue starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &argAddr, "value", &argValue); err != nil {
		return nil, err
	}

	addr, err := toUint32(b, argAddr)
	if err != nil {
		return nil, err
	}
	value, err := toUint32(b, argValue)
	if err != nil {
		return nil, err
	}

	s.module().Bram.WriteWord(addr, value)
	return starlark.None, nil
}

func (s *Session) memByte(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var argAddr starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &argAddr); err != nil {
		return nil, err
	}

	addr, err := toUint32(b, argAddr)
	if err != nil {
		return nil, err
	}

	word := s.module().Bram.ReadWord(cm.WordAddress(addr))
	return starlark.MakeInt(int(cm.ExtractByte(word, addr))), nil
}

func (s *Session) setMemByte(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var argAddr starlark.Value
	var value int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &argAddr, "value", &value); err != nil {
		return nil, err
	}

	addr, err := toUint32(b, argAddr)
	if err != nil {
		return nil, err
	}
	if value < 0 || value > math.MaxUint8 {
		return nil, &ErrValue{Builtin: b.Name(), Value: starlark.MakeInt(value).String()}
	}

	bram := s.module().Bram
	word := bram.ReadWord(cm.WordAddress(addr))
	bram.WriteWord(cm.WordAddress(addr), cm.InsertByte(word, addr, uint8(value)))
	return starlark.None, nil
}

func (s *Session) loadProgram(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var words starlark.Iterable
	var argOrigin starlark.Value = starlark.MakeInt(0)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "words", &words, "origin?", &argOrigin); err != nil {
		return nil, err
	}

	origin, err := toUint32(b, argOrigin)
	if err != nil {
		return nil, err
	}

	var program []uint32
	iter := words.Iterate()
	defer iter.Done()
	var item starlark.Value
	for iter.Next(&item) {
		word, err := toUint32(b, item)
		if err != nil {
			return nil, err
		}
		program = append(program, word)
	}

	s.Harness.Load(origin, program)
	return starlark.MakeInt(len(program)), nil
}

func (s *Session) check(c harness.Check) starlark.Value {
	res := s.Harness.Check(c)
	s.Report.Add(res)
	return starlark.Bool(res.Pass())
}

func (s *Session) checkReg(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var argReg, argWant starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "r", &argReg, "want", &argWant); err != nil {
		return nil, err
	}

	reg, err := toRegister(b, argReg)
	if err != nil {
		return nil, err
	}
	want, err := toUint32(b, argWant)
	if err != nil {
		return nil, err
	}

	return s.check(harness.Reg(reg, want)), nil
}

func (s *Session) checkByte(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var argAddr starlark.Value
	var want int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &argAddr, "want", &want); err != nil {
		return nil, err
	}

	addr, err := toUint32(b, argAddr)
	if err != nil {
		return nil, err
	}
	if want < 0 || want > math.MaxUint8 {
		return nil, &ErrValue{Builtin: b.Name(), Value: starlark.MakeInt(want).String()}
	}

	return s.check(harness.Byte(addr, uint8(want))), nil
}

func (s *Session) checkWord(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var argAddr, argWant starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &argAddr, "want", &argWant); err != nil {
		return nil, err
	}

	addr, err := toUint32(b, argAddr)
	if err != nil {
		return nil, err
	}
	want, err := toUint32(b, argWant)
	if err != nil {
		return nil, err
	}

	return s.check(harness.Word(addr, want)), nil
}

func (s *Session) report(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.Tuple{
		starlark.MakeInt(s.Report.Passed()),
		starlark.MakeInt(s.Report.Failed()),
	}, nil
}
