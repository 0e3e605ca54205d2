// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package harness

import (
	"io"

	"github.com/ezrec/rvcm/cm"
	"github.com/ezrec/rvcm/translate"
)

// CheckKind selects what a Check compares.
type CheckKind int

const (
	CHECK_REG  CheckKind = iota // A register file slot.
	CHECK_BYTE                  // One byte of block memory.
	CHECK_WORD                  // One word of block memory.
)

// Check is one expected value.
type Check struct {
	Kind CheckKind
	Reg  cm.Register // CHECK_REG
	Addr uint32      // CHECK_BYTE and CHECK_WORD, block memory offset.
	Want uint32
}

// Reg expects register reg to hold want.
func Reg(reg cm.Register, want uint32) Check {
	return Check{Kind: CHECK_REG, Reg: reg, Want: want}
}

// Byte expects the block memory byte at addr to hold want.
func Byte(addr uint32, want uint8) Check {
	return Check{Kind: CHECK_BYTE, Addr: addr, Want: uint32(want)}
}

// Word expects the block memory word at addr to hold want.
func Word(addr uint32, want uint32) Check {
	return Check{Kind: CHECK_WORD, Addr: addr, Want: want}
}

// Result is a Check with the value observed on the hardware.
type Result struct {
	Check
	Got  uint32
	Word uint32 // Containing word of a CHECK_BYTE.
}

// Pass reports whether the observed value is the expected one.
func (res Result) Pass() bool {
	return res.Got == res.Want
}

func (res Result) String() string {
	pass := res.Pass()

	switch res.Kind {
	case CHECK_REG:
		if pass {
			return translate.From("[PASS] Reg x%d = 0x%08X", uint8(res.Reg), res.Got)
		}
		return translate.From("[FAIL] Reg x%d. Exp: 0x%08X, Got: 0x%08X", uint8(res.Reg), res.Want, res.Got)
	case CHECK_BYTE:
		if pass {
			return translate.From("[PASS] Mem[0x%02X] = 0x%02X", res.Addr, res.Got)
		}
		return translate.From("[FAIL] Mem[0x%02X]. Exp: 0x%02X, Got: 0x%02X (Word: 0x%08X)", res.Addr, res.Want, res.Got, res.Word)
	default:
		if pass {
			return translate.From("[PASS] Mem[0x%02X] = 0x%08X", res.Addr, res.Got)
		}
		return translate.From("[FAIL] Mem[0x%02X]. Exp: 0x%08X, Got: 0x%08X", res.Addr, res.Want, res.Got)
	}
}

// Report collects the results of a scenario.
type Report struct {
	Results []Result
}

// Add a result.
func (rep *Report) Add(res ...Result) {
	rep.Results = append(rep.Results, res...)
}

// Passed is the number of passing results.
func (rep *Report) Passed() (count int) {
	for _, res := range rep.Results {
		if res.Pass() {
			count++
		}
	}
	return
}

// Failed is the number of failing results.
func (rep *Report) Failed() int {
	return len(rep.Results) - rep.Passed()
}

// OK reports whether no result failed.
func (rep *Report) OK() bool {
	return rep.Failed() == 0
}

// WriteTo writes one line per result, then a summary line.
func (rep *Report) WriteTo(w io.Writer) (total int64, err error) {
	for _, res := range rep.Results {
		var n int
		n, err = translate.Fprintf(w, "%v\n", res)
		total += int64(n)
		if err != nil {
			return
		}
	}

	n, err := translate.Fprintf(w, "%d passed, %d failed\n", rep.Passed(), rep.Failed())
	total += int64(n)
	return
}

var _ io.WriterTo = (*Report)(nil)
