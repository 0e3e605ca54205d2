// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package harness brings up a control module: it halts the core, loads a
// program into block memory, lets the core run (or steps it one
// instruction at a time), and compares registers and memory against the
// expected results.
package harness
