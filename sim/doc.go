// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package sim simulates the control module hardware: a small RV32I core,
// its block memory, and the control slave decoding the register map used
// by package cm.
//
// The Peripheral implements bus.Bus, so the cm ports, the verification
// harness and the command line tool can run against it unchanged.
// While running, the core executes on its own goroutine; every bus
// transaction is serialised with instruction execution.
package sim
