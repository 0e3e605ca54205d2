// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package bus provides 32-bit word access to the physical address space in
// which the RISC-V control module and its block memory are mapped.
//
// A Bus has no failure channel: every transaction is assumed to complete.
// Backends that sit on a transport which can fail (Serial) latch the first
// error and report it through Err().
//
// Backends:
//   - Memory: a sparse word store that records every transaction.
//   - Mmap: windows of /dev/mem mapped into the process.
//   - Serial: a client for the serial bridge protocol served by Serve.
//
// Decorators:
//   - Trace: logs every transaction.
//   - Locked: serialises transactions from multiple goroutines.
package bus
