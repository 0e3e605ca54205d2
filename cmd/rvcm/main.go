// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command rvcm controls and verifies a RISC-V soft core through its
// control module.
package main

import (
	"os"
)

func main() {
	err := Execute()
	if err != nil {
		os.Exit(1)
	}
}
