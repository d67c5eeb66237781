//go:build !testcoverage

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args, DefaultConfig()); err != nil {
		fatal("%v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ssbkeys: "+format+"\n", args...)
	os.Exit(1)
}
