package config

import (
	"fmt"
	"os"
)

// Exitf reports a fatal error on stderr and terminates the process with a
// failing status. Command entry points call it when startup cannot
// continue.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
