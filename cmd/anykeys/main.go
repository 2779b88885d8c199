// anykeys manages the SSH key pairs of a compute provider from the command line.
package main

import (
	"os"

	"github.com/SebastienDorgan/anykeys"
)

var version = "dev" // set by the linker

func main() {
	cmd := newRootCmd(anykeys.Load)
	cmd.Version = version
	if err := cmd.Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}
