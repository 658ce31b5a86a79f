// Command footprint drives the digital-footprint protection engine: person
// and broker management, scanning, opt-out removal, verification, and the
// scheduled job runner. Entry point only — command definitions live
// alongside their subject matter in this package.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
