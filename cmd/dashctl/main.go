// Command dashctl is an operator tool for inspecting referral exports
// offline: the status lifecycle, commission totals and share message
// rendering.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
