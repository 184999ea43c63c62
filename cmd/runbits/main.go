// Command runbits inspects and manipulates stored run-length bitsets.
//
// Arguments name files by default. With --dir or --store they name bitsets
// in a catalog instead:
//
//	runbits inspect users.rlb
//	runbits --store s3://bucket/prefix op and active premium active-premium
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
