// Command polyedit edits meshes kept in a document folder.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "polyedit:", err)
		os.Exit(1)
	}
}
