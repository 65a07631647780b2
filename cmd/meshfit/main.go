// Command meshfit evaluates scene files and point clouds and reports their
// approximate minimum enclosing sphere.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
