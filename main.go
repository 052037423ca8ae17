// The main package for the sarwrangler executable.
package main

import (
	"github.com/gcouto/sarwrangler/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
