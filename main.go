// The main package for the webgraph executable.
package main

import (
	"github.com/grrrrrrh/web-crawler-bd/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
