package main

import (
	"os"

	"github.com/tracewell/tracewell/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
