package main

import (
	"os"

	"github.com/laraforge/laraforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
