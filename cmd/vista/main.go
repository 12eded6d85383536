package main

import (
	"os"

	"github.com/go-vista/vista/cmd/vista/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
