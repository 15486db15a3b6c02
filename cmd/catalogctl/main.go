package main

import (
	"os"

	"github.com/meridian-data/catalogd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
