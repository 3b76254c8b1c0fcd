package main

import (
	"os"

	"github.com/cajal/microns-kit/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
