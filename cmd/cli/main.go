package main

import (
	"os"

	"github.com/unilife-dev/unilife/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
