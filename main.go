package main

import (
	"os"

	"github.com/techimbue/website/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
