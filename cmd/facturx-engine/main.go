package main

import (
	"os"

	"github.com/rezonia/facturx-engine/cmd/facturx-engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
