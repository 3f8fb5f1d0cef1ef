package main

import (
	"fmt"
	"os"

	"github.com/subosito/gotenv"

	"github.com/gfranco7/viaticos-platform/internal/commands"
)

func main() {
	// Local overrides (e.g. VIATICOS_API_URL) may live in a .env file.
	_ = gotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
