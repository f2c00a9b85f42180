package main

import (
	"os"

	"github.com/ib823/benteng-sdk/cmd/benteng/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
