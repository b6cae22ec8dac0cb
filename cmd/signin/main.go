package main

import (
	"os"

	"signin/cmd/signin/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
