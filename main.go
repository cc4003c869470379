package main

import (
	"os"

	"github.com/mkorolev/skill-scout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
