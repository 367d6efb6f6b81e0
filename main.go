package main

import (
	"os"

	"github.com/abhisek/xptrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
