package main

import (
	"os"

	"github.com/Vorticode/expect.js/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
