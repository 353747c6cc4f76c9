package main

import (
	"os"

	"hacross/cmd/hacross/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
