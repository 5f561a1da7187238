package main

import (
	"fmt"
	"os"

	"github.com/vidyasagar/deskup/internal/commands"
	"github.com/vidyasagar/deskup/internal/logging"
)

func main() {
	err := commands.New().Execute()
	logging.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
