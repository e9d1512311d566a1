package main

import (
	"fmt"
	"os"

	"github.com/sadopc/mindful/internal/cli"
	"github.com/sadopc/mindful/internal/config"
)

func main() {
	if err := cli.NewRootCommand(config.Load).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
