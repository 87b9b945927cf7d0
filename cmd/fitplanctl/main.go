package main

import (
	"fmt"
	"os"

	"alcyxob/fitplan/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(cli.NewApp()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
