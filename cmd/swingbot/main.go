package main

import (
	"fmt"
	"os"

	"github.com/rustyeddy/swingbot/cmd/swingbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
