// Command rotterdb is the RotterDB console and one-shot statement runner.
package main

import (
	"os"

	"rotterDB/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
