// Command aio is the schema and query toolchain CLI.
package main

import (
	"os"

	"github.com/Molkars/aio/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
