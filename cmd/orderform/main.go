// Command orderform builds order forms from deal documents.
package main

import (
	"os"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
