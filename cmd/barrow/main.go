// Command barrow draws progress bars over sample and file-backed workloads.
package main

import (
	"os"

	"github.com/meigma/barrow/cmd/barrow/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
