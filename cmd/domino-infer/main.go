// Command domino-infer is a demo CLI around package domino: it replays a
// JSON-lines observation log and prints the resulting marginal table,
// exercising the whole inference stack end to end the way the teacher's
// cmd/ocpd exercises its ABCI application.
package main

import (
	"os"

	"github.com/ocp-domino/domino-infer/cmd/domino-infer/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
