// Command queuectl is a persistent, priority- and schedule-aware
// background job queue with worker-pool execution, exponential-backoff
// retry and a dead-letter queue.
package main

import (
	"fmt"
	"os"

	"github.com/HariniKartheeswaran/queuectl/cli"
)

func main() {
	if err := cli.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "queuectl:", err)
		os.Exit(1)
	}
}
