package cli

import (
	"context"
	"fmt"

	gcli "oss.nandlabs.io/golly/cli"

	"github.com/HariniKartheeswaran/queuectl/job"
)

func newStatusCommand() *gcli.Command {
	return gcli.NewCommand("status", "Show summary of all job states", version, runStatus)
}

func runStatus(ctx *gcli.Context) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	stats, err := rt.manager.GetStats(context.Background())
	if err != nil {
		return err
	}

	fmt.Println("\nQueue Status")
	fmt.Println(divider(60))
	fmt.Printf("Total Jobs:       %d\n", stats.Total)
	fmt.Printf("Pending:          %d\n", stats.Pending)
	fmt.Printf("Scheduled:        %d\n", stats.Scheduled)
	fmt.Printf("Running:          %d\n", stats.Running)
	fmt.Printf("Completed:        %d\n", stats.Completed)
	fmt.Printf("Failed:           %d\n", stats.Failed)
	fmt.Printf("Dead Letter:      %d\n", stats.Dlq)
	fmt.Printf("Cancelled:        %d\n", stats.Cancelled)
	fmt.Printf("\nSuccess Rate:     %.1f%%\n", stats.SuccessRate)
	fmt.Printf("Avg Exec Time:    %.2fs\n", stats.AvgExecutionTime)
	fmt.Println()

	running, err := rt.manager.ListJobs(context.Background(), job.Running, 0)
	if err != nil {
		return err
	}
	if len(running) == 0 {
		fmt.Println("Active Workers: 0")
		return nil
	}
	fmt.Printf("Active Workers: %d\n", len(running))
	for _, j := range running {
		wid := "unknown"
		if j.WorkerId != nil {
			wid = *j.WorkerId
		}
		fmt.Printf("  - %s: %s\n", wid, truncate(j.Command, 50))
	}
	return nil
}

// timeLayout is the human-readable timestamp format shared by the dlq
// and get views.
const timeLayout = "2006-01-02 15:04:05"

func divider(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '='
	}
	return string(b)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
