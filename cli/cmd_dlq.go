package cli

import (
	"context"
	"fmt"
	"os"

	gcli "oss.nandlabs.io/golly/cli"
	"github.com/google/uuid"

	"github.com/HariniKartheeswaran/queuectl/job"
)

func newDlqCommand() *gcli.Command {
	cmd := gcli.NewCommand("dlq", "Dead Letter Queue management", version, nil)
	cmd.AddSubCommand(gcli.NewCommand("list", "View DLQ jobs", version, runDlqList))
	cmd.AddSubCommand(gcli.NewCommand("retry", "Retry a DLQ job", version, runDlqRetry))
	return cmd
}

func runDlqList(ctx *gcli.Context) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	jobs, err := rt.manager.ListJobs(context.Background(), job.Dlq, 0)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("Dead Letter Queue is empty")
		return nil
	}
	fmt.Printf("\nDead Letter Queue (%d jobs)\n", len(jobs))
	fmt.Println(divider(100))
	for _, j := range jobs {
		fmt.Printf("\nJob ID: %s\n", j.Id)
		fmt.Printf("Command: %s\n", j.Command)
		fmt.Printf("Attempts: %d/%d\n", j.Attempts, j.MaxRetries)
		errMsg := j.Error
		if errMsg == "" {
			errMsg = "Unknown"
		}
		fmt.Printf("Last Error: %s\n", truncate(errMsg, 100))
		fmt.Printf("Created: %s\n", j.CreatedAt.Format(timeLayout))
		if j.DlqAt != nil {
			fmt.Printf("Failed: %s\n", j.DlqAt.Format(timeLayout))
		} else {
			fmt.Println("Failed: N/A")
		}
		fmt.Println(divider(100))
	}
	return nil
}

func runDlqRetry(ctx *gcli.Context) error {
	pos := positionals(os.Args[1:], []string{"dlq", "retry"}, map[string]bool{})
	if len(pos) == 0 {
		return fmt.Errorf("dlq retry: missing <job_id> argument")
	}
	id, err := uuid.Parse(pos[0])
	if err != nil {
		return fmt.Errorf("dlq retry: invalid job id %q", pos[0])
	}

	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	j, err := rt.manager.GetJob(context.Background(), id)
	if err != nil {
		return err
	}
	if j == nil {
		fmt.Fprintf(os.Stderr, "ERROR: Job %s not found\n", id)
		return nil
	}
	if j.Status != job.Dlq {
		fmt.Fprintf(os.Stderr, "ERROR: Job %s is not in DLQ (current state: %s)\n", id, j.Status)
		return nil
	}
	ok, err := rt.manager.RetryJob(context.Background(), id)
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("SUCCESS: Job %s has been moved from DLQ back to pending queue\n", id)
	} else {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to retry job %s\n", id)
	}
	return nil
}
