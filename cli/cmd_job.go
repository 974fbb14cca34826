package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	gcli "oss.nandlabs.io/golly/cli"
	"github.com/google/uuid"

	"github.com/HariniKartheeswaran/queuectl/job"
)

func newCancelCommand() *gcli.Command {
	return gcli.NewCommand("cancel", "Cancel a pending or scheduled job", version, runCancel)
}

func runCancel(ctx *gcli.Context) error {
	pos := positionals(os.Args[1:], []string{"cancel"}, map[string]bool{})
	if len(pos) == 0 {
		return fmt.Errorf("cancel: missing <job_id> argument")
	}
	id, err := uuid.Parse(pos[0])
	if err != nil {
		return fmt.Errorf("cancel: invalid job id %q", pos[0])
	}

	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	ok, err := rt.manager.CancelJob(context.Background(), id)
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("SUCCESS: Job %s has been cancelled\n", id)
	} else {
		fmt.Fprintf(os.Stderr, "ERROR: Job %s could not be cancelled (it is not pending or scheduled)\n", id)
	}
	return nil
}

func newGetCommand() *gcli.Command {
	cmd := gcli.NewCommand("get", "Show detailed information for a job", version, runGet)
	cmd.Flags = []*gcli.Flag{
		{Name: "json", Usage: "Emit raw JSON instead of a formatted view", Default: "false"},
	}
	return cmd
}

func runGet(ctx *gcli.Context) error {
	pos := positionals(os.Args[1:], []string{"get"}, map[string]bool{"json": true})
	if len(pos) == 0 {
		return fmt.Errorf("get: missing <job_id> argument")
	}
	id, err := uuid.Parse(pos[0])
	if err != nil {
		return fmt.Errorf("get: invalid job id %q", pos[0])
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

	if v, ok := ctx.GetFlag("json"); ok && v == "true" {
		out, merr := json.MarshalIndent(j, "", "  ")
		if merr != nil {
			return merr
		}
		fmt.Println(string(out))
		return nil
	}

	printJobDetail(j)
	return nil
}

func printJobDetail(j *job.Job) {
	fmt.Printf("\nJob: %s\n", j.Id)
	fmt.Println(divider(60))
	fmt.Printf("Command:    %s\n", j.Command)
	fmt.Printf("State:      %s\n", j.Status)
	fmt.Printf("Priority:   %d\n", j.Priority)
	fmt.Printf("Attempts:   %d/%d\n", j.Attempts, j.MaxRetries)
	fmt.Printf("Created:    %s\n", j.CreatedAt.Format(timeLayout))
	if j.RunAt != nil {
		fmt.Printf("Run At:     %s\n", j.RunAt.Format(timeLayout))
	}
	if j.StartedAt != nil {
		fmt.Printf("Started:    %s\n", j.StartedAt.Format(timeLayout))
	}
	if j.CompletedAt != nil {
		fmt.Printf("Completed:  %s\n", j.CompletedAt.Format(timeLayout))
	}
	if j.RetryAfter != nil {
		fmt.Printf("Retry At:   %s\n", j.RetryAfter.Format(timeLayout))
	}
	if j.DlqAt != nil {
		fmt.Printf("DLQ At:     %s\n", j.DlqAt.Format(timeLayout))
	}
	if j.CancelledAt != nil {
		fmt.Printf("Cancelled:  %s\n", j.CancelledAt.Format(timeLayout))
	}
	if j.WorkerId != nil {
		fmt.Printf("Worker:     %s\n", *j.WorkerId)
	}
	if j.ExecutionTime != nil {
		fmt.Printf("Exec Time:  %.2fs\n", *j.ExecutionTime)
	}
	if j.Timeout != nil {
		fmt.Printf("Timeout:    %ds\n", *j.Timeout)
	}
	if j.Output != "" {
		fmt.Printf("\nOutput:\n%s\n", j.Output)
	}
	if j.Error != "" {
		fmt.Printf("\nError:\n%s\n", j.Error)
	}
}
