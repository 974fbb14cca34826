package cli

import (
	"context"
	"fmt"
	"strconv"

	gcli "oss.nandlabs.io/golly/cli"

	"github.com/HariniKartheeswaran/queuectl/job"
)

func newListCommand() *gcli.Command {
	cmd := gcli.NewCommand("list", "List jobs by state", version, runList)
	cmd.Flags = []*gcli.Flag{
		{Name: "state", Aliases: []string{"s"}, Usage: "Filter by state", Default: ""},
		{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum number of jobs to display", Default: "20"},
	}
	return cmd
}

func runList(ctx *gcli.Context) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}

	status := job.Unknown
	if v, ok := ctx.GetFlag("state"); ok && v != "" {
		s, perr := job.ParseStatus(v)
		if perr != nil {
			return fmt.Errorf("list: %w", perr)
		}
		status = s
	}

	limit := 20
	if v, ok := ctx.GetFlag("limit"); ok && v != "" {
		n, perr := strconv.Atoi(v)
		if perr != nil {
			return fmt.Errorf("list: invalid --limit %q", v)
		}
		limit = n
	}

	jobs, err := rt.manager.ListJobs(context.Background(), status, limit)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return nil
	}

	fmt.Printf("\nJobs List (%d total)\n", len(jobs))
	fmt.Println(divider(100))
	fmt.Printf("%-36s %-12s %-10s %-12s %-30s\n", "ID", "State", "Priority", "Attempts", "Command")
	fmt.Println(divider(100))
	for _, j := range jobs {
		fmt.Printf("%-36s %-12s %-10d %-12s %-30s\n",
			j.Id.String(), j.Status.String(), j.Priority,
			fmt.Sprintf("%d/%d", j.Attempts, j.MaxRetries), truncate(j.Command, 29))
	}
	return nil
}
