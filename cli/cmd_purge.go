package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	gcli "oss.nandlabs.io/golly/cli"
)

func newPurgeCommand() *gcli.Command {
	cmd := gcli.NewCommand("purge", "Permanently remove completed jobs", version, runPurge)
	cmd.Flags = []*gcli.Flag{
		{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt", Default: "false"},
	}
	return cmd
}

func runPurge(ctx *gcli.Context) error {
	skipConfirm := false
	if v, ok := ctx.GetFlag("yes"); ok && v == "true" {
		skipConfirm = true
	}

	if !skipConfirm {
		fmt.Print("This will permanently remove all completed jobs. Continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted")
			return nil
		}
	}

	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	n, err := rt.manager.PurgeCompleted(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Purged %d completed job(s)\n", n)
	return nil
}
