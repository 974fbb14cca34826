package cli

import (
	"fmt"
	"os"
	"sort"

	gcli "oss.nandlabs.io/golly/cli"

	"github.com/HariniKartheeswaran/queuectl/config"
)

func newConfigCommand() *gcli.Command {
	cmd := gcli.NewCommand("config", "View or change persisted configuration", version, nil)
	cmd.AddSubCommand(gcli.NewCommand("get", "Show one or all configuration values", version, runConfigGet))
	cmd.AddSubCommand(gcli.NewCommand("set", "Persist a configuration value", version, runConfigSet))
	return cmd
}

func runConfigGet(ctx *gcli.Context) error {
	pos := positionals(os.Args[1:], []string{"config", "get"}, map[string]bool{})

	store, err := config.Open(configDocPath)
	if err != nil {
		return err
	}

	if len(pos) == 0 {
		all := store.All()
		if len(all) == 0 {
			fmt.Println("No configuration overrides set (using compiled defaults / environment)")
			return nil
		}
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-20s = %v\n", k, all[k])
		}
		return nil
	}

	canonical, value, found, err := store.Get(pos[0])
	if err != nil {
		return err
	}
	if !found {
		fmt.Printf("%s is not set (using compiled default / environment)\n", canonical)
		return nil
	}
	fmt.Printf("%s = %v\n", canonical, value)
	return nil
}

func runConfigSet(ctx *gcli.Context) error {
	pos := positionals(os.Args[1:], []string{"config", "set"}, map[string]bool{})
	if len(pos) < 2 {
		return fmt.Errorf("config set: usage: config set <key> <value>")
	}

	store, err := config.Open(configDocPath)
	if err != nil {
		return err
	}
	canonical, parsed, err := store.Set(pos[0], pos[1])
	if err != nil {
		return err
	}
	fmt.Printf("SUCCESS: %s = %v\n", canonical, parsed)
	return nil
}
