// Package cli assembles queuectl's command surface on top of
// oss.nandlabs.io/golly/cli, grounded on
// _examples/nandlabs-golly/cli's Command/Flag/Context framework.
package cli

import (
	gcli "oss.nandlabs.io/golly/cli"
)

// version is reported by golly/cli's built-in --version / -v handling
// for both the root CLI and each individual command.
const version = "1.0.0"

// New assembles every queuectl subcommand into a golly CLI instance.
func New() *gcli.CLI {
	app := gcli.NewCLI()
	app.AddVersion(version)

	app.AddCommand(newEnqueueCommand())
	app.AddCommand(newWorkerCommand())
	app.AddCommand(newStatusCommand())
	app.AddCommand(newListCommand())
	app.AddCommand(newDlqCommand())
	app.AddCommand(newCancelCommand())
	app.AddCommand(newGetCommand())
	app.AddCommand(newConfigCommand())
	app.AddCommand(newDashboardCommand())
	app.AddCommand(newPurgeCommand())

	return app
}

// Run executes queuectl against os.Args, the single entry point called
// by cmd/queuectl/main.go.
func Run() error {
	return New().Execute()
}
