// Package commands defines the command line client of the persons service.
//
// Commands
//
//   - bench    Measure the latency of POST, PUT, GET and DELETE requests
//   - import   Create the persons contained in a JSON or YAML file
//   - get      Print a single person
package commands

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// Execute runs the client with the process arguments.
func Execute() error {
	return newRootCmd().Execute()
}

// newRootCmd builds the command tree. Subcommands share one API client, created once the flags
// are parsed.
func newRootCmd() *cobra.Command {
	var serverURL string
	var timeout time.Duration
	api := &apiClient{}

	root := &cobra.Command{
		Use:          "client",
		Short:        "Command line client of the persons service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			api.base = serverURL
			api.http = &http.Client{Timeout: timeout}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the persons service")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "timeout of a single request")

	root.AddCommand(benchCmd(api), importCmd(api), getCmd(api))
	return root
}
