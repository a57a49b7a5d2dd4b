package commands

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func getCmd(api *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Print the person with the given id as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Errorf("invalid id %q", args[0])
			}
			status, body, _, err := api.send(http.MethodGet, fmt.Sprintf("/persons/%d", id), nil)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return responseError(status, body)
			}
			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
}
