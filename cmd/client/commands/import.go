package commands

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gitlab.com/dirk.krummacker/persons-service/pkg/model"
)

func importCmd(api *apiClient) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create the persons contained in a JSON or YAML file",
		Long: "Create the persons contained in a JSON or YAML file. The file holds either a single " +
			"person or a list of persons; the format is derived from the extension (.json, .yaml, .yml).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			persons, err := model.Parse(args[0], data)
			if err != nil {
				return err
			}
			for i, p := range persons {
				if dryRun {
					encoded, err := p.JSON()
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
					continue
				}
				record, _, err := api.create(p)
				if err != nil {
					return errors.Wrapf(err, "person %d of %s", i+1, args[0])
				}
				logrus.WithFields(logrus.Fields{"id": record.Id, "name": p.GetFirstName() + " " + p.GetLastName()}).
					Debug("person created")
				fmt.Fprintln(cmd.OutOrStdout(), record.Id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the persons as JSON instead of creating them")
	return cmd
}
