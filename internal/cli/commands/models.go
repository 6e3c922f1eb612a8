package commands

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Molkars/aio/pkg/types"
)

// NewModelsCommand creates the models command.
func NewModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the project's validated models",
		Long:  `Validate the project and print every model with its fields.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := RuntimeFrom(cmd.Context())

			p, err := rt.LoadProject()
			if err != nil {
				return err
			}
			registry, err := p.Check(types.NewStore())
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Model", "Field", "Type", "Optional", "Arg"})
			for _, model := range registry.Models() {
				for _, field := range model.Fields {
					arg := ""
					if field.Arg != nil {
						arg = strconv.FormatUint(*field.Arg, 10)
					}
					t.AppendRow(table.Row{model.Name, field.Name, field.Type.Name(), field.Optional, arg})
				}
			}
			t.Render()
			return nil
		},
	}
}
