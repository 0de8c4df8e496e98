package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/productfactory/api/products"
	"github.com/kilianp07/productfactory/app"
)

func newTypesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the available product types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quietLogs(cmd, o)
			reg, err := app.BuildRegistry(o.cfg.Catalog, nil, nil)
			if err != nil {
				return err
			}
			for _, tag := range reg.AvailableTypes() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", tag, products.Label(tag)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
