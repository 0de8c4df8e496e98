package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/productfactory/app"
	"github.com/kilianp07/productfactory/core/catalog"
	"github.com/kilianp07/productfactory/core/product"
	"github.com/kilianp07/productfactory/infra/logger"
	"github.com/kilianp07/productfactory/pkg/export"
)

func newCreateCmd(o *options) *cobra.Command {
	var (
		tag    string
		fields []string
		clone  bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product and print it",
		Example: "  productfactory create --type book --field name=Dune --field price=12.5 " +
			"--field author=Herbert --field pages=412",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quietLogs(cmd, o)
			raw, err := parseFields(fields)
			if err != nil {
				return err
			}
			reg, err := app.BuildRegistry(o.cfg.Catalog, nil, nil)
			if err != nil {
				return err
			}
			cat := catalog.New(reg, catalog.WithLogger(logger.New("catalog")))
			e, err := cat.Create(tag, raw)
			if err != nil {
				return err
			}
			if clone {
				if _, err := cat.Clone(e.ID()); err != nil {
					return err
				}
			}
			return writeEntries(cmd, output, cat.List())
		},
	}
	cmd.Flags().StringVarP(&tag, "type", "t", "", "product type")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "field as key=value, repeatable")
	cmd.Flags().BoolVar(&clone, "clone", false, "also clone the created product")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json, csv or yaml")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func parseFields(pairs []string) (product.RawData, error) {
	raw := product.RawData{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid field %q, want key=value", p)
		}
		raw[k] = v
	}
	return raw, nil
}

func writeEntries(cmd *cobra.Command, output string, entries []catalog.Entry) error {
	out := cmd.OutOrStdout()
	if output == "" || output == "text" {
		for _, e := range entries {
			if _, err := fmt.Fprintf(out, "%s  %s\n", e.ID(), e.Product.Describe()); err != nil {
				return err
			}
		}
		return nil
	}
	return export.Write(out, export.Format(output), export.FromEntries(entries))
}

// quietLogs keeps command output clean by sending console logs to stderr.
func quietLogs(cmd *cobra.Command, o *options) {
	if o.cfg.Logging.File == "" {
		logger.SetOutput(cmd.ErrOrStderr())
	}
}
