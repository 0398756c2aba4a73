package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/barcut/internal/model"
	"github.com/piwi3910/barcut/internal/project"
)

// newStockCommand groups the commands that edit the stock catalog, which
// maps materials to the bar length kept on the rack.
func newStockCommand(opts *Options) *cobra.Command {
	return newGroupCommand("stock", "Manage per-material stock bar lengths",
		newStockListCommand(opts),
		newStockSetCommand(opts),
		newStockImportCommand(opts),
	)
}

func newStockListCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalogued materials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMaterial\tName\tBar Length")
			for _, m := range opts.Catalog.Materials() {
				p := opts.Catalog.FindByMaterial(m)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", p.ID, p.Material, p.Name, p.BarLength)
			}
			return tw.Flush()
		},
	}
}

func newStockSetCommand(opts *Options) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "set <material> <bar-length>",
		Short: "Add or change the bar length for a material",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := strconv.ParseFloat(args[1], 64)
			if err != nil || length <= 0 {
				return fmt.Errorf("bar length must be a positive number, got %q", args[1])
			}
			if name == "" {
				name = model.NormalizeMaterial(args[0])
			}

			opts.Catalog.Upsert(model.NewStockPreset(name, args[0], length))
			if err := project.SaveCatalog(opts.CatalogPath, opts.Catalog); err != nil {
				return fmt.Errorf("write stock catalog: %w", err)
			}
			LoggerFromContext(cmd.Context()).Info("stock saved", "material", model.NormalizeMaterial(args[0]), "bar_length", length)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name for the preset")
	return cmd
}

func newStockImportCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge presets from another catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := project.ImportCatalog(args[0], opts.Catalog)
			if err != nil {
				return fmt.Errorf("import stock catalog: %w", err)
			}
			if err := project.SaveCatalog(opts.CatalogPath, merged); err != nil {
				return fmt.Errorf("write stock catalog: %w", err)
			}
			opts.Catalog = merged
			LoggerFromContext(cmd.Context()).Info("stock imported", "from", args[0], "stocks", len(merged.Stocks))
			return nil
		},
	}
}
