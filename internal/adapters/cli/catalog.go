package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the world reference tables",
		Long: `Show the static world tables: cities, truck models and licenses.

Examples:
  trucklife catalog cities
  trucklife catalog trucks
  trucklife catalog licenses`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "cities",
		Short: "List cities and their distance from the first city",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCities(cmd.OutOrStdout(), world.DefaultCatalog())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "trucks",
		Short: "List truck models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeTruckModels(cmd.OutOrStdout(), world.DefaultCatalog())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "licenses",
		Short: "List license categories and their requirements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeLicenses(cmd.OutOrStdout(), world.DefaultCatalog())
		},
	})

	return cmd
}

func writeCities(out io.Writer, catalog *world.Catalog) error {
	origin := catalog.Cities[0]

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tName\tX\tY\tFrom %s\n", origin.Name)
	for _, city := range catalog.Cities {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%.0f\t%.0fkm\n", city.ID, city.Name, city.X, city.Y, catalog.Distance(origin, city))
	}
	return w.Flush()
}

func writeTruckModels(out io.Writer, catalog *world.Catalog) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTruck\tYear\tHP\tL/100km\tCapacity\tLicense\tPrice")
	for _, m := range catalog.TruckModels {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0f\t%dkg\t%s\t%s\n",
			m.ID, m.DisplayName(), m.Year, m.HP, m.Consumption, m.Capacity, m.Category, shared.FormatMoney(m.BasePrice))
	}
	return w.Flush()
}

func writeLicenses(out io.Writer, catalog *world.Catalog) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "License\tDescription\tMin level\tFee")
	for _, category := range world.AllLicenseCategories() {
		req, _ := catalog.Requirement(category)
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", category, category.Description(), req.MinLevel, shared.FormatMoney(req.Cost))
	}
	return w.Flush()
}
