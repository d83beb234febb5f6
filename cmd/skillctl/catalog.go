package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oggyb/skillswap/internal/catalog"
	"github.com/oggyb/skillswap/internal/config"
)

var flagCatalogCategory string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the skill catalog",
	Long: `Print the skill catalog the server validates profiles against.
Reads CATALOG_PATH, or the embedded catalog when unset.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&flagCatalogCategory, "category", "", "Only list skills of this category")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	cat, err := catalog.Load(config.New().Catalog.Path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if flagCatalogCategory != "" {
		skills, err := cat.SkillsIn(flagCatalogCategory)
		if err != nil {
			return err
		}
		for _, s := range skills {
			fmt.Fprintln(out, s)
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tSKILLS\tEXAMPLES")
	for _, c := range cat.Categories() {
		examples := c.Skills
		if len(examples) > 3 {
			examples = examples[:3]
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.Name, len(c.Skills), strings.Join(examples, ", "))
	}
	return w.Flush()
}
