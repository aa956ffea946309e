package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/educareer/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the career tracks",
	RunE: func(cmd *cobra.Command, args []string) error {
		langVal, _ := cmd.Flags().GetString("lang")
		lang, err := catalog.ParseLanguage(langVal)
		if err != nil {
			return err
		}
		levels, _ := cmd.Flags().GetBool("levels")

		for _, info := range catalog.Default().All() {
			fmt.Printf("%-14s  %s\n", info.ID, info.Title.In(lang))
			fmt.Printf("    %s\n", info.Description.In(lang))
			fmt.Printf("    2026: %s\n", info.Demand2026.In(lang))
			fmt.Printf("    %s\n", strings.Join(info.Skills, ", "))
			if !levels {
				fmt.Println()
				continue
			}
			for _, lvl := range info.Roadmap {
				fmt.Printf("    L%d %s: %s\n", lvl.ID, lvl.Title, strings.Join(lvl.Modules, ", "))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().String("lang", "en", "Language: ar or en")
	catalogCmd.Flags().Bool("levels", false, "Show the modules of every level")
}
