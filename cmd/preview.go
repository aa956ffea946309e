package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/logger"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated daily tasks for one or more tracks (no database)",
	Long: `Generate one daily task per track at the given level.

This is a stateless developer tool: no database, no session, no events.
Useful for evaluating task quality and testing prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringSlice("track", nil, "Track IDs to preview (default: all)")
	previewCmd.Flags().Int("level", 1, "Roadmap level (1-3)")
	previewCmd.Flags().String("lang", "en", "Language: ar or en")
}

func runPreview(cmd *cobra.Command, args []string) error {
	trackVals, _ := cmd.Flags().GetStringSlice("track")
	level, _ := cmd.Flags().GetInt("level")
	langVal, _ := cmd.Flags().GetString("lang")

	if level < 1 || level > catalog.RoadmapLevels {
		return fmt.Errorf("invalid level %d: must be between 1 and %d", level, catalog.RoadmapLevels)
	}
	lang, err := catalog.ParseLanguage(langVal)
	if err != nil {
		return err
	}

	specs := catalog.AllSpecializations()
	if len(trackVals) > 0 {
		specs = specs[:0:0]
		for _, v := range trackVals {
			spec, err := catalog.ParseSpecialization(v)
			if err != nil {
				return err
			}
			specs = append(specs, spec)
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// No EventRepo: logging skipped.
	ctx := cmd.Context()
	m, err := buildMentor(ctx, cmd, cfg, nil, logger.Nop())
	if err != nil {
		return err
	}

	fmt.Printf("Generating level %d tasks for %d tracks...\n\n", level, len(specs))
	items, err := m.Preview(ctx, specs, level, lang)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	var failed int
	for _, it := range items {
		fmt.Printf("── %s ──\n", it.Spec)
		if it.Err != nil {
			failed++
			fmt.Printf("\033[31m✗ generation failed:\033[0m %v\n\n", it.Err)
			continue
		}
		fmt.Println(it.Task.Title)
		fmt.Println(strings.TrimSpace(it.Task.Description))
		if it.Task.Skill != "" {
			fmt.Printf("Skill: %s\n", it.Task.Skill)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d generated ──\n", len(items)-failed, len(items))
	return nil
}
