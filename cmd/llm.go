package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/educareer/internal/llm"
	"github.com/abhisek/educareer/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded mentor LLM calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")
		if purpose != "" && !llm.Purpose(purpose).Known() {
			return fmt.Errorf("unknown purpose %q (want one of %s)", purpose, purposeList())
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failed {
			events = slices.DeleteFunc(events, func(e store.LLMRequestEvent) bool { return e.Success })
		}
		if len(events) == 0 {
			fmt.Println("No LLM calls found.")
			return nil
		}

		rows := make([][]string, 0, len(events))
		for _, e := range events {
			status := "ok"
			if !e.Success {
				status = truncate(e.ErrorMessage, 40)
			}
			rows = append(rows, []string{
				itoa(e.ID),
				e.Timestamp.Local().Format(timeLayout),
				e.Purpose,
				truncate(e.Model, 28),
				itoa(e.InputTokens),
				itoa(e.OutputTokens),
				itoa(int(e.LatencyMs)),
				status,
			})
		}
		printTable(os.Stdout, []string{"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "Status"}, rows)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		fields := [][2]string{
			{"ID", itoa(e.ID)},
			{"Time", e.Timestamp.Local().Format(timeLayout)},
			{"Provider", e.Provider},
			{"Model", e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			{"Success", strconv.FormatBool(e.Success)},
		}
		if cost := llm.LookupCost(e.Model); cost != nil {
			fields = append(fields, [2]string{"Cost", formatCost(cost.Cost(e.InputTokens, e.OutputTokens))})
		}
		if e.ErrorMessage != "" {
			fields = append(fields, [2]string{"Error", e.ErrorMessage})
		}
		for _, f := range fields {
			fmt.Printf("%-10s %s\n", f[0]+":", f[1])
		}

		printBody("PROMPT", e.RequestBody)
		printBody("REPLY", e.ResponseBody)
		return nil
	},
}

func printBody(title, body string) {
	rule := strings.Repeat("─", 60)
	fmt.Printf("\n%s\n%s\n%s\n", rule, title, rule)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage, failures and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		var total store.PurposeUsage
		rows := make([][]string, 0, len(byPurpose)+1)
		for _, u := range byPurpose {
			rows = append(rows, []string{
				u.Purpose, itoa(u.Calls), itoa(u.Failures),
				itoa(u.InputTokens), itoa(u.OutputTokens), itoa(int(u.AvgLatencyMs)),
			})
			total.Calls += u.Calls
			total.Failures += u.Failures
			total.InputTokens += u.InputTokens
			total.OutputTokens += u.OutputTokens
		}
		rows = append(rows, []string{"TOTAL", itoa(total.Calls), itoa(total.Failures), itoa(total.InputTokens), itoa(total.OutputTokens), ""})

		fmt.Println("Usage by purpose")
		printTable(os.Stdout, []string{"Purpose", "Calls", "Failed", "Input", "Output", "Avg ms"}, rows)

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		var cost float64
		var unpriced []string
		rows = rows[:0]
		for _, u := range byModel {
			price := "?"
			if p := llm.LookupCost(u.Model); p != nil {
				c := p.Cost(u.InputTokens, u.OutputTokens)
				cost += c
				price = formatCost(c)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			rows = append(rows, []string{truncate(u.Model, 32), itoa(u.Calls), itoa(u.InputTokens), itoa(u.OutputTokens), price})
		}
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		rows = append(rows, []string{label, "", "", "", formatCost(cost)})

		fmt.Println()
		fmt.Println("Estimated cost (USD)")
		printTable(os.Stdout, []string{"Model", "Calls", "Input", "Output", "Cost"}, rows)
		if len(unpriced) > 0 {
			fmt.Printf("\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func purposeList() string {
	names := make([]string, 0, len(llm.Purposes()))
	for _, p := range llm.Purposes() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose ("+purposeList()+")")
	llmListCmd.Flags().Bool("failed", false, "Only show failed calls")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
