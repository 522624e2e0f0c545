package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptive/internal/adaptive"
	"github.com/abhisek/adaptive/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history <child-id>",
	Short: "List logged decisions for a child",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		subject, _ := cmd.Flags().GetString("subject")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := s.DecisionRepo().List(cmd.Context(), args[0], store.QueryOpts{
			Limit:   limit,
			Subject: subject,
		})
		if err != nil {
			return fmt.Errorf("query decisions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintf(out, "No decisions recorded for %s.\n", args[0])
			return nil
		}

		fmt.Fprintf(out, "%-19s  %-10s  %-8s  %-22s  %-8s  %-14s  %5s  %5s\n",
			"Timestamp", "Subject", "Level", "Topic", "Strategy", "Rule", "M", "C")
		fmt.Fprintln(out, strings.Repeat("─", 108))

		for _, r := range recs {
			d := r.Decision
			topic := d.NextTopic
			if !r.TopicResolved {
				topic += "*"
			}
			topic = truncate(topic, 22)
			fmt.Fprintf(out, "%-19s  %-10s  %-8s  %-22s  %-8s  %-14s  %5.2f  %5.2f\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				r.Subject,
				d.NextDifficulty,
				topic,
				d.Strategy,
				d.Rule,
				d.Mastery,
				d.Confidence,
			)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, tally(recs))
		return nil
	},
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// tally summarizes recs by strategy and by rule, skipping zero counts.
func tally(recs []store.DecisionRecord) string {
	strategies := make(map[adaptive.Strategy]int)
	rules := make(map[adaptive.Rule]int)
	for _, r := range recs {
		strategies[r.Decision.Strategy]++
		rules[r.Decision.Rule]++
	}

	var byStrategy, byRule []string
	for _, s := range adaptive.AllStrategies() {
		if n := strategies[s]; n > 0 {
			byStrategy = append(byStrategy, fmt.Sprintf("%s %d", s, n))
		}
	}
	for _, r := range adaptive.AllRules() {
		if n := rules[r]; n > 0 {
			byRule = append(byRule, fmt.Sprintf("%s %d", r, n))
		}
	}
	return "Strategies: " + strings.Join(byStrategy, ", ") + "\nRules: " + strings.Join(byRule, ", ")
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of decisions to show")
	historyCmd.Flags().String("subject", "", "Only show decisions in this subject")
}
