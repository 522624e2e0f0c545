package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptive/internal/curriculum"
)

var curriculumCmd = &cobra.Command{
	Use:   "curriculum",
	Short: "Inspect the topic curriculum",
}

var curriculumListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics in teaching order",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cur, err := loadCurriculum(cfg)
		if err != nil {
			return err
		}

		subjects := cur.Subjects()
		if subject != "" {
			if len(cur.Topics(subject)) == 0 {
				return fmt.Errorf("unknown subject %q (have: %s)", subject, strings.Join(subjects, ", "))
			}
			subjects = []string{subject}
		}

		out := cmd.OutOrStdout()
		for i, s := range subjects {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, s)
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, t := range cur.Topics(s) {
				fmt.Fprintf(out, "  %-22s  grade %d  %s\n", t.ID, t.Grade, prereqList(cur, t.ID))
			}
		}
		return nil
	},
}

var curriculumValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a curriculum file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path = cfg.Curriculum.File
		}

		var (
			cur *curriculum.Map
			err error
		)
		if path == "" {
			path = "built-in"
			cur = curriculum.Default()
		} else if cur, err = curriculum.Load(path); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d topics in %d subjects)\n",
			path, len(cur.AllTopics()), len(cur.Subjects()))
		return nil
	},
}

var curriculumShowCmd = &cobra.Command{
	Use:   "show <topic-id>",
	Short: "Show a topic with its neighbours in the curriculum",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cur, err := loadCurriculum(cfg)
		if err != nil {
			return err
		}

		t, err := cur.Get(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", t.Name, t.ID)
		fmt.Fprintf(out, "  subject:  %s\n", t.Subject)
		fmt.Fprintf(out, "  grade:    %d\n", t.Grade)
		fmt.Fprintf(out, "  requires: %s\n", orNone(topicIDs(cur.Prerequisites(t.ID))))
		fmt.Fprintf(out, "  unlocks:  %s\n", orNone(topicIDs(cur.Dependents(t.ID))))
		if next, ok := cur.Next(t.Subject, t.ID); ok {
			fmt.Fprintf(out, "  next:     %s\n", next.ID)
		} else {
			fmt.Fprintln(out, "  next:     (last topic)")
		}
		return nil
	},
}

func prereqList(cur *curriculum.Map, id string) string {
	prereqs := cur.Prerequisites(id)
	if len(prereqs) == 0 {
		return ""
	}
	return "after " + strings.Join(topicIDs(prereqs), ", ")
}

func topicIDs(ts []curriculum.Topic) []string {
	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.ID
	}
	return ids
}

func orNone(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}

func init() {
	curriculumListCmd.Flags().String("subject", "", "Only list this subject")

	curriculumCmd.AddCommand(curriculumListCmd)
	curriculumCmd.AddCommand(curriculumValidateCmd)
	curriculumCmd.AddCommand(curriculumShowCmd)
}
