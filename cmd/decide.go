package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptive/internal/adaptive"
	"github.com/abhisek/adaptive/internal/client"
	"github.com/abhisek/adaptive/internal/history"
	"github.com/abhisek/adaptive/internal/ui/components"
)

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Decide the next question for an attempt history",
	Long: "Reads an attempt history as JSON (a list of attempts, or an object with an\n" +
		"\"attempts\" key) from --file or stdin and prints the engine's decision.",
	Example: `  echo '[{"topic":"addition","difficulty":"easy","is_correct":true}]' | adaptive decide
  adaptive decide --file history.json --subject math --json
  adaptive decide --file history.json --engine-url http://localhost:8000
  ADAPTIVE_ENGINE_URL=http://engine:8000 adaptive decide --remote -f history.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		asJSON, _ := cmd.Flags().GetBool("json")
		subject, _ := cmd.Flags().GetString("subject")
		engineURL, _ := cmd.Flags().GetString("engine-url")
		if remote, _ := cmd.Flags().GetBool("remote"); remote && engineURL == "" {
			engineURL = client.BaseURLFromEnv()
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		doc, err := readHistory(cmd, file)
		if err != nil {
			return err
		}
		if subject == "" {
			subject = doc.Subject
		}

		var (
			d        adaptive.Decision
			resolved = true
		)
		if engineURL != "" {
			c := client.New(engineURL, client.Config{Logger: cliLogger(cmd, cfg)})
			d, err = c.NextOrFallback(cmd.Context(), client.NextRequest{
				ChildID:  doc.ChildID,
				Subject:  subject,
				Attempts: doc.Attempts,
			})
			if err != nil {
				return err
			}
		} else {
			engine, err := adaptive.NewEngine(cfg.Tuning)
			if err != nil {
				return err
			}
			d, err = engine.Evaluate(doc.Attempts)
			if err != nil {
				return err
			}
			if subject != "" && d.NeedsNextTopic() {
				cur, err := loadCurriculum(cfg)
				if err != nil {
					return err
				}
				d, resolved = cur.Resolve(subject, doc.Attempts, d)
			}
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		}

		fmt.Fprintln(out, components.DecisionCard{
			Decision:   d,
			Subject:    subject,
			Attempts:   len(doc.Attempts),
			Unresolved: !resolved,
		}.View())
		return nil
	},
}

// readHistory reads the history document from path, or stdin for "" and "-".
func readHistory(cmd *cobra.Command, path string) (history.Document, error) {
	var (
		r      io.Reader = cmd.InOrStdin()
		source           = "stdin"
	)
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return history.Document{}, fmt.Errorf("open history: %w", err)
		}
		defer f.Close()
		r, source = f, path
	}

	doc, err := history.Read(r)
	if history.IsInvalid(err) {
		return history.Document{}, fmt.Errorf("%s: %w", source, err)
	}
	return doc, err
}

func init() {
	decideCmd.Flags().StringP("file", "f", "", "Attempt history JSON file (default stdin, or -)")
	decideCmd.Flags().Bool("json", false, "Print the decision as JSON")
	decideCmd.Flags().String("subject", "", "Subject used to resolve the next topic on advance")
	decideCmd.Flags().String("engine-url", "", "Ask a running engine instead of deciding locally")
	decideCmd.Flags().Bool("remote", false, "Ask the engine at ADAPTIVE_ENGINE_URL (default "+client.DefaultBaseURL+") when --engine-url is unset")
}
