// Command moodctl runs the chat classifier and timeline builder offline.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/serene/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/serene/backend/internal/analysis/timeline"
	"github.com/zhouzirui/serene/backend/internal/model/mood"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "moodctl",
		Short:         "Inspect the chat classifier and mood timeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.AddCommand(newClassifyCmd(out), newRulesCmd(out), newTimelineCmd(in, out))
	return rootCmd
}

func newClassifyCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "classify MESSAGE...",
		Short: "Print the canned reply for a chat message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(out, sentiment.Classify(strings.Join(args, " ")))
		},
	}
}

func newRulesCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List classifier rules in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, rule := range sentiment.Rules() {
				keywords := "(default)"
				if len(rule.Keywords) > 0 {
					keywords = strings.Join(rule.Keywords, ", ")
				}
				if _, err := fmt.Fprintf(out, "%d. %-9s %s\n", i+1, rule.Response.Sentiment, keywords); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newTimelineCmd(in io.Reader, out io.Writer) *cobra.Command {
	var today, file, tz string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Build the 7 day timeline from a JSON array of mood entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("invalid --tz: %w", err)
			}

			day := time.Now().In(loc)
			if today != "" {
				day, err = time.ParseInLocation("2006-01-02", today, loc)
				if err != nil {
					return fmt.Errorf("invalid --today, want YYYY-MM-DD: %w", err)
				}
			}

			entries, err := readEntries(in, file)
			if err != nil {
				return err
			}
			return writeJSON(out, timeline.Build(day, entries))
		},
	}
	cmd.Flags().StringVarP(&today, "today", "d", "", "Last day of the window, YYYY-MM-DD (defaults to now)")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "Entries JSON file, - for stdin")
	cmd.Flags().StringVar(&tz, "tz", "Local", "IANA time zone used for calendar days")
	return cmd
}

func readEntries(in io.Reader, file string) ([]mood.Entry, error) {
	var r io.Reader = in
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var entries []mood.Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	return entries, nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
