package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edelweissconnect/cheminsight/internal/pipeline"
	"github.com/edelweissconnect/cheminsight/internal/records"
	"github.com/edelweissconnect/cheminsight/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search PubMed for compound and target literature",
	Long: `Search expands compounds (and optional targets) into synonym sets,
builds batched boolean PubMed queries, and reports the newest matching
records per compound-target pair.

The task comes either from a YAML task file (--task) or from repeated
--compound and --target flags. Results go to stdout as a table or JSON,
and can be saved to a YAML result file with --out.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("task", "", "YAML task file (single task or a 'tasks' list)")
	searchCmd.Flags().String("out", "", "write results to a YAML result file")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().StringArray("compound", nil, "compound name or CAS number (repeatable)")
	searchCmd.Flags().StringArray("target", nil, "target gene/protein name (repeatable)")
	searchCmd.Flags().Int("start-year", 0, "publication year range start")
	searchCmd.Flags().Int("end-year", 0, "publication year range end (0 disables the date filter)")
	searchCmd.Flags().StringArray("keyword", nil, "additional keyword ANDed onto every query (repeatable)")
	searchCmd.Flags().StringArray("article-type", nil, "restrict to a PubMed publication type (repeatable)")
	searchCmd.Flags().Int("results-per-pair", 0, "records to keep per compound-target pair (default 10)")
	searchCmd.Flags().Int("max-records", 0, "identifier cap per query (default 1000)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	tasks, err := searchTasks(cmd)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	p, closer, err := newPipeline(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closer()

	outPath, _ := cmd.Flags().GetString("out")
	if outPath != "" && len(tasks) > 1 {
		return fmt.Errorf("--out supports a single task, the task file defines %d", len(tasks))
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	for _, task := range tasks {
		out, err := p.Run(cmd.Context(), task)
		if err != nil {
			return err
		}

		if asJSON {
			if err := records.FormatJSON(out.Records, os.Stdout); err != nil {
				return err
			}
		} else {
			records.FormatTable(out.Records, out.DupsRemoved, os.Stdout)
		}

		if outPath != "" {
			summary := records.RunSummary{
				QueriesRun:        out.QueriesRun,
				DuplicatesRemoved: out.DupsRemoved,
				Warnings:          out.Warnings,
			}
			if err := records.WriteResultFile(outPath, task, out.Records, summary); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Results written to %s\n", outPath)
		}
	}
	return nil
}

// searchTasks builds the task list from the --task file or from flags.
func searchTasks(cmd *cobra.Command) ([]types.TaskDescriptor, error) {
	taskFile, _ := cmd.Flags().GetString("task")
	if taskFile != "" {
		return pipeline.ReadTaskFile(taskFile)
	}

	compounds, _ := cmd.Flags().GetStringArray("compound")
	if len(compounds) == 0 {
		return nil, fmt.Errorf("provide --task or at least one --compound")
	}
	targets, _ := cmd.Flags().GetStringArray("target")

	task := types.TaskDescriptor{
		Compounds: make(map[string][]string, len(compounds)),
	}
	for _, c := range compounds {
		task.Compounds[c] = nil
	}
	if len(targets) > 0 {
		task.Targets = make(map[string][]string, len(targets))
		for _, t := range targets {
			task.Targets[t] = nil
		}
	}
	task.StartYear, _ = cmd.Flags().GetInt("start-year")
	task.EndYear, _ = cmd.Flags().GetInt("end-year")
	task.AdditionalKeywords, _ = cmd.Flags().GetStringArray("keyword")
	task.ArticleTypes, _ = cmd.Flags().GetStringArray("article-type")
	task.ResultsPerPair, _ = cmd.Flags().GetInt("results-per-pair")
	task.MaxRecordsPerQuery, _ = cmd.Flags().GetInt("max-records")

	return []types.TaskDescriptor{task}, nil
}
