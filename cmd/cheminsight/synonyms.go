package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edelweissconnect/cheminsight/internal/resolve"
	"github.com/edelweissconnect/cheminsight/internal/synonyms"
	"github.com/edelweissconnect/cheminsight/pkg/types"
)

var synonymsCmd = &cobra.Command{
	Use:   "synonyms [name]",
	Short: "Show the synonym set for an entity",
	Long: `Synonyms expands one entity name into its search term set using the
vocabulary services for its category: PubChem for chemicals (plus ChEMBL
when enabled), UniProt, NCBI Gene, and HGNC for genes and proteins, ChEMBL
for receptors, KEGG for pathways. CAS numbers are resolved first.

The canonical name is printed first, one term per line.`,
	Args: cobra.ExactArgs(1),
	RunE: runSynonyms,
}

func init() {
	synonymsCmd.Flags().String("category", "chemical", "entity category: chemical, gene, protein, receptor, or pathway")
	synonymsCmd.Flags().Int("cap", 0, "cap the set size, canonical included (0 uses the configured cap, negative disables)")

	rootCmd.AddCommand(synonymsCmd)
}

func runSynonyms(cmd *cobra.Command, args []string) error {
	categoryFlag, _ := cmd.Flags().GetString("category")
	category, err := types.ParseCategory(categoryFlag)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	fetch := newFetchClient(cfg)

	name := args[0]
	if category == types.CategoryChemical {
		resolver := &resolve.Resolver{Client: fetch}
		resolved, err := resolver.Resolve(cmd.Context(), name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		name = resolved
	}

	limit, _ := cmd.Flags().GetInt("cap")
	if limit == 0 {
		limit = cfg.Synonyms.MaxPerCompound
		if category != types.CategoryChemical {
			limit = cfg.Synonyms.MaxPerTarget
		}
	}

	agg := &synonyms.Aggregator{Client: fetch, EnableChEMBL: cfg.Synonyms.EnableChEMBL}
	set := agg.Collect(cmd.Context(), types.Entity{Name: name, Category: category}, limit, os.Stderr)
	for _, term := range set.Terms {
		fmt.Println(term)
	}
	return nil
}
