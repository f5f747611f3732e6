package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edelweissconnect/cheminsight/internal/resolve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [names...]",
	Short: "Resolve CAS numbers to chemical names",
	Long: `Resolve converts CAS registry numbers to chemical names via PubChem,
falling back to the CACTUS resolver. Inputs that are not CAS numbers pass
through unchanged.`,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more compound names or CAS numbers")
	}

	cfg := loadConfig()
	resolver := &resolve.Resolver{Client: newFetchClient(cfg)}

	failures := 0
	for _, name := range args {
		resolved, err := resolver.Resolve(cmd.Context(), name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			failures++
		}
		fmt.Printf("%s\t%s\n", name, resolved)
	}
	if failures > 0 {
		return fmt.Errorf("%d name(s) could not be resolved", failures)
	}
	return nil
}
