package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akrisanov/docstring-verifier/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available rules and their default severities",
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	for _, info := range rules.Catalog() {
		severity := severityPrinter(string(info.Default)).Sprintf("%-7s", string(info.Default))
		if _, err := fmt.Fprintf(os.Stdout, "%s  %s  %s\n",
			pathColor.Sprint(info.ID), severity, info.Summary); err != nil {
			return err
		}
	}
	return nil
}
