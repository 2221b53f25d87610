package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fortuna/courtside/internal/report"
	"github.com/fortuna/courtside/internal/store"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "maximum number of matches to list")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches(cmd.Context(), listLimit)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'courtside process <match-id>' to add one.")
		return nil
	}

	report.PrintMatchList(os.Stdout, matches)
	return nil
}
