package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fortuna/courtside/internal/store"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <match-id>",
	Short: "Delete a stored match",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	matchID := args[0]

	db, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if err := db.DeleteMatch(cmd.Context(), matchID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "No stored match %q\n", matchID)
			return nil
		}
		return fmt.Errorf("delete match: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Deleted match %s\n", matchID)
	return nil
}
