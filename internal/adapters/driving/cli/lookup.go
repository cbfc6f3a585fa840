package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Find a single record by a unique key",
}

var lookupEmailCmd = &cobra.Command{
	Use:   "email <address>",
	Short: "Find the customer with an email address",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookupEmail,
}

var lookupUserCmd = &cobra.Command{
	Use:   "user <user-id>",
	Short: "Find the customer linked to a user account",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookupUser,
}

var lookupCodeCmd = &cobra.Command{
	Use:   "code <discount-code>",
	Short: "Find a discount by its code, ignoring case",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookupCode,
}

func init() {
	lookupCmd.AddCommand(lookupEmailCmd)
	lookupCmd.AddCommand(lookupUserCmd)
	lookupCmd.AddCommand(lookupCodeCmd)
	rootCmd.AddCommand(lookupCmd)
}

func runLookupEmail(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	c, ok := s.Customers.ByEmail(cmd.Context(), args[0])
	if !ok {
		return fmt.Errorf("customer with email %q: %w", args[0], domain.ErrNotFound)
	}
	return writeRecord(cmd, c.Record())
}

func runLookupUser(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	userID, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, ok := s.Customers.ByUserID(cmd.Context(), userID)
	if !ok {
		return fmt.Errorf("customer for user %d: %w", userID, domain.ErrNotFound)
	}
	return writeRecord(cmd, c.Record())
}

func runLookupCode(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	a, ok := s.Adjustments.ByCode(cmd.Context(), args[0])
	if !ok {
		return fmt.Errorf("discount %q: %w", args[0], domain.ErrNotFound)
	}
	r := a.Record()
	r["usable"] = s.Adjustments.IsActive(cmd.Context(), a.ID)
	return writeRecord(cmd, r)
}
