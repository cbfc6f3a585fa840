package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

var fieldCmd = &cobra.Command{
	Use:   "field <entity> <id> <field>",
	Short: "Print one field of a record",
	Long: `Print a field of a customer, order, order item, discount, note, log or
download. The record's own attributes are checked first, then its
metadata. Exits with an error when neither holds a value.

Examples:
  eddkit field customer 12 email
  eddkit field order 1001 _edd_payment_meta`,
	Args: cobra.ExactArgs(3),
	RunE: runField,
}

var existsCmd = &cobra.Command{
	Use:   "exists <entity> <id>",
	Short: "Report whether a record exists",
	Args:  cobra.ExactArgs(2),
	RunE:  runExists,
}

func init() {
	rootCmd.AddCommand(fieldCmd)
	rootCmd.AddCommand(existsCmd)
}

// entityAndID parses the shared <entity> <id> arguments.
func entityAndID(args []string) (domain.EntityType, int64, error) {
	entity, err := domain.ParseEntityType(args[0])
	if err != nil {
		return "", 0, fmt.Errorf("entity %q: %w", args[0], err)
	}
	id, err := parseID(args[1])
	if err != nil {
		return "", 0, err
	}
	return entity, id, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: %w", s, domain.ErrInvalidInput)
	}
	return id, nil
}

func runField(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	entity, id, err := entityAndID(args)
	if err != nil {
		return err
	}

	value, ok := s.Fields.Get(cmd.Context(), entity, id, args[2])
	if !ok {
		return fmt.Errorf("%s %d has no %q: %w", entity, id, args[2], domain.ErrNotFound)
	}
	return writeValue(cmd, value)
}

func runExists(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	entity, id, err := entityAndID(args)
	if err != nil {
		return err
	}

	exists := s.Fields.Exists(cmd.Context(), entity, id)
	return writeOutput(cmd, exists, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, exists)
		return err
	})
}
