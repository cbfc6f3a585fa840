package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "Currency helpers",
}

var currenciesUsedCmd = &cobra.Command{
	Use:   "used",
	Short: "List the currencies of recorded orders",
	Args:  cobra.NoArgs,
	RunE:  runCurrenciesUsed,
}

var currenciesGatewaysCmd = &cobra.Command{
	Use:   "gateways",
	Short: "List the payment gateways of recorded orders",
	Args:  cobra.NoArgs,
	RunE:  runCurrenciesGateways,
}

var currenciesFormatCmd = &cobra.Command{
	Use:   "format <amount> [code]",
	Short: "Format an amount, in the store currency by default",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCurrenciesFormat,
}

var currenciesInfoCmd = &cobra.Command{
	Use:   "info <code>",
	Short: "Show the symbol and minor units of a currency",
	Args:  cobra.ExactArgs(1),
	RunE:  runCurrenciesInfo,
}

var currenciesFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Drop the cached currency and gateway lists",
	Args:  cobra.NoArgs,
	RunE:  runCurrenciesFlush,
}

// currencyInfo is the structured output of currencies info.
type currencyInfo struct {
	Code     string `json:"code" yaml:"code"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals int    `json:"decimals" yaml:"decimals"`
	Default  bool   `json:"default" yaml:"default"`
}

func init() {
	currenciesCmd.AddCommand(currenciesUsedCmd)
	currenciesCmd.AddCommand(currenciesGatewaysCmd)
	currenciesCmd.AddCommand(currenciesFormatCmd)
	currenciesCmd.AddCommand(currenciesInfoCmd)
	currenciesCmd.AddCommand(currenciesFlushCmd)
	rootCmd.AddCommand(currenciesCmd)
}

func runCurrenciesUsed(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	return writeLines(cmd, s.Currencies.Used(cmd.Context()))
}

func runCurrenciesGateways(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	return writeLines(cmd, s.Currencies.UsedGateways(cmd.Context()))
}

func runCurrenciesFormat(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], domain.ErrInvalidInput)
	}
	code := s.Currencies.Default()
	if len(args) == 2 {
		code = strings.ToUpper(args[1])
	}
	if !s.Currencies.IsValid(code) {
		return fmt.Errorf("currency %q: %w", code, domain.ErrNotFound)
	}
	return writeValue(cmd, s.Currencies.Format(amount, code))
}

func runCurrenciesInfo(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	code := strings.ToUpper(args[0])
	if !s.Currencies.IsValid(code) {
		return fmt.Errorf("currency %q: %w", args[0], domain.ErrNotFound)
	}

	info := currencyInfo{
		Code:     code,
		Symbol:   s.Currencies.Symbol(code),
		Decimals: s.Currencies.Decimals(code),
		Default:  code == s.Currencies.Default(),
	}
	return writeOutput(cmd, info, func(w io.Writer) error {
		fmt.Fprintf(w, "Code:     %s\n", info.Code)
		fmt.Fprintf(w, "Symbol:   %s\n", info.Symbol)
		fmt.Fprintf(w, "Decimals: %d\n", info.Decimals)
		_, err := fmt.Fprintf(w, "Default:  %t\n", info.Default)
		return err
	})
}

func runCurrenciesFlush(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	s.Currencies.Flush(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), "Currency cache cleared.")
	return nil
}
