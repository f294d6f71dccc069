package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"loan-calculator/domain"
	"loan-calculator/service"
)

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringP("principal", "p", "", "Borrowed amount")
	calcCmd.Flags().StringP("rate", "r", "", "Annual interest rate in percent, e.g. 3.5")
	calcCmd.Flags().StringP("years", "y", "", "Term in years")
	calcCmd.Flags().Bool("json", false, "Print the result as JSON")
	calcCmd.MarkFlagRequired("principal")
	calcCmd.MarkFlagRequired("rate")
	calcCmd.MarkFlagRequired("years")
}

var errInvalidInput = errors.New("invalid loan parameters")

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute a monthly payment and total cost",
	Example: `  loancalc calc --principal 100000 --rate 3.5 --years 20
  loancalc calc -p 10000 -r 0 -y 1 --json`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func runCalc(cmd *cobra.Command, args []string) error {
	principal, _ := cmd.Flags().GetString("principal")
	rate, _ := cmd.Flags().GetString("rate")
	years, _ := cmd.Flags().GetString("years")
	asJSON, _ := cmd.Flags().GetBool("json")

	params, err := service.ParseLoanInput(domain.LoanInput{
		Principal: principal,
		Rate:      rate,
		Years:     years,
	})
	if err != nil {
		var inputErr *domain.InputError
		if errors.As(err, &inputErr) {
			return fmt.Errorf("%w: check --%s", errInvalidInput, flagName(inputErr.Field))
		}
		return errInvalidInput
	}

	result := service.NewLoanCalculator().Calculate(params)
	quote := domain.NewQuote(params, result, false)

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(quote)
	}

	fmt.Fprintf(out, "Monthly payment: %s\n", quote.MonthlyPayment)
	fmt.Fprintf(out, "Total cost:      %s\n", quote.TotalCost)
	return nil
}

func flagName(field string) string {
	switch field {
	case "principal", "rate", "years":
		return field
	}
	return "input"
}
