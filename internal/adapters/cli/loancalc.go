package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/economy"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
)

// NewLoanCalcCommand creates the loan calculator command
func NewLoanCalcCommand() *cobra.Command {
	var (
		amount   float64
		rate     float64
		months   int
		schedule bool
	)

	cmd := &cobra.Command{
		Use:   "loan-calc",
		Short: "Compute the monthly payment of a loan",
		Long: `Compute the fixed monthly payment of an amortized loan.

The rate is the annual interest rate as a fraction (0.08 = 8%).
A zero rate splits the principal evenly over the term.

Examples:
  trucklife loan-calc --amount 40500 --rate 0.08 --months 24
  trucklife loan-calc --amount 10000 --rate 0.12 --months 12 --schedule`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if amount <= 0 {
				return economy.ErrInvalidPrincipal
			}

			payment, err := economy.MonthlyPayment(amount, rate, months)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Monthly payment: %s\n", shared.FormatMoney(payment))
			fmt.Fprintf(out, "Total repayable:  %s\n", shared.FormatMoney(payment*float64(months)))
			fmt.Fprintf(out, "Total interest:   %s\n", shared.FormatMoney(payment*float64(months)-amount))

			if !schedule {
				return nil
			}

			installments, err := economy.AmortizationSchedule(amount, rate, months)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ruler)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "Month\tPayment\tInterest\tPrincipal\tBalance")
			for _, i := range installments {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i.Month,
					shared.FormatMoney(i.Payment), shared.FormatMoney(i.Interest),
					shared.FormatMoney(i.Principal), shared.FormatMoney(i.Balance))
			}
			return w.Flush()
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Loan principal [required]")
	cmd.Flags().Float64Var(&rate, "rate", 0.08, "Annual interest rate as a fraction")
	cmd.Flags().IntVar(&months, "months", 12, "Term in months")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "Print the amortization schedule")
	cmd.MarkFlagRequired("amount")

	return cmd
}
