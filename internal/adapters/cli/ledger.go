package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/persistence"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/ledger/queries"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/infrastructure/config"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/infrastructure/database"
)

const dateLayout = "2006-01-02"

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Financial ledger of past careers",
		Long: `View and analyze the transactions booked by play sessions.

Every money movement of a career is booked in the ledger: truck
purchases, delivery payouts, loan disbursements and installments,
license fees and trip operating costs. The session id is printed when
'trucklife play' starts.

Examples:
  trucklife ledger list --session <id>
  trucklife ledger list --session <id> --category DEBT_SERVICE --limit 20
  trucklife ledger report --session <id> --start-date 2025-01-01 --end-date 2025-01-31`,
	}

	cmd.AddCommand(newLedgerListCommand())
	cmd.AddCommand(newLedgerReportCommand())

	return cmd
}

// newLedgerListCommand creates the ledger list subcommand
func newLedgerListCommand() *cobra.Command {
	var (
		sessionID string
		startDate string
		endDate   string
		category  string
		txType    string
		limit     int
		offset    int
		orderBy   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List booked transactions with optional filtering.

Results are ordered by timestamp descending (newest first) by default.

Categories:
  FLEET_INVESTMENTS   - Truck purchases
  FREIGHT_REVENUE     - Delivery payouts
  FINANCING_INFLOWS   - Loan disbursements
  DEBT_SERVICE        - Loan installments
  LICENSING           - License exam fees
  OPERATING_COSTS     - Fuel and maintenance

Examples:
  trucklife ledger list --session <id> --limit 10
  trucklife ledger list --session <id> --type JOB_PAYOUT`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			query := &queries.GetTransactionsQuery{
				SessionID: sessionID,
				Limit:     limit,
				Offset:    offset,
				OrderBy:   orderBy,
			}
			if !start.IsZero() {
				query.StartDate = &start
			}
			if !end.IsZero() {
				query.EndDate = &end
			}
			if category != "" {
				query.Category = &category
			}
			if txType != "" {
				query.TransactionType = &txType
			}

			handler, closeDB, err := ledgerHandlers()
			if err != nil {
				return err
			}
			defer closeDB()

			result, err := handler.transactions.Handle(context.Background(), query)
			if err != nil {
				return fmt.Errorf("failed to query transactions: %w", err)
			}
			writeTransactions(cmd.OutOrStdout(), result.(*queries.GetTransactionsResponse))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id [required]")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&txType, "type", "", "Filter by transaction type")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")
	cmd.Flags().StringVar(&orderBy, "order-by", "timestamp DESC", "Sort order")
	cmd.MarkFlagRequired("session")

	return cmd
}

// newLedgerReportCommand creates the profit and loss report subcommand
func newLedgerReportCommand() *cobra.Command {
	var (
		sessionID string
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a profit & loss statement",
		Long: `Generate a profit & loss (P&L) statement for a session.

The statement shows revenue and expenses by category, the net profit,
and financing flows (loans received and repaid) which are kept out of
profit. Without dates the whole session is covered.

Example:
  trucklife ledger report --session <id> --start-date 2025-01-01 --end-date 2025-01-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			handler, closeDB, err := ledgerHandlers()
			if err != nil {
				return err
			}
			defer closeDB()

			result, err := handler.profitLoss.Handle(context.Background(), &queries.GetProfitLossQuery{
				SessionID: sessionID,
				StartDate: start,
				EndDate:   end,
			})
			if err != nil {
				return fmt.Errorf("failed to generate P&L report: %w", err)
			}
			writeProfitLoss(cmd.OutOrStdout(), result.(*queries.GetProfitLossResponse))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id [required]")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("session")

	return cmd
}

type ledgerQueryHandlers struct {
	transactions *queries.GetTransactionsHandler
	profitLoss   *queries.GetProfitLossHandler
}

// ledgerHandlers opens the configured ledger database
func ledgerHandlers() (*ledgerQueryHandlers, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	repo := persistence.NewGormTransactionRepository(db)
	return &ledgerQueryHandlers{
		transactions: queries.NewGetTransactionsHandler(repo),
		profitLoss:   queries.NewGetProfitLossHandler(repo),
	}, func() { database.Close(db) }, nil
}

// parseDateRange parses optional dates; the end date covers its whole day
func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error
	if startDate != "" {
		start, err = time.Parse(dateLayout, startDate)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date format: %w", err)
		}
	}
	if endDate != "" {
		end, err = time.Parse(dateLayout, endDate)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date format: %w", err)
		}
		end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	return start, end, nil
}

// writeTransactions formats a transaction listing
func writeTransactions(out io.Writer, response *queries.GetTransactionsResponse) {
	if len(response.Transactions) == 0 {
		fmt.Fprintln(out, "No transactions found")
		return
	}

	fmt.Fprintf(out, "\nTRANSACTIONS (Showing %d of %d total)\n", len(response.Transactions), response.Total)
	fmt.Fprintln(out, ruler)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Timestamp\tType\tCategory\tAmount\tBalance\tDescription")
	fmt.Fprintln(w, "─────────\t────\t────────\t──────\t───────\t───────────")
	for _, tx := range response.Transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			tx.Type,
			tx.Category,
			formatAmount(tx.Amount),
			shared.FormatMoney(tx.BalanceAfter),
			tx.Description,
		)
	}
	w.Flush()

	fmt.Fprintln(out, ruler)
	fmt.Fprintf(out, "Total: %d transactions\n\n", response.Total)
}

// writeProfitLoss formats a P&L statement
func writeProfitLoss(out io.Writer, response *queries.GetProfitLossResponse) {
	fmt.Fprintf(out, "\nPROFIT & LOSS STATEMENT\n")
	fmt.Fprintf(out, "Period: %s\n", response.Period)
	fmt.Fprintln(out, ruler)

	fmt.Fprintln(out, "\nREVENUE")
	writeBreakdown(out, response.RevenueBreakdown, 1)
	fmt.Fprintln(out, "                            ─────────────")
	fmt.Fprintf(out, "  %-25s %s\n", "Total Revenue:", shared.FormatMoney(response.TotalRevenue))

	fmt.Fprintln(out, "\nEXPENSES")
	writeBreakdown(out, response.ExpenseBreakdown, -1)
	fmt.Fprintln(out, "                            ─────────────")
	fmt.Fprintf(out, "  %-25s %s\n", "Total Expenses:", shared.FormatMoney(-response.TotalExpenses))

	fmt.Fprintln(out, "\n"+ruler)
	fmt.Fprintf(out, "NET PROFIT:                 %s\n", formatAmount(response.NetProfit))
	fmt.Fprintln(out, ruler)

	if len(response.FinancingBreakdown) > 0 {
		fmt.Fprintln(out, "\nFINANCING")
		writeBreakdown(out, response.FinancingBreakdown, 1)
		fmt.Fprintf(out, "  %-25s %s\n", "Loans received:", shared.FormatMoney(response.FinancingInflows))
		fmt.Fprintf(out, "  %-25s %s\n", "Debt repaid:", shared.FormatMoney(-response.DebtRepaid))
	}
	fmt.Fprintf(out, "\nNet cash flow: %s over %d transactions\n", formatAmount(response.NetCashFlow), response.TransactionCount)
}

// writeBreakdown prints category totals in a stable order
func writeBreakdown(out io.Writer, breakdown map[string]float64, sign float64) {
	categories := make([]string, 0, len(breakdown))
	for category := range breakdown {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(out, "  %-25s %s\n", category+":", shared.FormatMoney(sign*breakdown[category]))
	}
}
