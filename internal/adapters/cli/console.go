package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	gameCmd "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/commands"
	gameQuery "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/queries"
	ledgerQuery "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/ledger/queries"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
)

const consoleHelp = `Commands:
  status                      driver, truck and trip overview
  jobs                        list the job board
  accept <n|job-id>           accept a job from the last listing
  start                       start driving the accepted job
  finish                      confirm an arrived delivery
  refresh                     request a new job board
  market                      list trucks for sale
  buy <model> [used] [financed]
  trucks                      list owned trucks
  select <n|truck-id>         drive another owned truck
  licenses                    license center
  upgrade <B|C|D|E>           buy the next license
  bank                        list loan offers
  loan <n> | loan <amount> <months>
  finances                    money and open loans
  log [n]                     latest event log entries
  ledger [n]                  latest booked transactions
  report                      profit and loss statement
  quit`

// Console is the line-oriented interface of a play session
type Console struct {
	mediator  common.Mediator
	sessionID string
	out       io.Writer

	// indexes of the last listings, 1-based on screen
	jobIDs   []string
	truckIDs []string
}

// NewConsole creates a console for one career
func NewConsole(mediator common.Mediator, sessionID string, out io.Writer) *Console {
	return &Console{mediator: mediator, sessionID: sessionID, out: out}
}

// Run reads commands until quit or end of input
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	c.prompt()
	for scanner.Scan() {
		quit, err := c.Execute(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(c.out, "! %s\n", reasonOf(err))
		}
		if quit || ctx.Err() != nil {
			return nil
		}
		c.prompt()
	}
	return scanner.Err()
}

func (c *Console) prompt() {
	fmt.Fprint(c.out, "> ")
}

// Execute runs one command line. It reports whether the session should end.
func (c *Console) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch name {
	case "help", "?":
		fmt.Fprintln(c.out, consoleHelp)
	case "quit", "exit":
		return true, nil
	case "status":
		err = c.status(ctx)
	case "jobs":
		err = c.jobs(ctx)
	case "accept":
		err = c.accept(ctx, args)
	case "start":
		err = c.send(ctx, &gameCmd.StartTripCommand{})
	case "finish":
		err = c.finish(ctx)
	case "refresh":
		err = c.send(ctx, &gameCmd.RefreshJobsCommand{})
	case "market":
		err = c.market(ctx)
	case "buy":
		err = c.buy(ctx, args)
	case "trucks":
		err = c.trucks(ctx)
	case "select":
		err = c.selectTruck(ctx, args)
	case "licenses":
		err = c.licenses(ctx)
	case "upgrade":
		err = c.upgrade(ctx, args)
	case "bank":
		err = c.bank(ctx)
	case "loan":
		err = c.loan(ctx, args)
	case "finances":
		err = c.finances(ctx)
	case "log":
		err = c.log(ctx, args)
	case "ledger":
		err = c.ledger(ctx, args)
	case "report":
		err = c.report(ctx)
	default:
		err = fmt.Errorf("unknown command %q, type help", name)
	}
	return false, err
}

// send dispatches a command and prints its message
func (c *Console) send(ctx context.Context, request common.Request) error {
	resp, err := c.mediator.Send(ctx, request)
	if err != nil {
		return err
	}
	if msg := messageOf(resp); msg != "" {
		fmt.Fprintln(c.out, msg)
	}
	return nil
}

func messageOf(resp common.Response) string {
	switch r := resp.(type) {
	case *gameCmd.BuyTruckResponse:
		return r.Message
	case *gameCmd.AcceptJobResponse:
		return r.Message
	case *gameCmd.StartTripResponse:
		return r.Message
	case *gameCmd.UpgradeLicenseResponse:
		return r.Message
	case *gameCmd.TakeLoanResponse:
		return r.Message
	case *gameCmd.SelectTruckResponse:
		return r.Message
	case *gameCmd.RefreshJobsResponse:
		return r.Message
	}
	return ""
}

func (c *Console) snapshot(ctx context.Context) (*gameQuery.GetSnapshotResponse, error) {
	resp, err := c.mediator.Send(ctx, &gameQuery.GetSnapshotQuery{})
	if err != nil {
		return nil, err
	}
	return resp.(*gameQuery.GetSnapshotResponse), nil
}

func (c *Console) status(ctx context.Context) error {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return err
	}
	state := snap.State
	p := state.Player

	fmt.Fprintf(c.out, "%s | level %d (%.0f xp, %.0f to next) | license %s | reputation %d\n",
		p.Name, p.Level, p.XP, p.XPToNextLevel(), p.License, p.Reputation)
	fmt.Fprintf(c.out, "Money: %s | Deliveries: %d | Weather: %s\n",
		shared.FormatMoney(p.Money), p.History.Deliveries, state.Weather)

	if truck, ok := state.CurrentTruck(); ok {
		fmt.Fprintf(c.out, "Truck: %s (condition %.0f%%, %.0f km)\n", truck.ModelID, truck.Condition, truck.Mileage)
	} else {
		fmt.Fprintln(c.out, "Truck: none, visit the market")
	}

	if j := state.ActiveJob; j != nil {
		fmt.Fprintf(c.out, "Job: %s %dkg %s to %s, %s\n", j.Cargo, j.Weight, j.From, j.To, shared.FormatMoney(float64(j.Payout)))
	}
	fmt.Fprintf(c.out, "Trip: %s %s %s\n", snap.Phase, progressBar(state.DrivingProgress, 20), percent(state.DrivingProgress))
	return nil
}

func (c *Console) jobs(ctx context.Context) error {
	resp, err := c.mediator.Send(ctx, &gameQuery.ListJobsQuery{})
	if err != nil {
		return err
	}
	listing := resp.(*gameQuery.ListJobsResponse)

	c.jobIDs = c.jobIDs[:0]
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tCargo\tWeight\tRoute\tDistance\tPayout\tUrgency\tLicense\tFits")
	for i, l := range listing.Jobs {
		c.jobIDs = append(c.jobIDs, l.Job.ID)
		license := string(l.Job.RequiredLicense)
		if !l.Licensed {
			license += " (locked)"
		}
		fmt.Fprintf(w, "%d\t%s\t%dkg\t%s → %s\t%.0fkm\t%s\t%s\t%s\t%s\n",
			i+1, l.Job.Cargo, l.Job.Weight, l.FromName, l.ToName, l.Job.Distance,
			shared.FormatMoney(float64(l.Job.Payout)), l.Job.Urgency, license, yesNo(l.FitsTruck))
	}
	return w.Flush()
}

func (c *Console) accept(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: accept <n|job-id>")
	}
	return c.send(ctx, &gameCmd.AcceptJobCommand{JobID: resolve(args[0], c.jobIDs)})
}

func (c *Console) finish(ctx context.Context) error {
	resp, err := c.mediator.Send(ctx, &gameCmd.FinishTripCommand{})
	if err != nil {
		return err
	}
	r := resp.(*gameCmd.FinishTripResponse)
	fmt.Fprintln(c.out, r.Message)
	fmt.Fprintf(c.out, "Fuel %.1fL %s, maintenance %s", r.TripCosts.FuelConsumed,
		shared.FormatMoney(r.TripCosts.FuelCost), shared.FormatMoney(r.TripCosts.MaintenanceCost))
	if r.CostsDeducted {
		fmt.Fprintln(c.out, " (deducted)")
	} else {
		fmt.Fprintln(c.out, " (not charged)")
	}
	if r.LeveledUp {
		fmt.Fprintf(c.out, "Level up! You are now level %d.\n", r.Level)
	}
	return nil
}

func (c *Console) market(ctx context.Context) error {
	resp, err := c.mediator.Send(ctx, &gameQuery.ListMarketQuery{})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Model\tName\tLicense\tCapacity\tNew\tUsed\tDown payment")
	for _, l := range resp.(*gameQuery.ListMarketResponse).Listings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dkg\t%s\t%s\t%s\n",
			l.Model.ID, l.Model.DisplayName(), l.Model.Category, l.Model.Capacity,
			shared.FormatMoney(l.NewPrice), shared.FormatMoney(l.UsedPrice), shared.FormatMoney(l.DownPayment))
	}
	return w.Flush()
}

func (c *Console) buy(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: buy <model> [used] [financed]")
	}
	cmd := &gameCmd.BuyTruckCommand{ModelID: args[0]}
	for _, opt := range args[1:] {
		switch strings.ToLower(opt) {
		case "used":
			cmd.Used = true
		case "financed", "finance":
			cmd.Financed = true
		default:
			return fmt.Errorf("unknown purchase option %q", opt)
		}
	}
	return c.send(ctx, cmd)
}

func (c *Console) trucks(ctx context.Context) error {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return err
	}

	c.truckIDs = c.truckIDs[:0]
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tModel\tCondition\tMileage\tPaid\tCurrent")
	for i, t := range snap.State.PlayerTrucks() {
		c.truckIDs = append(c.truckIDs, t.ID)
		fmt.Fprintf(w, "%d\t%s\t%.0f%%\t%.0fkm\t%s\t%s\n",
			i+1, t.ModelID, t.Condition, t.Mileage, shared.FormatMoney(t.PurchasePrice),
			yesNo(t.ID == snap.State.Player.CurrentTruckID))
	}
	return w.Flush()
}

func (c *Console) selectTruck(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: select <n|truck-id>")
	}
	resp, err := c.mediator.Send(ctx, &gameCmd.SelectTruckCommand{TruckID: resolve(args[0], c.truckIDs)})
	if err != nil {
		return err
	}
	r := resp.(*gameCmd.SelectTruckResponse)
	if !r.Changed {
		fmt.Fprintln(c.out, "Already driving that truck.")
		return nil
	}
	fmt.Fprintln(c.out, r.Message)
	return nil
}

func (c *Console) licenses(ctx context.Context) error {
	resp, err := c.mediator.Send(ctx, &gameQuery.GetLicenseCenterQuery{})
	if err != nil {
		return err
	}
	center := resp.(*gameQuery.GetLicenseCenterResponse)

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "License\tDescription\tMin level\tFee\tStatus")
	for _, t := range center.Tiers {
		status := "locked"
		switch {
		case t.Owned:
			status = "owned"
		case t.Eligible():
			status = "available"
		case t.IsNext && t.LevelMissing > 0:
			status = fmt.Sprintf("%d more levels", t.LevelMissing)
		case t.IsNext:
			status = fmt.Sprintf("%s short", shared.FormatMoney(t.CashMissing))
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", t.Category, t.Description, t.MinLevel, shared.FormatMoney(t.Cost), status)
	}
	return w.Flush()
}

func (c *Console) upgrade(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: upgrade <B|C|D|E>")
	}
	return c.send(ctx, &gameCmd.UpgradeLicenseCommand{Target: args[0]})
}

func (c *Console) bank(ctx context.Context) error {
	resp, err := c.mediator.Send(ctx, &gameQuery.ListLoanOffersQuery{})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tAmount\tTerm\tRate\tMonthly\tTotal")
	for _, o := range resp.(*gameQuery.ListLoanOffersResponse).Offers {
		fmt.Fprintf(w, "%d\t%s\t%d months\t%s\t%s\t%s\n",
			o.Index+1, shared.FormatMoney(o.Amount), o.TermMonths, percent(o.AnnualRate),
			shared.FormatMoney(o.MonthlyPayment), shared.FormatMoney(o.TotalRepayable))
	}
	return w.Flush()
}

func (c *Console) loan(ctx context.Context, args []string) error {
	switch len(args) {
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("usage: loan <offer number>")
		}
		idx := n - 1
		return c.send(ctx, &gameCmd.TakeLoanCommand{OfferIndex: &idx})
	case 2:
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		months, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid term %q", args[1])
		}
		return c.send(ctx, &gameCmd.TakeLoanCommand{Amount: amount, TermMonths: months})
	default:
		return fmt.Errorf("usage: loan <n> | loan <amount> <months>")
	}
}

func (c *Console) finances(ctx context.Context) error {
	resp, err := c.mediator.Send(ctx, &gameQuery.GetFinancesQuery{})
	if err != nil {
		return err
	}
	f := resp.(*gameQuery.GetFinancesResponse)

	fmt.Fprintf(c.out, "Money: %s | Debt: %s | Monthly payments: %s\n",
		shared.FormatMoney(f.Money), shared.FormatMoney(f.TotalDebt), shared.FormatMoney(f.MonthlyDebtService))
	if f.Overdrawn {
		fmt.Fprintln(c.out, "Warning: account overdrawn")
	}
	for _, l := range f.Loans {
		fmt.Fprintf(c.out, "  %s %s left, %d/%d months %s\n",
			shared.FormatMoney(l.Principal), shared.FormatMoney(l.RemainingBalance),
			l.PaidMonths, l.TermMonths, progressBar(l.RepaidFraction, 10))
	}
	return nil
}

func (c *Console) log(ctx context.Context, args []string) error {
	limit := 10
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count %q", args[0])
		}
		limit = n
	}

	resp, err := c.mediator.Send(ctx, &gameQuery.GetEventLogQuery{Limit: limit})
	if err != nil {
		return err
	}
	for _, entry := range resp.(*gameQuery.GetEventLogResponse).Entries {
		fmt.Fprintf(c.out, "  %s\n", entry)
	}
	return nil
}

func (c *Console) ledger(ctx context.Context, args []string) error {
	limit := 10
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count %q", args[0])
		}
		limit = n
	}

	resp, err := c.mediator.Send(ctx, &ledgerQuery.GetTransactionsQuery{SessionID: c.sessionID, Limit: limit})
	if err != nil {
		return err
	}
	writeTransactions(c.out, resp.(*ledgerQuery.GetTransactionsResponse))
	return nil
}

func (c *Console) report(ctx context.Context) error {
	resp, err := c.mediator.Send(ctx, &ledgerQuery.GetProfitLossQuery{SessionID: c.sessionID})
	if err != nil {
		return err
	}
	writeProfitLoss(c.out, resp.(*ledgerQuery.GetProfitLossResponse))
	return nil
}

// resolve maps a 1-based listing index to an id; anything else is taken as an id
func resolve(arg string, ids []string) string {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(ids) {
		return ids[n-1]
	}
	return arg
}
