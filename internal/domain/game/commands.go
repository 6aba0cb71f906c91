package game

import (
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/economy"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/fleet"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/job"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/ledger"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/player"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

// Command names used in rejections
const (
	CmdBuyTruck       = "buy truck"
	CmdAcceptJob      = "accept job"
	CmdStartTrip      = "start trip"
	CmdFinishTrip     = "finish trip"
	CmdUpgradeLicense = "upgrade license"
	CmdTakeLoan       = "take loan"
	CmdSelectTruck    = "select truck"
)

// BuyTruck purchases a truck outright, or financed with a 10% down payment
// and a 24 month loan for the rest.
func (s *Session) BuyTruck(modelID string, used, financed bool) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	model, ok := s.catalog.FindTruckModel(modelID)
	if !ok {
		return nil, s.reject(CmdBuyTruck, fmt.Sprintf("Unknown truck model: %s.", modelID))
	}

	price := fleet.PurchasePrice(model, used)
	upfront := price
	if financed {
		upfront = price * economy.TruckDownPaymentFraction
	}
	if s.state.Player.Money < upfront {
		return nil, s.reject(CmdBuyTruck, fmt.Sprintf("Not enough money for the %s down payment.", shared.FormatMoney(upfront)))
	}

	var loan *economy.Loan
	if financed {
		l, err := economy.NewLoan(shared.NewID(s.rng), price-upfront, economy.TruckFinancingRate, economy.TruckFinancingTermMonths)
		if err != nil {
			return nil, s.reject(CmdBuyTruck, fmt.Sprintf("Financing declined: %v.", err))
		}
		loan = l
	}

	s.touch()
	truck := fleet.NewTruck(shared.NewID(s.rng), model, used)
	movement := s.credit(Movement{
		Type:        ledger.TransactionTypeTruckPurchase,
		Amount:      -upfront,
		Description: fmt.Sprintf("%s (%s)", model.DisplayName(), purchaseKind(used, financed)),
		SubjectKind: ledger.SubjectTruck,
		SubjectID:   truck.ID,
	})

	s.state.Trucks = append(s.state.Trucks, truck)
	s.state.Player.InventoryTruckIDs = append(s.state.Player.InventoryTruckIDs, truck.ID)
	if s.state.Player.CurrentTruckID == "" {
		s.state.Player.CurrentTruckID = truck.ID
	}

	msg := fmt.Sprintf("Bought %s!", model.DisplayName())
	if loan != nil {
		s.state.Player.Loans = append(s.state.Player.Loans, *loan)
		msg = fmt.Sprintf("Financed %s!", model.DisplayName())
	}
	s.appendLog(msg)

	return &Outcome{
		Message:   msg,
		Movements: []Movement{movement},
		Truck:     &truck,
		Loan:      loan,
	}, nil
}

func purchaseKind(used, financed bool) string {
	kind := "new"
	if used {
		kind = "used"
	}
	if financed {
		kind += ", financed"
	}
	return kind
}

// AcceptJob takes a job off the board and makes it the active delivery
func (s *Session) AcceptJob(jobID string) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.ActiveJob != nil {
		return nil, s.reject(CmdAcceptJob, "Finish the current delivery before accepting another job.")
	}

	idx := -1
	for i, j := range s.state.AvailableJobs {
		if j.ID == jobID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, s.reject(CmdAcceptJob, "That job is no longer available.")
	}

	selected := s.state.AvailableJobs[idx]
	if !player.CanOperate(s.state.Player.License, selected.RequiredLicense) {
		return nil, s.reject(CmdAcceptJob, fmt.Sprintf("License %s required for this job (you hold %s).",
			selected.RequiredLicense, s.state.Player.License))
	}
	if _, ok := s.state.CurrentTruck(); !ok {
		return nil, s.reject(CmdAcceptJob, "Select a truck before accepting a job.")
	}

	s.touch()
	pool := make([]job.Job, 0, len(s.state.AvailableJobs)-1)
	pool = append(pool, s.state.AvailableJobs[:idx]...)
	pool = append(pool, s.state.AvailableJobs[idx+1:]...)
	s.state.AvailableJobs = pool

	s.state.ActiveJob = &selected
	s.state.Player.ActiveJobID = selected.ID

	msg := fmt.Sprintf("Accepted job: %s to %s.", selected.Cargo, s.catalog.CityName(selected.To))
	s.appendLog(msg)

	accepted := selected
	return &Outcome{Message: msg, Job: &accepted}, nil
}

// StartTrip puts the loaded truck on the road
func (s *Session) StartTrip() (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsDriving {
		return nil, s.reject(CmdStartTrip, "Already on the road.")
	}
	if s.state.ActiveJob == nil {
		return nil, s.reject(CmdStartTrip, "No active job to start.")
	}
	if _, ok := s.state.CurrentTruck(); !ok {
		return nil, s.reject(CmdStartTrip, "No truck selected.")
	}

	s.touch()
	s.state.IsDriving = true
	s.state.DrivingProgress = 0

	active := *s.state.ActiveJob
	msg := fmt.Sprintf("On the road: %s to %s.", s.catalog.CityName(active.From), s.catalog.CityName(active.To))
	s.appendLog(msg)
	return &Outcome{Message: msg, Job: &active}, nil
}

// AdvanceTrip is one driving tick. It reports the progress and whether the
// truck has arrived; it is a no-op unless the truck is on the road.
func (s *Session) AdvanceTrip() (progress float64, arrived bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsDriving {
		return s.state.DrivingProgress, false
	}
	if s.state.DrivingProgress >= 1 {
		return 1, true
	}

	s.touch()
	next := s.state.DrivingProgress + s.rules.ProgressStep
	if next >= 1-arrivalEpsilon {
		next = 1
	}
	s.state.DrivingProgress = next

	if next == 1 && s.state.ActiveJob != nil {
		s.appendLog(fmt.Sprintf("Arrived in %s. Confirm the delivery.", s.catalog.CityName(s.state.ActiveJob.To)))
	}
	return next, next == 1
}

// FinishTrip confirms an arrived delivery: pays out, grants experience and
// frees the truck for the next job.
func (s *Session) FinishTrip() (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.ActiveJob == nil {
		return nil, s.reject(CmdFinishTrip, "No active delivery to finish.")
	}
	if !s.state.IsDriving || s.state.DrivingProgress < 1 {
		return nil, s.reject(CmdFinishTrip, "The truck has not arrived yet.")
	}

	s.touch()
	delivered := *s.state.ActiveJob
	movements := []Movement{s.credit(Movement{
		Type:        ledger.TransactionTypeJobPayout,
		Amount:      float64(delivered.Payout),
		Description: fmt.Sprintf("%s %s to %s", delivered.Cargo, delivered.From, delivered.To),
		SubjectKind: ledger.SubjectJob,
		SubjectID:   delivered.ID,
	})}

	var costs *economy.TripCosts
	if idx := s.truckIndex(s.state.Player.CurrentTruckID); idx >= 0 {
		truck := &s.state.Trucks[idx]
		truck.AddMileage(delivered.Distance)

		if model, ok := s.catalog.FindTruckModel(truck.ModelID); ok {
			c := economy.TripCostAt(model, delivered.Distance, s.catalog.FuelPricePerLiter, s.catalog.MaintenanceCostPerKM)
			costs = &c
			if s.rules.DeductTripCosts && c.Total() > 0 {
				movements = append(movements, s.credit(Movement{
					Type:        ledger.TransactionTypeTripOperatingCosts,
					Amount:      -c.Total(),
					Description: fmt.Sprintf("Fuel %.1fL and maintenance", c.FuelConsumed),
					SubjectKind: ledger.SubjectTruck,
					SubjectID:   truck.ID,
				}))
			}
		}
	}

	leveled := s.state.Player.GainXP(player.XPForDistance(delivered.Distance))
	s.state.Player.History.Deliveries++
	s.state.Player.ActiveJobID = ""
	s.state.ActiveJob = nil
	s.state.IsDriving = false
	s.state.DrivingProgress = 0

	msg := fmt.Sprintf("Delivery complete! +%s", shared.FormatMoney(float64(delivered.Payout)))
	s.appendLog(msg)
	if costs != nil && s.rules.DeductTripCosts {
		s.appendLog(fmt.Sprintf("Operating costs: -%s.", shared.FormatMoney(costs.Total())))
	}
	if leveled {
		s.appendLog(fmt.Sprintf("Level up! You are now level %d.", s.state.Player.Level))
	}

	return &Outcome{
		Message:   msg,
		Movements: movements,
		Job:       &delivered,
		TripCosts: costs,
		LeveledUp: leveled,
	}, nil
}

// UpgradeLicense buys the next license tier. The requirements table decides
// the minimum level and the fee; tiers cannot be skipped.
func (s *Session) UpgradeLicense(target world.LicenseCategory) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.state.Player.License
	if !target.IsValid() {
		return nil, s.reject(CmdUpgradeLicense, fmt.Sprintf("Unknown license category: %s.", target))
	}
	if current.Covers(target) {
		return nil, s.reject(CmdUpgradeLicense, fmt.Sprintf("You already hold license %s.", current))
	}
	next, ok := current.Next()
	if !ok || next != target {
		return nil, s.reject(CmdUpgradeLicense, fmt.Sprintf("Earn license %s first.", next))
	}

	req, ok := s.catalog.Requirement(target)
	if !ok {
		return nil, s.reject(CmdUpgradeLicense, fmt.Sprintf("License %s is not offered.", target))
	}
	if s.state.Player.Level < req.MinLevel {
		return nil, s.reject(CmdUpgradeLicense, fmt.Sprintf("License %s requires level %d.", target, req.MinLevel))
	}
	if s.state.Player.Money < req.Cost {
		return nil, s.reject(CmdUpgradeLicense, fmt.Sprintf("Not enough money for the %s license fee.", shared.FormatMoney(req.Cost)))
	}

	s.touch()
	var movements []Movement
	if req.Cost > 0 {
		movements = append(movements, s.credit(Movement{
			Type:        ledger.TransactionTypeLicenseFee,
			Amount:      -req.Cost,
			Description: fmt.Sprintf("License %s exam", target),
			SubjectKind: ledger.SubjectLicense,
			SubjectID:   target.String(),
		}))
	}
	s.state.Player.License = target

	msg := fmt.Sprintf("License upgraded to %s!", target)
	s.appendLog(msg)
	return &Outcome{Message: msg, Movements: movements}, nil
}

// TakeLoan borrows cash at the standard 8% bank rate
func (s *Session) TakeLoan(amount float64, termMonths int) (*Outcome, error) {
	return s.TakeLoanAt(amount, termMonths, economy.CashLoanRate)
}

// TakeLoanAt borrows cash at an explicit annual rate
func (s *Session) TakeLoanAt(amount float64, termMonths int, annualRate float64) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount <= 0 {
		return nil, s.reject(CmdTakeLoan, "Loan amount must be positive.")
	}
	if termMonths < 1 {
		return nil, s.reject(CmdTakeLoan, "Loan term must be at least one month.")
	}
	if annualRate < 0 {
		return nil, s.reject(CmdTakeLoan, "Interest rate cannot be negative.")
	}

	loan, err := economy.NewLoan(shared.NewID(s.rng), amount, annualRate, termMonths)
	if err != nil {
		return nil, s.reject(CmdTakeLoan, fmt.Sprintf("Loan declined: %v.", err))
	}

	s.touch()
	movement := s.credit(Movement{
		Type:        ledger.TransactionTypeLoanDisbursement,
		Amount:      amount,
		Description: fmt.Sprintf("%d month loan at %.1f%%", termMonths, annualRate*100),
		SubjectKind: ledger.SubjectLoan,
		SubjectID:   loan.ID,
	})
	s.state.Player.Loans = append(s.state.Player.Loans, *loan)

	msg := fmt.Sprintf("Loan accepted: %s.", shared.FormatMoney(amount))
	s.appendLog(msg)
	return &Outcome{Message: msg, Movements: []Movement{movement}, Loan: loan}, nil
}

// TakeLoanOffer borrows one of the bank's packaged offers. The offer fixes
// the amount and term; interest is always the standard cash rate.
func (s *Session) TakeLoanOffer(index int) (*Outcome, error) {
	offers := economy.BankOffers()
	if index < 0 || index >= len(offers) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return nil, s.reject(CmdTakeLoan, fmt.Sprintf("Unknown loan offer %d.", index+1))
	}
	return s.TakeLoanAt(offers[index].Amount, offers[index].TermMonths, economy.CashLoanRate)
}

// SelectTruck makes an owned truck the current one. Selecting the current
// truck again changes nothing.
func (s *Session) SelectTruck(truckID string) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Player.OwnsTruck(truckID) || s.truckIndex(truckID) < 0 {
		return nil, s.reject(CmdSelectTruck, "You do not own that truck.")
	}
	if s.state.Player.CurrentTruckID == truckID {
		return &Outcome{}, nil
	}
	if s.state.IsDriving {
		return nil, s.reject(CmdSelectTruck, "Cannot switch trucks while driving.")
	}

	s.touch()
	s.state.Player.CurrentTruckID = truckID
	truck := s.state.Trucks[s.truckIndex(truckID)]

	name := truck.ModelID
	if model, ok := s.catalog.FindTruckModel(truck.ModelID); ok {
		name = model.DisplayName()
	}
	msg := fmt.Sprintf("Now driving %s.", name)
	s.appendLog(msg)
	return &Outcome{Message: msg, Truck: &truck}, nil
}

// BillLoans charges one installment on every open loan. Money is deducted
// even when it goes negative; settled loans are dropped.
func (s *Session) BillLoans() *Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := &Outcome{}
	if len(s.state.Player.Loans) == 0 {
		return outcome
	}
	s.touch()

	total := 0.0
	open := make([]economy.Loan, 0, len(s.state.Player.Loans))
	for i := range s.state.Player.Loans {
		loan := s.state.Player.Loans[i]
		if loan.RemainingBalance > 0 {
			paid := loan.Bill()
			total += paid
			outcome.Movements = append(outcome.Movements, s.credit(Movement{
				Type:        ledger.TransactionTypeLoanInstallment,
				Amount:      -paid,
				Description: fmt.Sprintf("Installment %d/%d", loan.PaidMonths, loan.TermMonths),
				SubjectKind: ledger.SubjectLoan,
				SubjectID:   loan.ID,
			}))
		}
		if !loan.IsSettled() {
			open = append(open, loan)
		}
	}
	s.state.Player.Loans = open

	if total > 0 {
		outcome.Message = fmt.Sprintf("Loan payments: -%s.", shared.FormatMoney(total))
		s.appendLog(outcome.Message)
	}
	if total > 0 && s.state.Player.Overdrawn() {
		s.appendLog(fmt.Sprintf("Account overdrawn: %s.", shared.FormatMoney(s.state.Player.Money)))
	}
	return outcome
}

// RefreshJobs replaces the job board with offers for the current level
func (s *Session) RefreshJobs() *Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.state.AvailableJobs = s.generator.GenerateBatch(s.rules.JobPoolSize, s.state.Player.Level)
	msg := fmt.Sprintf("Job board refreshed: %d offers.", len(s.state.AvailableJobs))
	s.appendLog(msg)
	return &Outcome{Message: msg}
}
