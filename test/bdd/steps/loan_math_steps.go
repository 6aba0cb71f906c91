package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/economy"
)

type loanMathContext struct {
	payment  float64
	schedule []economy.Installment
	err      error
}

func (lc *loanMathContext) reset() {
	lc.payment = 0
	lc.schedule = nil
	lc.err = nil
}

// When steps

func (lc *loanMathContext) iComputeTheMonthlyPayment(principal, rate float64, months int) error {
	lc.payment, lc.err = economy.MonthlyPayment(principal, rate, months)
	return nil
}

func (lc *loanMathContext) iBuildTheAmortizationSchedule(principal, rate float64, months int) error {
	lc.schedule, lc.err = economy.AmortizationSchedule(principal, rate, months)
	return nil
}

// Then steps

func (lc *loanMathContext) theMonthlyPaymentShouldBe(expected float64) error {
	if lc.err != nil {
		return fmt.Errorf("expected a payment, got error: %v", lc.err)
	}
	if math.Abs(lc.payment-expected) > 0.01 {
		return fmt.Errorf("expected monthly payment %.2f, got %.4f", expected, lc.payment)
	}
	return nil
}

func (lc *loanMathContext) theLoanComputationShouldFailWith(expected string) error {
	if lc.err == nil {
		return fmt.Errorf("expected error '%s', but the computation succeeded", expected)
	}
	if lc.err.Error() != expected {
		return fmt.Errorf("expected error '%s', got '%s'", expected, lc.err.Error())
	}
	return nil
}

func (lc *loanMathContext) theScheduleShouldHaveInstallments(expected int) error {
	if len(lc.schedule) != expected {
		return fmt.Errorf("expected %d installments, got %d", expected, len(lc.schedule))
	}
	return nil
}

func (lc *loanMathContext) theFinalBalanceShouldBeZero() error {
	if len(lc.schedule) == 0 {
		return fmt.Errorf("no schedule available")
	}
	if last := lc.schedule[len(lc.schedule)-1]; last.Balance != 0 {
		return fmt.Errorf("expected final balance 0, got %.4f", last.Balance)
	}
	return nil
}

func (lc *loanMathContext) thePrincipalPartsShouldAddUpTo(expected float64) error {
	sum := 0.0
	for _, i := range lc.schedule {
		sum += i.Principal
	}
	if math.Abs(sum-expected) > 0.01 {
		return fmt.Errorf("expected principal parts to add up to %.2f, got %.4f", expected, sum)
	}
	return nil
}

func (lc *loanMathContext) theInterestPartShouldShrinkEveryMonth() error {
	for i := 1; i < len(lc.schedule); i++ {
		if lc.schedule[i].Interest >= lc.schedule[i-1].Interest {
			return fmt.Errorf("interest of month %d (%.4f) is not below month %d (%.4f)",
				i+1, lc.schedule[i].Interest, i, lc.schedule[i-1].Interest)
		}
	}
	return nil
}

func InitializeLoanMathScenario(ctx *godog.ScenarioContext) {
	lc := &loanMathContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		lc.reset()
		return ctx, nil
	})

	// When steps
	ctx.Step(`^I compute the monthly payment for ([0-9.]+) at ([0-9.]+) annual over (-?\d+) months$`, lc.iComputeTheMonthlyPayment)
	ctx.Step(`^I build the amortization schedule for (-?[0-9.]+) at ([0-9.]+) annual over (-?\d+) months$`, lc.iBuildTheAmortizationSchedule)

	// Then steps
	ctx.Step(`^the monthly payment should be ([0-9.]+)$`, lc.theMonthlyPaymentShouldBe)
	ctx.Step(`^the loan computation should fail with "([^"]*)"$`, lc.theLoanComputationShouldFailWith)
	ctx.Step(`^the schedule should have (\d+) installments$`, lc.theScheduleShouldHaveInstallments)
	ctx.Step(`^the final balance should be zero$`, lc.theFinalBalanceShouldBeZero)
	ctx.Step(`^the principal parts should add up to ([0-9.]+)$`, lc.thePrincipalPartsShouldAddUpTo)
	ctx.Step(`^the interest part should shrink every month$`, lc.theInterestPartShouldShrinkEveryMonth)
}
