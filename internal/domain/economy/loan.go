package economy

import (
	"errors"
	"fmt"
	"math"
)

// settlementEpsilon absorbs float residue so the final installment closes the loan
const settlementEpsilon = 0.005

// ErrInvalidTerm is returned for loan terms shorter than one month
var ErrInvalidTerm = errors.New("loan term must be at least one month")

// ErrInvalidPrincipal is returned for non-positive loan amounts
var ErrInvalidPrincipal = errors.New("loan principal must be positive")

// MonthlyPayment returns the fixed installment of an amortizing loan:
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1), r = annualRate/12
//
// A zero rate degrades to P/n.
func MonthlyPayment(principal, annualRate float64, termMonths int) (float64, error) {
	if termMonths < 1 {
		return 0, ErrInvalidTerm
	}
	r := annualRate / 12
	n := float64(termMonths)
	if r == 0 {
		return principal / n, nil
	}
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1), nil
}

// Loan is an amortizing debt owed by the player.
// RemainingBalance is the total still owed including interest.
type Loan struct {
	ID               string
	Principal        float64
	RemainingBalance float64
	InterestRate     float64 // monthly rate, decimal
	MonthlyPayment   float64
	TermMonths       int
	PaidMonths       int
}

// NewLoan opens a loan whose balance is the full repayable amount over its term
func NewLoan(id string, amount, annualRate float64, termMonths int) (*Loan, error) {
	if amount <= 0 {
		return nil, ErrInvalidPrincipal
	}
	payment, err := MonthlyPayment(amount, annualRate, termMonths)
	if err != nil {
		return nil, err
	}
	return &Loan{
		ID:               id,
		Principal:        amount,
		RemainingBalance: payment * float64(termMonths),
		InterestRate:     annualRate / 12,
		MonthlyPayment:   payment,
		TermMonths:       termMonths,
		PaidMonths:       0,
	}, nil
}

// Bill charges one period: min(balance, installment). Returns the amount charged.
func (l *Loan) Bill() float64 {
	if l.RemainingBalance <= 0 {
		return 0
	}
	payment := math.Min(l.RemainingBalance, l.MonthlyPayment)
	l.RemainingBalance -= payment
	if l.RemainingBalance < settlementEpsilon {
		payment += l.RemainingBalance
		l.RemainingBalance = 0
	}
	l.PaidMonths++
	return payment
}

// IsSettled reports whether nothing is owed any more
func (l *Loan) IsSettled() bool {
	return l.RemainingBalance <= 0
}

// TotalRepayable is the liability at origination
func (l *Loan) TotalRepayable() float64 {
	return l.MonthlyPayment * float64(l.TermMonths)
}

// RepaidFraction is how much of the original liability has been paid, 0..1
func (l *Loan) RepaidFraction() float64 {
	total := l.TotalRepayable()
	if total <= 0 {
		return 1
	}
	return 1 - l.RemainingBalance/total
}

func (l *Loan) String() string {
	return fmt.Sprintf("Loan[%s, principal=%.2f, remaining=%.2f, %d/%d months]",
		l.ID, l.Principal, l.RemainingBalance, l.PaidMonths, l.TermMonths)
}

// Installment is one row of an amortization table
type Installment struct {
	Month     int
	Payment   float64
	Interest  float64
	Principal float64
	Balance   float64 // outstanding principal after this payment
}

// AmortizationSchedule splits each installment into interest and principal
func AmortizationSchedule(principal, annualRate float64, termMonths int) ([]Installment, error) {
	if principal <= 0 {
		return nil, ErrInvalidPrincipal
	}
	payment, err := MonthlyPayment(principal, annualRate, termMonths)
	if err != nil {
		return nil, err
	}

	r := annualRate / 12
	balance := principal
	schedule := make([]Installment, 0, termMonths)
	for month := 1; month <= termMonths; month++ {
		interest := balance * r
		principalPart := payment - interest
		balance -= principalPart
		if month == termMonths || balance < settlementEpsilon {
			balance = 0
		}
		schedule = append(schedule, Installment{
			Month:     month,
			Payment:   payment,
			Interest:  interest,
			Principal: principalPart,
			Balance:   balance,
		})
	}
	return schedule, nil
}
