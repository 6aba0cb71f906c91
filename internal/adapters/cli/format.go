package cli

import (
	"fmt"
	"strings"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
)

const ruler = "─────────────────────────────────────────────────────────────────────────────"

// formatAmount formats an amount with +/- sign
func formatAmount(amount float64) string {
	if amount >= 0 {
		return "+" + shared.FormatMoney(amount)
	}
	return shared.FormatMoney(amount)
}

// progressBar renders a 0-1 ratio as a fixed width bar
func progressBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// reasonOf returns the player-facing text of an error
func reasonOf(err error) string {
	if rejection, ok := shared.AsRejection(err); ok {
		return rejection.Reason()
	}
	return err.Error()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
