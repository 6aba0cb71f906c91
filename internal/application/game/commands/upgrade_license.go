package commands

import (
	"context"
	"fmt"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/metrics"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

// UpgradeLicenseCommand buys the next license tier
type UpgradeLicenseCommand struct {
	Target string
}

// UpgradeLicenseResponse describes the new license
type UpgradeLicenseResponse struct {
	License world.LicenseCategory
	Fee     float64
	Message string
}

// UpgradeLicenseHandler handles the UpgradeLicense command
type UpgradeLicenseHandler struct {
	session  *game.Session
	recorder *LedgerRecorder
}

// NewUpgradeLicenseHandler creates a new UpgradeLicenseHandler
func NewUpgradeLicenseHandler(session *game.Session, recorder *LedgerRecorder) *UpgradeLicenseHandler {
	return &UpgradeLicenseHandler{session: session, recorder: recorder}
}

// Handle executes the UpgradeLicense command
func (h *UpgradeLicenseHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*UpgradeLicenseCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpgradeLicenseCommand")
	}

	// unknown categories are rejected and logged by the session
	target := world.LicenseCategory(cmd.Target)
	if parsed, err := world.ParseLicenseCategory(cmd.Target); err == nil {
		target = parsed
	}

	outcome, err := h.session.UpgradeLicense(target)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade license: %w", observeRejection(ctx, err))
	}

	h.recorder.Record(ctx, outcome.Movements)
	metrics.RecordLicenseUpgrade(target.String())

	return &UpgradeLicenseResponse{
		License: target,
		Fee:     -outcome.CashDelta(),
		Message: outcome.Message,
	}, nil
}
