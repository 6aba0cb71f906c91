package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	gameCmd "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/commands"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
)

const (
	// DefaultDriveTick is the wall time between trip progress steps
	DefaultDriveTick = 500 * time.Millisecond
	// DefaultBillingInterval is one simulated month
	DefaultBillingInterval = 2 * time.Minute
)

// Scheduler runs the two background clocks of a session: the driving ticker,
// alive only while a trip is under way, and the loan billing ticker, alive
// for the whole session.
type Scheduler struct {
	session         *game.Session
	mediator        common.Mediator
	driveTick       time.Duration
	billingInterval time.Duration

	mu    sync.Mutex
	drive *driveRun

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

type driveRun struct {
	cancel context.CancelFunc
}

// New creates a scheduler. Zero intervals use the defaults.
func New(session *game.Session, mediator common.Mediator, driveTick, billingInterval time.Duration) *Scheduler {
	if driveTick <= 0 {
		driveTick = DefaultDriveTick
	}
	if billingInterval <= 0 {
		billingInterval = DefaultBillingInterval
	}
	return &Scheduler{
		session:         session,
		mediator:        mediator,
		driveTick:       driveTick,
		billingInterval: billingInterval,
	}
}

// Start begins loan billing for the session lifetime
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancelFunc = context.WithCancel(ctx)
	s.mu.Unlock()

	s.wg.Add(1)
	go s.billLoans(s.ctx)
}

// Stop cancels both tickers and waits for them to exit
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	if s.drive != nil {
		s.drive.cancel()
		s.drive = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// Arm starts the driving ticker unless it is already running
func (s *Scheduler) Arm(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drive != nil {
		return
	}

	parent := s.ctx
	if parent == nil {
		parent = context.WithoutCancel(ctx)
	}
	if parent.Err() != nil {
		return
	}

	runCtx, cancel := context.WithCancel(parent)
	run := &driveRun{cancel: cancel}
	s.drive = run

	s.wg.Add(1)
	go s.advanceTrip(runCtx, run)
}

// Disarm stops the driving ticker
func (s *Scheduler) Disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drive != nil {
		s.drive.cancel()
		s.drive = nil
	}
}

// Driving reports whether the driving ticker is running
func (s *Scheduler) Driving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drive != nil
}

func (s *Scheduler) advanceTrip(ctx context.Context, run *driveRun) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		if s.drive == run {
			s.drive = nil
		}
		s.mu.Unlock()
		run.cancel()
	}()

	ticker := time.NewTicker(s.driveTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			progress, arrived := s.session.AdvanceTrip()
			if arrived {
				common.LoggerFromContext(ctx).Log(common.LevelInfo, "Truck arrived", map[string]interface{}{
					"progress": progress,
				})
				return
			}
			if s.session.Phase() != game.PhaseDriving {
				return
			}
		}
	}
}

func (s *Scheduler) billLoans(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.billingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.mediator.Send(ctx, &gameCmd.BillLoansCommand{}); err != nil {
				common.LoggerFromContext(ctx).Log(common.LevelError, "Loan billing failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

// Ensure Scheduler can drive the trip commands
var _ gameCmd.TripTimer = (*Scheduler)(nil)
