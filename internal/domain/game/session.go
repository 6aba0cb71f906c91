package game

import (
	"sync"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/company"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/fleet"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/job"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/player"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

// arrivalEpsilon snaps accumulated float steps onto exactly 1.0
const arrivalEpsilon = 1e-9

// Rules tune a session. Zero values fall back to DefaultRules.
type Rules struct {
	PlayerName      string
	StartingMoney   float64
	JobPoolSize     int
	ProgressStep    float64
	LogCapacity     int
	DeductTripCosts bool
	Weather         string
}

// DefaultRules returns the standard career settings
func DefaultRules() Rules {
	return Rules{
		PlayerName:    "Driver 001",
		StartingMoney: 0, // catalog value
		JobPoolSize:   10,
		ProgressStep:  0.05,
		LogCapacity:   50,
		Weather:       "sunny",
	}
}

func (r Rules) withDefaults(catalog *world.Catalog) Rules {
	d := DefaultRules()
	if r.PlayerName == "" {
		r.PlayerName = d.PlayerName
	}
	if r.StartingMoney <= 0 {
		r.StartingMoney = catalog.StartingMoney
	}
	if r.JobPoolSize <= 0 {
		r.JobPoolSize = d.JobPoolSize
	}
	if r.ProgressStep <= 0 {
		r.ProgressStep = d.ProgressStep
	}
	if r.LogCapacity <= 0 {
		r.LogCapacity = d.LogCapacity
	}
	if r.Weather == "" {
		r.Weather = d.Weather
	}
	return r
}

// Session owns the state of one career. All methods are safe for concurrent
// use; every mutation runs under the session mutex so scheduler ticks and
// player commands never interleave.
type Session struct {
	mu        sync.Mutex
	id        string
	catalog   *world.Catalog
	generator *job.Generator
	rng       shared.RandomSource
	clock     shared.Clock
	rules     Rules
	state     GameState
}

// NewSession seeds a level 1 career with a fresh job board
func NewSession(catalog *world.Catalog, rng shared.RandomSource, clock shared.Clock, rules Rules) *Session {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	rules = rules.withDefaults(catalog)

	s := &Session{
		id:        shared.NewID(rng),
		catalog:   catalog,
		generator: job.NewGenerator(catalog, rng, clock),
		rng:       rng,
		clock:     clock,
		rules:     rules,
	}

	profile := player.NewProfile(rules.PlayerName, rules.StartingMoney)
	s.state = GameState{
		Player:        profile,
		Trucks:        []fleet.TruckInstance{},
		Companies:     company.DefaultRivals(),
		AvailableJobs: s.generator.GenerateBatch(rules.JobPoolSize, profile.Level),
		CurrentTime:   clock.Now(),
		Weather:       rules.Weather,
		GameLog:       []string{WelcomeMessage},
	}
	return s
}

// ID identifies the career, e.g. for ledger entries
func (s *Session) ID() string {
	return s.id
}

// Catalog returns the static world tables of the session
func (s *Session) Catalog() *world.Catalog {
	return s.catalog
}

// Rules returns the effective session settings
func (s *Session) Rules() Rules {
	return s.rules
}

// Snapshot returns a deep copy of the current state
func (s *Session) Snapshot() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Log returns the event log, newest first
func (s *Session) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.state.GameLog...)
}

// Phase returns the current driving sub-machine state
func (s *Session) Phase() TripPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Phase()
}

// appendLog prepends a message and trims to capacity. Caller holds mu.
func (s *Session) appendLog(msg string) {
	entries := make([]string, 0, len(s.state.GameLog)+1)
	entries = append(entries, msg)
	entries = append(entries, s.state.GameLog...)
	if len(entries) > s.rules.LogCapacity {
		entries = entries[:s.rules.LogCapacity]
	}
	s.state.GameLog = entries
}

// reject logs the reason and returns the rejection. Caller holds mu.
func (s *Session) reject(command, reason string) error {
	s.appendLog(reason)
	return shared.NewRejectionError(command, reason)
}

// touch advances the state clock. Caller holds mu.
func (s *Session) touch() {
	s.state.CurrentTime = s.clock.Now()
}

// credit changes money and returns the booked movement. Caller holds mu.
func (s *Session) credit(m Movement) Movement {
	m.BalanceBefore = s.state.Player.Money
	s.state.Player.Money += m.Amount
	m.BalanceAfter = s.state.Player.Money
	return m
}

// truckIndex returns the index of a truck in the collection. Caller holds mu.
func (s *Session) truckIndex(id string) int {
	for i := range s.state.Trucks {
		if s.state.Trucks[i].ID == id {
			return i
		}
	}
	return -1
}
