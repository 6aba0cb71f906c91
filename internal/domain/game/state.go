package game

import (
	"time"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/company"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/economy"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/fleet"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/job"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/player"
)

// WelcomeMessage is the first entry of every event log
const WelcomeMessage = "Welcome to Truck Life Simulator!"

// TripPhase is the state of the driving sub-machine
type TripPhase string

const (
	// PhaseIdle: no job accepted
	PhaseIdle TripPhase = "IDLE"
	// PhaseLoaded: job accepted, not yet on the road
	PhaseLoaded TripPhase = "LOADED"
	// PhaseDriving: on the road, progress below 1
	PhaseDriving TripPhase = "DRIVING"
	// PhaseArrived: progress reached 1, waiting for delivery confirmation
	PhaseArrived TripPhase = "ARRIVED"
)

func (p TripPhase) String() string {
	return string(p)
}

// GameState is the whole mutable world of one career
type GameState struct {
	Player          player.Profile
	Trucks          []fleet.TruckInstance
	Companies       []company.Company
	AvailableJobs   []job.Job
	ActiveJob       *job.Job
	CurrentTime     time.Time
	Weather         string
	IsDriving       bool
	DrivingProgress float64
	GameLog         []string // newest first
}

// Phase derives the driving sub-machine state
func (s GameState) Phase() TripPhase {
	switch {
	case s.ActiveJob == nil:
		return PhaseIdle
	case !s.IsDriving:
		return PhaseLoaded
	case s.DrivingProgress < 1:
		return PhaseDriving
	default:
		return PhaseArrived
	}
}

// FindTruck looks up a truck in the collection
func (s GameState) FindTruck(id string) (fleet.TruckInstance, bool) {
	for _, t := range s.Trucks {
		if t.ID == id {
			return t, true
		}
	}
	return fleet.TruckInstance{}, false
}

// CurrentTruck returns the selected truck, if any
func (s GameState) CurrentTruck() (fleet.TruckInstance, bool) {
	if s.Player.CurrentTruckID == "" {
		return fleet.TruckInstance{}, false
	}
	return s.FindTruck(s.Player.CurrentTruckID)
}

// PlayerTrucks returns the trucks owned by the player
func (s GameState) PlayerTrucks() []fleet.TruckInstance {
	owned := make([]fleet.TruckInstance, 0, len(s.Player.InventoryTruckIDs))
	for _, t := range s.Trucks {
		if t.OwnerID == fleet.OwnerPlayer {
			owned = append(owned, t)
		}
	}
	return owned
}

// clone returns a deep copy so callers never alias session internals
func (s *GameState) clone() GameState {
	c := *s

	c.Player.InventoryTruckIDs = append([]string(nil), s.Player.InventoryTruckIDs...)
	c.Player.Loans = append([]economy.Loan(nil), s.Player.Loans...)
	c.Trucks = append([]fleet.TruckInstance(nil), s.Trucks...)
	c.AvailableJobs = append([]job.Job(nil), s.AvailableJobs...)
	c.GameLog = append([]string(nil), s.GameLog...)

	c.Companies = make([]company.Company, len(s.Companies))
	for i, co := range s.Companies {
		co.FleetIDs = append([]string(nil), co.FleetIDs...)
		c.Companies[i] = co
	}

	if s.ActiveJob != nil {
		active := *s.ActiveJob
		c.ActiveJob = &active
	}
	return c
}
