package metrics

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	gameQueries "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/queries"
)

// CareerMetricsCollector handles gameplay metrics (deliveries, fleet, progression)
type CareerMetricsCollector struct {
	// Dependencies
	mediator     common.Mediator
	pollInterval time.Duration

	// Event metrics
	rejectionsTotal  *prometheus.CounterVec
	trucksPurchased  *prometheus.CounterVec
	deliveriesTotal  *prometheus.CounterVec
	deliveryDistance prometheus.Histogram
	deliveryPayout   *prometheus.HistogramVec
	levelUpsTotal    *prometheus.CounterVec
	licenseUpgrades  *prometheus.CounterVec

	// State gauges
	driverLevel   prometheus.Gauge
	driverXP      prometheus.Gauge
	reputation    prometheus.Gauge
	fleetSize     prometheus.Gauge
	openLoans     prometheus.Gauge
	jobBoardSize  prometheus.Gauge
	tripProgress  prometheus.Gauge
	tripPhase     *prometheus.GaugeVec
	licenseHolder *prometheus.GaugeVec

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewCareerMetricsCollector creates a new career metrics collector
func NewCareerMetricsCollector(mediator common.Mediator) *CareerMetricsCollector {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &CareerMetricsCollector{
		mediator:     mediator,
		pollInterval: DefaultPollInterval,

		rejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rejections_total",
				Help:      "Player commands rejected by game rules",
			},
			[]string{"command"},
		),

		trucksPurchased: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trucks_purchased_total",
				Help:      "Trucks bought by model, condition and payment",
			},
			[]string{"model", "condition", "payment"},
		),

		deliveriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "deliveries_total",
				Help:      "Completed deliveries by cargo and urgency",
			},
			[]string{"cargo", "urgency"},
		),

		deliveryDistance: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "delivery_distance_km",
				Help:      "Distance of completed deliveries",
				Buckets:   []float64{250, 500, 750, 1000, 1500, 2000, 3000},
			},
		),

		deliveryPayout: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "delivery_payout",
				Help:      "Payout distribution of completed deliveries",
				Buckets:   []float64{2500, 5000, 10000, 20000, 40000, 80000},
			},
			[]string{"urgency"},
		),

		levelUpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "level_ups_total",
				Help:      "Level gains by level reached",
			},
			[]string{"level"},
		),

		licenseUpgrades: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "license_upgrades_total",
				Help:      "License purchases by category",
			},
			[]string{"category"},
		),

		driverLevel:  gauge("driver_level", "Current driver level"),
		driverXP:     gauge("driver_xp", "Current driver experience points"),
		reputation:   gauge("driver_reputation", "Current driver reputation"),
		fleetSize:    gauge("fleet_size", "Trucks owned by the driver"),
		openLoans:    gauge("open_loans", "Loans with a remaining balance"),
		jobBoardSize: gauge("job_board_size", "Offers on the job board"),
		tripProgress: gauge("trip_progress_ratio", "Progress of the current trip (0-1)"),

		tripPhase: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trip_phase",
				Help:      "1 for the current trip phase, 0 otherwise",
			},
			[]string{"phase"},
		),

		licenseHolder: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "license_held",
				Help:      "1 for the license category currently held",
			},
			[]string{"category"},
		),
	}
}

// WithPollInterval overrides the gauge refresh interval
func (c *CareerMetricsCollector) WithPollInterval(interval time.Duration) *CareerMetricsCollector {
	if interval > 0 {
		c.pollInterval = interval
	}
	return c
}

// Register registers all career metrics with the Prometheus registry
func (c *CareerMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.rejectionsTotal,
		c.trucksPurchased,
		c.deliveriesTotal,
		c.deliveryDistance,
		c.deliveryPayout,
		c.levelUpsTotal,
		c.licenseUpgrades,
		c.driverLevel,
		c.driverXP,
		c.reputation,
		c.fleetSize,
		c.openLoans,
		c.jobBoardSize,
		c.tripProgress,
		c.tripPhase,
		c.licenseHolder,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Start begins the state polling goroutine
func (c *CareerMetricsCollector) Start(ctx context.Context) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollState()
}

// Stop gracefully stops the collector
func (c *CareerMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *CareerMetricsCollector) pollState() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	c.updateState(c.ctx)

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.updateState(c.ctx)
		}
	}
}

// updateState refreshes gauges from a session snapshot
func (c *CareerMetricsCollector) updateState(ctx context.Context) {
	if c.mediator == nil {
		return
	}

	response, err := c.mediator.Send(ctx, &gameQueries.GetSnapshotQuery{})
	if err != nil {
		common.LoggerFromContext(ctx).Log(common.LevelError, "Failed to fetch game snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	snapshot, ok := response.(*gameQueries.GetSnapshotResponse)
	if !ok {
		return
	}

	state := snapshot.State
	c.driverLevel.Set(float64(state.Player.Level))
	c.driverXP.Set(float64(state.Player.XP))
	c.reputation.Set(float64(state.Player.Reputation))
	c.fleetSize.Set(float64(len(state.PlayerTrucks())))
	c.jobBoardSize.Set(float64(len(state.AvailableJobs)))
	c.tripProgress.Set(state.DrivingProgress)

	open := 0
	for _, loan := range state.Player.Loans {
		if !loan.IsSettled() {
			open++
		}
	}
	c.openLoans.Set(float64(open))

	c.tripPhase.Reset()
	c.tripPhase.WithLabelValues(snapshot.Phase.String()).Set(1)

	c.licenseHolder.Reset()
	c.licenseHolder.WithLabelValues(state.Player.License.String()).Set(1)
}

// RecordRejection records a rejected command
func (c *CareerMetricsCollector) RecordRejection(command string) {
	c.rejectionsTotal.WithLabelValues(command).Inc()
}

// RecordTruckPurchase records a truck purchase
func (c *CareerMetricsCollector) RecordTruckPurchase(modelID string, used, financed bool) {
	condition := "new"
	if used {
		condition = "used"
	}
	payment := "cash"
	if financed {
		payment = "financed"
	}
	c.trucksPurchased.WithLabelValues(modelID, condition, payment).Inc()
}

// RecordDelivery records a completed delivery
func (c *CareerMetricsCollector) RecordDelivery(cargo, urgency string, distance, payout float64) {
	c.deliveriesTotal.WithLabelValues(cargo, urgency).Inc()
	c.deliveryDistance.Observe(distance)
	c.deliveryPayout.WithLabelValues(urgency).Observe(payout)
}

// RecordLevelUp records reaching a new level
func (c *CareerMetricsCollector) RecordLevelUp(level int) {
	c.levelUpsTotal.WithLabelValues(strconv.Itoa(level)).Inc()
}

// RecordLicenseUpgrade records a license purchase
func (c *CareerMetricsCollector) RecordLicenseUpgrade(category string) {
	c.licenseUpgrades.WithLabelValues(category).Inc()
}
