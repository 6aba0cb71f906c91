package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "trucklife"
	// Subsystem for career metrics
	subsystem = "career"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalCareerCollector is the singleton career metrics collector
	// Set by SetGlobalCareerCollector() when metrics are enabled
	globalCareerCollector CareerMetricsRecorder

	// globalFinancialCollector is the singleton financial metrics collector
	// Set by SetGlobalFinancialCollector() when metrics are enabled
	globalFinancialCollector FinancialMetricsRecorder
)

// CareerMetricsRecorder defines the interface for recording gameplay events
type CareerMetricsRecorder interface {
	RecordRejection(command string)
	RecordTruckPurchase(modelID string, used, financed bool)
	RecordDelivery(cargo, urgency string, distance, payout float64)
	RecordLevelUp(level int)
	RecordLicenseUpgrade(category string)
}

// FinancialMetricsRecorder defines the interface for recording financial metrics
type FinancialMetricsRecorder interface {
	RecordTransaction(sessionID string, transactionType string, category string, amount float64, balance float64)
	RecordLoanOriginated(kind string, amount float64)
	RecordLoanBilling(total float64)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset drops the registry and the global recorders
func Reset() {
	Registry = nil
	globalCareerCollector = nil
	globalFinancialCollector = nil
}

// SetGlobalCareerCollector sets the global career metrics collector
func SetGlobalCareerCollector(collector CareerMetricsRecorder) {
	globalCareerCollector = collector
}

// RecordRejection records a rejected player command globally
func RecordRejection(command string) {
	if globalCareerCollector != nil {
		globalCareerCollector.RecordRejection(command)
	}
}

// RecordTruckPurchase records a truck purchase globally
func RecordTruckPurchase(modelID string, used, financed bool) {
	if globalCareerCollector != nil {
		globalCareerCollector.RecordTruckPurchase(modelID, used, financed)
	}
}

// RecordDelivery records a completed delivery globally
func RecordDelivery(cargo, urgency string, distance, payout float64) {
	if globalCareerCollector != nil {
		globalCareerCollector.RecordDelivery(cargo, urgency, distance, payout)
	}
}

// RecordLevelUp records a level gain globally
func RecordLevelUp(level int) {
	if globalCareerCollector != nil {
		globalCareerCollector.RecordLevelUp(level)
	}
}

// RecordLicenseUpgrade records a license purchase globally
func RecordLicenseUpgrade(category string) {
	if globalCareerCollector != nil {
		globalCareerCollector.RecordLicenseUpgrade(category)
	}
}

// SetGlobalFinancialCollector sets the global financial metrics collector
func SetGlobalFinancialCollector(collector FinancialMetricsRecorder) {
	globalFinancialCollector = collector
}

// RecordTransaction records a ledger transaction globally
func RecordTransaction(sessionID string, transactionType string, category string, amount float64, balance float64) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordTransaction(sessionID, transactionType, category, amount, balance)
	}
}

// RecordLoanOriginated records a new loan globally
func RecordLoanOriginated(kind string, amount float64) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordLoanOriginated(kind, amount)
	}
}

// RecordLoanBilling records a monthly billing run globally
func RecordLoanBilling(total float64) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordLoanBilling(total)
	}
}
