package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	ledgerCmd "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/ledger/commands"
)

// MockMediator is a test double for the Mediator interface.
// It captures ledger bookings so handler tests can assert on them
// without a database.
type MockMediator struct {
	mu       sync.Mutex
	sendFunc func(ctx context.Context, request common.Request) (common.Response, error)
	recorded []*ledgerCmd.RecordTransactionCommand
	callLog  []string
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{
		callLog: []string{},
	}
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request common.Request) (common.Response, error) {
	m.mu.Lock()
	m.callLog = append(m.callLog, fmt.Sprintf("%T", request))
	sendFunc := m.sendFunc
	m.mu.Unlock()

	// Use custom function if provided
	if sendFunc != nil {
		return sendFunc(ctx, request)
	}

	switch req := request.(type) {
	case *ledgerCmd.RecordTransactionCommand:
		m.mu.Lock()
		m.recorded = append(m.recorded, req)
		m.mu.Unlock()
		return &ledgerCmd.RecordTransactionResponse{}, nil

	default:
		return nil, fmt.Errorf("unsupported request type: %T", request)
	}
}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request common.Request) (common.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// Recorded returns the ledger bookings received so far
func (m *MockMediator) Recorded() []*ledgerCmd.RecordTransactionCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*ledgerCmd.RecordTransactionCommand(nil), m.recorded...)
}

// CallLog returns the request types sent, in order
func (m *MockMediator) CallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.callLog...)
}

// Register implements the Mediator interface (no-op for mock)
func (m *MockMediator) Register(requestType reflect.Type, handler common.RequestHandler) error {
	return nil
}

// RegisterMiddleware implements the Mediator interface (no-op for mock)
func (m *MockMediator) RegisterMiddleware(middleware common.Middleware) {}
