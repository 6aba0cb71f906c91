package common

import "github.com/oseiasoliveira3390-bot/Truck-life/internal/application/mediator"

// Handlers and adapters depend on common only; the dispatch machinery
// lives in the mediator package.
type (
	Request        = mediator.Request
	Response       = mediator.Response
	RequestHandler = mediator.RequestHandler
	HandlerFunc    = mediator.HandlerFunc
	Middleware     = mediator.Middleware
	Mediator       = mediator.Mediator
)

// NewMediator returns an empty mediator with no handlers registered
func NewMediator() Mediator {
	return mediator.NewMediator()
}
