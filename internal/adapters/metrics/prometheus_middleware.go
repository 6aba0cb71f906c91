package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/mediator"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
)

// PrometheusMiddleware times each request and counts it by outcome.
// Request names drop the package, so "*commands.BuyTruckCommand" is
// recorded as "BuyTruckCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(extractCommandName(request), time.Since(start).Seconds(), outcomeOf(err))

		return response, err
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	if _, ok := shared.AsRejection(err); ok {
		return outcomeRejected
	}
	return outcomeError
}

func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// typeName renders the dynamic type of a response for log messages
func typeName(v interface{}) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
