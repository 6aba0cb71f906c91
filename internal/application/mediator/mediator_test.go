package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/mediator"
)

type pingQuery struct{ Value string }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	q, ok := request.(*pingQuery)
	if !ok {
		return nil, errors.New("invalid request type")
	}
	return "pong:" + q.Value, nil
}

func TestSend_DispatchesByType(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	resp, err := m.Send(context.Background(), &pingQuery{Value: "a"})

	require.NoError(t, err)
	assert.Equal(t, "pong:a", resp)
}

func TestRegister_RejectsDuplicates(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	assert.Error(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))
}

func TestSend_UnknownRequest(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), &pingQuery{})

	assert.Error(t, err)
}

func TestSend_MiddlewareOrder(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	var calls []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			calls = append(calls, name+":before")
			resp, err := next(ctx, request)
			calls = append(calls, name+":after")
			return resp, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))

	_, err := m.Send(context.Background(), &pingQuery{Value: "b"})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}
