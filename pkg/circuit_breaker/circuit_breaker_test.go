package circuit_breaker_test

import (
	"errors"
	"testing"
	"time"

	cb "github.com/Astemirdum/loan-ledger/pkg/circuit_breaker"
	"github.com/stretchr/testify/require"
)

var errBroker = errors.New("broker down")

func ok() error   { return nil }
func fail() error { return errBroker }

func Test_circuitBreaker_Call(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	breaker := cb.New(cb.Settings{
		RecordLength:     4,
		Timeout:          time.Second,
		Percentile:       0.5,
		RecoveryRequests: 2,
	}, cb.WithNow(func() time.Time { return now }))

	require.NoError(t, breaker.Call(ok))
	require.NoError(t, breaker.Call(ok))
	require.ErrorIs(t, breaker.Call(fail), errBroker)
	require.Equal(t, cb.Closed, breaker.State())

	// 2 of 4 failed
	require.ErrorIs(t, breaker.Call(fail), errBroker)
	require.Equal(t, cb.Open, breaker.State())

	called := false
	err := breaker.Call(func() error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, cb.ErrOpenCB)
	require.False(t, called)

	now = now.Add(2 * time.Second)
	require.NoError(t, breaker.Call(ok))
	require.Equal(t, cb.HalfOpen, breaker.State())
	require.NoError(t, breaker.Call(ok))
	require.Equal(t, cb.Closed, breaker.State())
}

func Test_circuitBreaker_HalfOpenFailure(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	breaker := cb.New(cb.Settings{
		RecordLength:     2,
		Timeout:          time.Second,
		Percentile:       0.5,
		RecoveryRequests: 3,
	}, cb.WithNow(func() time.Time { return now }))

	require.Error(t, breaker.Call(fail))
	require.Equal(t, cb.Open, breaker.State())

	now = now.Add(time.Second)
	require.ErrorIs(t, breaker.Call(fail), errBroker)
	require.Equal(t, cb.Open, breaker.State())
	require.ErrorIs(t, breaker.Call(ok), cb.ErrOpenCB)

	breaker.Reset()
	require.Equal(t, cb.Closed, breaker.State())
	require.NoError(t, breaker.Call(ok))
}
