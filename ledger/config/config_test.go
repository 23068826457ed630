package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("LEDGER_MAX_LOANS_PER_PATRON", "3")
	t.Setenv("LEDGER_FINE_PER_DAY", "12.50")
	t.Setenv("KAFKA_ADDRS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := NewConfig(
		WithLogLevel(zapcore.DebugLevel),
		WithWriteTimeout(time.Minute),
		WithTimezone("Europe/Moscow"),
	)

	require.Equal(t, 14, cfg.Ledger.DefaultLoanDays)
	require.Equal(t, 3, cfg.Ledger.MaxLoansPerPatron)
	require.Equal(t, "12.5", cfg.Ledger.FinePerDay.String())
	require.Equal(t, 5*time.Second, cfg.Ledger.OperationTimeout)
	require.Equal(t, "Europe/Moscow", cfg.Ledger.Timezone)

	require.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, zapcore.WarnLevel, cfg.Log.LogLevel)

	require.True(t, cfg.Kafka.Enabled())
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Addrs)
	require.Equal(t, "loans", cfg.Kafka.Topic)

	require.Same(t, cfg, NewConfig())
}

func Test_printConfig(t *testing.T) {
	t.Parallel()
	require.NotPanics(t, func() { printConfig(&Config{}) })
	require.NotPanics(t, func() {
		printConfig(&Config{
			Server: HTTPServer{Port: "8080", WriteTimeout: time.Minute},
			Ledger: Ledger{DefaultLoanDays: 14, Timezone: "UTC"},
		})
	})
}
