package kafka

import (
	"time"

	"github.com/Astemirdum/loan-ledger/pkg/circuit_breaker"
	"github.com/IBM/sarama"
)

const LoansTopic = "loans"

type Config struct {
	Addrs   []string                 `envconfig:"KAFKA_ADDRS"`
	Topic   string                   `envconfig:"KAFKA_TOPIC" default:"loans"`
	Timeout time.Duration            `envconfig:"KAFKA_TIMEOUT" default:"5s"`
	Breaker circuit_breaker.Settings `envconfig:"KAFKA"`
}

// Enabled reports whether any broker is configured.
func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	if cfg.Timeout > 0 {
		defaultCfg.Producer.Timeout = cfg.Timeout
		defaultCfg.Net.DialTimeout = cfg.Timeout
	}

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}
