package kafka

import (
	"context"
	"time"

	"github.com/Astemirdum/loan-ledger/pkg/circuit_breaker"
	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventLoanIssued   EventType = "loan.issued"
	EventLoanReturned EventType = "loan.returned"
)

type LoanEvent struct {
	Type       EventType       `json:"type"`
	LoanID     string          `json:"loanId"`
	BookID     int64           `json:"bookId"`
	PatronID   int64           `json:"patronId"`
	Actor      string          `json:"actor,omitempty"`
	DueDate    string          `json:"dueDate"`
	Fine       decimal.Decimal `json:"fine"`
	OccurredAt time.Time       `json:"occurredAt"`
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
}

func NewPublisher(producer sarama.SyncProducer, topic string, cb circuit_breaker.CircuitBreaker) *Publisher {
	if topic == "" {
		topic = LoansTopic
	}
	return &Publisher{
		producer: producer,
		topic:    topic,
		cb:       cb,
	}
}

// Publish sends ev keyed by loan id, so all events of one loan stay ordered.
func (p *Publisher) Publish(ctx context.Context, ev LoanEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal loan event")
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.LoanID),
		Value: sarama.ByteEncoder(data),
	}
	return p.cb.Call(func() error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	})
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
