package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/loan-ledger/pkg/kafka"
	"github.com/Astemirdum/loan-ledger/pkg/logger"
	"github.com/Astemirdum/loan-ledger/pkg/postgres"
	jsoniter "github.com/json-iterator/go"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LEDGER_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"LEDGER_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Ledger struct {
	DefaultLoanDays   int             `envconfig:"LEDGER_DEFAULT_LOAN_DAYS" default:"14"`
	MaxLoansPerPatron int             `envconfig:"LEDGER_MAX_LOANS_PER_PATRON" default:"5"`
	FinePerDay        decimal.Decimal `envconfig:"LEDGER_FINE_PER_DAY" default:"100"`
	// Timezone decides where a calendar day starts; empty means UTC.
	Timezone         string        `envconfig:"LEDGER_TIMEZONE"`
	OperationTimeout time.Duration `envconfig:"LEDGER_OPERATION_TIMEOUT" default:"5s"`
}

type Config struct {
	Server   HTTPServer  `yaml:"server"`
	Database postgres.DB `yaml:"db"`
	Kafka    kafka.Config
	Ledger   Ledger
	Log      logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment. Options fill in values before
// the environment is read, so set variables win.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg *Config) {
	jscfg, err := jsoniter.MarshalIndent(cfg, "", "  ")
	if err != nil {
		log.Println("printConfig ", err)
		return
	}
	fmt.Println(string(jscfg))
}
