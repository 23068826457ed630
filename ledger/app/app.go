package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/loan-ledger/ledger/config"
	"github.com/Astemirdum/loan-ledger/ledger/internal/handler"
	"github.com/Astemirdum/loan-ledger/ledger/internal/repository"
	"github.com/Astemirdum/loan-ledger/ledger/internal/server"
	"github.com/Astemirdum/loan-ledger/ledger/internal/service"
	"github.com/Astemirdum/loan-ledger/ledger/migrations"
	"github.com/Astemirdum/loan-ledger/pkg/circuit_breaker"
	"github.com/Astemirdum/loan-ledger/pkg/clock"
	"github.com/Astemirdum/loan-ledger/pkg/kafka"
	"github.com/Astemirdum/loan-ledger/pkg/logger"
	"github.com/Astemirdum/loan-ledger/pkg/postgres"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func Run(cfg *config.Config) error {
	log, err := logger.NewLogger(cfg.Log, "ledger")
	if err != nil {
		return errors.Wrap(err, "logger init")
	}
	defer log.Sync() //nolint:errcheck

	loc, err := time.LoadLocation(cfg.Ledger.Timezone)
	if err != nil {
		return errors.Wrapf(err, "timezone %q", cfg.Ledger.Timezone)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	defer db.Close()
	repo := repository.NewRepository(db, log)

	opts := []service.Option{
		service.WithConfig(service.Config{
			DefaultLoanDays:   cfg.Ledger.DefaultLoanDays,
			MaxLoansPerPatron: cfg.Ledger.MaxLoansPerPatron,
			FinePerDay:        cfg.Ledger.FinePerDay,
			OperationTimeout:  cfg.Ledger.OperationTimeout,
		}),
		service.WithClock(clock.New(loc)),
		service.WithTransactor(repo),
	}
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return errors.Wrap(err, "kafka.NewProducer")
		}
		pub := kafka.NewPublisher(producer, cfg.Kafka.Topic, circuit_breaker.New(cfg.Kafka.Breaker))
		defer func() {
			if err := pub.Close(); err != nil {
				log.Warn("close producer", zap.Error(err))
			}
		}()
		opts = append(opts, service.WithPublisher(pub))
	} else {
		log.Info("no kafka brokers configured, loan events are not published")
	}
	svc := service.NewLedger(repo, repo, repo, log, opts...)

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server start ON: ",
			zap.String("addr",
				net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
		return srv.Run()
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Debug("Graceful shutdown")

		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Graceful shutdown finished")
	return nil
}
