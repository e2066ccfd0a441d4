package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/designsvc"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/packaging"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/adapters/out/storagesvc"
	"fulfillment/internal/core/application/pipeline"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/streadway/amqp"
	"gorm.io/gorm"
)

const (
	externalServiceTimeout = 30 * time.Second
	stalledOrderThreshold  = 5 * time.Minute
)

// CompositionRoot wires adapters, the pipeline and the use case handlers
// together. It owns the shared singletons: one run lock, one dispatcher and
// one connection to each broker.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	runLock    *pipeline.RunLock
	dispatcher *pipeline.Dispatcher

	rabbitConn     *amqp.Connection
	notifier       *rabbitmq.Notifier
	phasePublisher *kafka.PhasePublisher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		runLock:    pipeline.NewRunLock(),
	}

	rabbitConn, err := amqp.Dial(config.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	root.rabbitConn = rabbitConn

	root.notifier, err = rabbitmq.NewNotifier(rabbitConn, config.RabbitMQExchange)
	if err != nil {
		root.Close()
		return nil, fmt.Errorf("create notifier: %w", err)
	}

	var phases ports.PhasePublisher
	if config.KafkaHost != "" {
		root.phasePublisher, err = kafka.NewPhasePublisher(
			strings.Split(config.KafkaHost, ","), config.KafkaPhaseTopic)
		if err != nil {
			root.Close()
			return nil, fmt.Errorf("create phase publisher: %w", err)
		}
		phases = root.phasePublisher
	}

	orchestrator := pipeline.NewOrchestrator(
		root.uowFactory,
		designsvc.NewClient(config.DesignServiceURL, externalServiceTimeout),
		packaging.NewCSVPackager(config.PackageOutputDir),
		storagesvc.NewClient(config.StorageServiceURL, externalServiceTimeout),
		root.notifier,
		phases,
		root.runLock,
		logger,
	)
	root.dispatcher = pipeline.NewDispatcher(orchestrator, logger)

	return root, nil
}

// Dispatcher exposes the shared pipeline dispatcher, mainly so shutdown can
// wait for in-flight runs.
func (c *CompositionRoot) Dispatcher() *pipeline.Dispatcher {
	return c.dispatcher
}

// Close releases broker connections. Safe to call on a partially built root.
func (c *CompositionRoot) Close() {
	if c.phasePublisher != nil {
		_ = c.phasePublisher.Close()
	}
	if c.notifier != nil {
		_ = c.notifier.Close()
	}
	if c.rabbitConn != nil {
		_ = c.rabbitConn.Close()
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateRetryOrderCommandHandler() commands.RetryOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRetryOrderCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReportQueryHandler() queries.GetReportQueryHandler {
	return queries.NewGetReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateRetryOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateDeleteOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetReportQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	stalledOrderJob := jobs.NewStalledOrderJob(
		c.uowFactory, c.dispatcher, c.runLock, stalledOrderThreshold, c.logger)
	return jobs.NewJobManager(stalledOrderJob)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
