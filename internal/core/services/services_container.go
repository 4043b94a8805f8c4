package services

import (
	portsrepo "github.com/leftsolutions/transactions_processor/internal/core/ports/repositories"
	portssvc "github.com/leftsolutions/transactions_processor/internal/core/ports/services"
)

// ContainerConfig carries the tunables the service layer needs from the
// application configuration.
type ContainerConfig struct {
	MaxStoredErrors     int
	ImportWorkers       int
	ImportQueueCapacity int
}

// NewServiceContainer wires all services against the given repositories.
func NewServiceContainer(
	jobRepo portsrepo.ImportJobRepository,
	txnRepo portsrepo.TransactionRepository,
	statsRepo portsrepo.StatisticsRepository,
	cfg ContainerConfig,
) *portssvc.ServiceContainer {
	jobSvc := NewImportJobService(jobRepo)
	importSvc := NewTransactionImportService(jobSvc, txnRepo,
		WithMaxStoredErrors(cfg.MaxStoredErrors),
		WithWorkerPool(cfg.ImportWorkers, cfg.ImportQueueCapacity),
	)
	statsSvc := NewStatisticsService(jobSvc, statsRepo)

	return &portssvc.ServiceContainer{
		ImportJob:         jobSvc,
		TransactionImport: importSvc,
		Statistics:        statsSvc,
	}
}
