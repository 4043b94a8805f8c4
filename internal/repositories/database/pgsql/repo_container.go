package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/leftsolutions/transactions_processor/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ImportJobRepo:   NewImportJobRepository(dbPool),
		TransactionRepo: NewTransactionRepository(dbPool),
		StatisticsRepo:  NewStatisticsRepository(dbPool),
	}
}
