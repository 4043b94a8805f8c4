package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer.
type RepositoryProvider struct {
	ImportJobRepo   ImportJobRepository
	TransactionRepo TransactionRepository
	StatisticsRepo  StatisticsRepository
}
