package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	ImportJob         ImportJobSvcFacade
	TransactionImport TransactionImportSvcFacade
	Statistics        StatisticsSvcFacade
}
