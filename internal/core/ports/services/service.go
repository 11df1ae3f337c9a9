package ports

// ServiceContainer bundles all service facades for route registration.
type ServiceContainer struct {
	Auth     AuthSvcFacade
	Currency CurrencySvcFacade
	Account  AccountSvcFacade
	Period   PeriodSvcFacade
	Journal  JournalSvcFacade
}
