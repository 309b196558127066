package services

// ServiceContainer bundles the application services for route registration.
type ServiceContainer struct {
	Account AccountSvcFacade
	Finance FinanceSvcFacade
	Auth    AuthSvc
}
