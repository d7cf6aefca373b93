package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Check names.
const (
	CheckStore   = "store"
	CheckCatalog = "catalog"
)

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	catalog CatalogReader
}

// New creates a Service. catalog can be nil.
func New(db DBPinger, catalog CatalogReader) *Service {
	return &Service{db: db, catalog: catalog}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks[CheckStore] = CheckError
	} else {
		checks[CheckStore] = CheckOK
	}

	if s.catalog != nil {
		if s.catalog.Current().Len() == 0 {
			checks[CheckCatalog] = CheckError
		} else {
			checks[CheckCatalog] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
