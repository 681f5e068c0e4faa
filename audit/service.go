// audit/service.go
package audit

import (
	"context"
	"time"
)

type Service interface {
	LogLookup(ctx context.Context, log LookupAudit) error
	QueryLookups(ctx context.Context, from, to time.Time) ([]LookupAudit, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogLookup(ctx context.Context, log LookupAudit) error {
	return s.repo.LogLookup(ctx, log)
}

func (s *service) QueryLookups(ctx context.Context, from, to time.Time) ([]LookupAudit, error) {
	return s.repo.QueryLookups(ctx, from, to)
}
