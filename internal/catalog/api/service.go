// Package api implements the product REST service consumed by the console.
package api

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/productdesk/internal/catalog"
	"github.com/odyssey-erp/productdesk/internal/shared"
	"github.com/odyssey-erp/productdesk/jobs"
)

const idempotencyModule = "catalog.products.create"

// Publisher announces committed product changes.
type Publisher interface {
	ProductChanged(ctx context.Context, payload jobs.ProductChangedPayload) error
}

// IdempotencyStore guards create requests carrying an Idempotency-Key.
type IdempotencyStore interface {
	CheckAndInsert(ctx context.Context, key, module string) error
	Delete(ctx context.Context, key string) error
}

// ServiceConfig groups Service dependencies. Only Repo is required.
type ServiceConfig struct {
	Repo        Repository
	Cache       *ListCache
	Publisher   Publisher
	Idempotency IdempotencyStore
	Logger      *slog.Logger
}

// Service implements list, create, update and delete of products.
type Service struct {
	repo        Repository
	cache       *ListCache
	publisher   Publisher
	idempotency IdempotencyStore
	logger      *slog.Logger
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:        cfg.Repo,
		cache:       cfg.Cache,
		publisher:   cfg.Publisher,
		idempotency: cfg.Idempotency,
		logger:      logger,
	}
}

// List returns every product, served from the list cache when possible. A
// cache outage falls back to the repository.
func (s *Service) List(ctx context.Context) ([]catalog.Product, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}
	var repoErr error
	products, err := s.cache.Products(ctx, func(ctx context.Context) ([]catalog.Product, error) {
		products, err := s.repo.List(ctx)
		repoErr = err
		return products, err
	})
	if err == nil {
		return products, nil
	}
	if repoErr != nil {
		return nil, repoErr
	}
	s.logger.Warn("product list cache unavailable", slog.Any("error", err))
	return s.repo.List(ctx)
}

// Create validates and stores a new product. A non-empty idempotencyKey is
// recorded first and released again when the insert fails.
func (s *Service) Create(ctx context.Context, in catalog.Input, idempotencyKey string) (catalog.Product, error) {
	in, err := s.validate(in)
	if err != nil {
		return catalog.Product{}, err
	}
	if idempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.CheckAndInsert(ctx, idempotencyKey, idempotencyModule); err != nil {
			if errors.Is(err, shared.ErrIdempotencyConflict) {
				return catalog.Product{}, ErrDuplicateRequest
			}
			return catalog.Product{}, err
		}
	}
	product, err := s.repo.Create(ctx, in, catalog.MissingLetter(in.Name))
	if err != nil {
		if idempotencyKey != "" && s.idempotency != nil {
			if derr := s.idempotency.Delete(ctx, idempotencyKey); derr != nil {
				s.logger.Warn("release idempotency key", slog.String("key", idempotencyKey), slog.Any("error", derr))
			}
		}
		return catalog.Product{}, err
	}
	s.afterWrite(ctx, jobs.ActionCreated, product)
	return product, nil
}

// Update replaces name, price and sku of product id.
func (s *Service) Update(ctx context.Context, id int64, in catalog.Input) (catalog.Product, error) {
	if id <= 0 {
		return catalog.Product{}, ErrInvalidID
	}
	in, err := s.validate(in)
	if err != nil {
		return catalog.Product{}, err
	}
	product, err := s.repo.Update(ctx, id, in, catalog.MissingLetter(in.Name))
	if err != nil {
		return catalog.Product{}, err
	}
	s.afterWrite(ctx, jobs.ActionUpdated, product)
	return product, nil
}

// Delete removes product id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.afterWrite(ctx, jobs.ActionDeleted, catalog.Product{ID: id})
	return nil
}

func (s *Service) validate(in catalog.Input) (catalog.Input, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() == "Price" {
					return in, ErrNegativePrice
				}
			}
			return in, ErrMissingFields
		}
		return in, err
	}
	return in, nil
}

// afterWrite invalidates the list cache and enqueues the audit event. Neither
// failure undoes the committed write.
func (s *Service) afterWrite(ctx context.Context, action string, p catalog.Product) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("invalidate product list cache", slog.Any("error", err))
	}
	if s.publisher == nil {
		return
	}
	payload := jobs.ProductChangedPayload{
		Action:        action,
		ProductID:     p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Price:         p.Price,
		MissingLetter: p.MissingLetter,
		RequestID:     middleware.GetReqID(ctx),
	}
	if err := s.publisher.ProductChanged(ctx, payload); err != nil {
		s.logger.Warn("enqueue product audit", slog.String("action", action), slog.Int64("id", p.ID), slog.Any("error", err))
	}
}
