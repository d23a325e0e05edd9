package api

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/odyssey-erp/productdesk/internal/catalog"
	"github.com/odyssey-erp/productdesk/internal/shared"
	"github.com/odyssey-erp/productdesk/jobs"
)

type memRepo struct {
	mu        sync.Mutex
	nextID    int64
	products  map[int64]catalog.Product
	listCalls int
	listErr   error
	createErr error
}

func newMemRepo(seed ...catalog.Product) *memRepo {
	r := &memRepo{nextID: 1, products: make(map[int64]catalog.Product)}
	for _, p := range seed {
		r.products[p.ID] = p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *memRepo) List(context.Context) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]catalog.Product, 0, len(r.products))
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memRepo) Create(_ context.Context, in catalog.Input, missing string) (catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return catalog.Product{}, r.createErr
	}
	for _, p := range r.products {
		if p.SKU == in.SKU {
			return catalog.Product{}, ErrSKUTaken
		}
	}
	p := catalog.Product{ID: r.nextID, Name: in.Name, Price: in.Price, SKU: in.SKU, MissingLetter: missing}
	r.products[p.ID] = p
	r.nextID++
	return p, nil
}

func (r *memRepo) Update(_ context.Context, id int64, in catalog.Input, missing string) (catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return catalog.Product{}, ErrProductNotFound
	}
	p := catalog.Product{ID: id, Name: in.Name, Price: in.Price, SKU: in.SKU, MissingLetter: missing}
	r.products[id] = p
	return p, nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []jobs.ProductChangedPayload
}

func (p *capturePublisher) ProductChanged(_ context.Context, payload jobs.ProductChangedPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, payload)
	return nil
}

type memIdempotency struct {
	keys    map[string]string
	deleted []string
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{keys: make(map[string]string)}
}

func (m *memIdempotency) CheckAndInsert(_ context.Context, key, module string) error {
	if _, ok := m.keys[key]; ok {
		return shared.ErrIdempotencyConflict
	}
	m.keys[key] = module
	return nil
}

func (m *memIdempotency) Delete(_ context.Context, key string) error {
	delete(m.keys, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
