package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/pasteleria/admin-backend/internal/models"
)

var (
	ErrTrayNotFound = errors.New("tray not found")
)

// TrayRepository defines the interface for confirmed-tray data access
type TrayRepository interface {
	GetAll(ctx context.Context) ([]models.Tray, error)
	GetByID(ctx context.Context, id string) (*models.Tray, error)
	Create(ctx context.Context, t models.Tray) error
	Update(ctx context.Context, t models.Tray) error
	Delete(ctx context.Context, id string) error
}

// InMemoryTrayRepository implements TrayRepository with in-memory storage.
// Trays only arrive here once a builder session confirms them.
type InMemoryTrayRepository struct {
	mu    sync.RWMutex
	trays map[string]models.Tray
}

// NewInMemoryTrayRepository creates a new empty in-memory tray repository
func NewInMemoryTrayRepository() *InMemoryTrayRepository {
	return &InMemoryTrayRepository{
		trays: make(map[string]models.Tray),
	}
}

// GetAll returns all confirmed trays
func (r *InMemoryTrayRepository) GetAll(ctx context.Context) ([]models.Tray, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trays := make([]models.Tray, 0, len(r.trays))
	for _, t := range r.trays {
		trays = append(trays, t)
	}
	return trays, nil
}

// GetByID returns a tray by its ID
func (r *InMemoryTrayRepository) GetByID(ctx context.Context, id string) (*models.Tray, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.trays[id]
	if !exists {
		return nil, ErrTrayNotFound
	}
	return &t, nil
}

// Create stores a confirmed tray
func (r *InMemoryTrayRepository) Create(ctx context.Context, t models.Tray) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.trays[t.ID] = t
	return nil
}

// Update replaces an existing tray
func (r *InMemoryTrayRepository) Update(ctx context.Context, t models.Tray) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.trays[t.ID]; !exists {
		return ErrTrayNotFound
	}
	r.trays[t.ID] = t
	return nil
}

// Delete removes a tray
func (r *InMemoryTrayRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.trays[id]; !exists {
		return ErrTrayNotFound
	}
	delete(r.trays, id)
	return nil
}
