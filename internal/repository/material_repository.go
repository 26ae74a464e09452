package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/pasteleria/admin-backend/internal/models"
)

var (
	ErrMaterialNotFound = errors.New("material not found")
)

// MaterialRepository defines the interface for raw-material data access
type MaterialRepository interface {
	GetAll(ctx context.Context) ([]models.RawMaterial, error)
	GetByID(ctx context.Context, id string) (*models.RawMaterial, error)
	Create(ctx context.Context, m models.RawMaterial) error
	Update(ctx context.Context, m models.RawMaterial) error
	Delete(ctx context.Context, id string) error
}

// InMemoryMaterialRepository implements MaterialRepository with in-memory storage
type InMemoryMaterialRepository struct {
	mu        sync.RWMutex
	materials map[string]models.RawMaterial
}

// NewInMemoryMaterialRepository creates a new in-memory material repository with seed data
func NewInMemoryMaterialRepository() *InMemoryMaterialRepository {
	materials := map[string]models.RawMaterial{
		"1": {ID: "1", Name: "Harina 0000", BulkQuantity: decimal.NewFromInt(25), BulkUnit: "kg", BulkTotalPrice: decimal.NewFromInt(18000)},
		"2": {ID: "2", Name: "Azúcar", BulkQuantity: decimal.NewFromInt(50), BulkUnit: "kg", BulkTotalPrice: decimal.NewFromInt(32000)},
		"3": {ID: "3", Name: "Manteca", BulkQuantity: decimal.NewFromInt(5), BulkUnit: "kg", BulkTotalPrice: decimal.NewFromInt(21000)},
		"4": {ID: "4", Name: "Huevos", BulkQuantity: decimal.NewFromInt(30), BulkUnit: "unidad", BulkTotalPrice: decimal.NewFromInt(4500)},
		"5": {ID: "5", Name: "Leche entera", BulkQuantity: decimal.NewFromInt(12), BulkUnit: "lts", BulkTotalPrice: decimal.NewFromInt(13200)},
		"6": {ID: "6", Name: "Chocolate semiamargo", BulkQuantity: decimal.NewFromInt(1), BulkUnit: "kg", BulkTotalPrice: decimal.NewFromInt(9800)},
		"7": {ID: "7", Name: "Esencia de vainilla", BulkQuantity: decimal.NewFromInt(500), BulkUnit: "cc", BulkTotalPrice: decimal.NewFromInt(3500)},
		"8": {ID: "8", Name: "Dulce de leche repostero", BulkQuantity: decimal.NewFromInt(10), BulkUnit: "kg", BulkTotalPrice: decimal.NewFromInt(28000)},
	}

	return &InMemoryMaterialRepository{
		materials: materials,
	}
}

// GetAll returns all raw materials
func (r *InMemoryMaterialRepository) GetAll(ctx context.Context) ([]models.RawMaterial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	materials := make([]models.RawMaterial, 0, len(r.materials))
	for _, m := range r.materials {
		materials = append(materials, m)
	}
	return materials, nil
}

// GetByID returns a raw material by its ID
func (r *InMemoryMaterialRepository) GetByID(ctx context.Context, id string) (*models.RawMaterial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.materials[id]
	if !exists {
		return nil, ErrMaterialNotFound
	}
	return &m, nil
}

// Create stores a new raw material
func (r *InMemoryMaterialRepository) Create(ctx context.Context, m models.RawMaterial) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.materials[m.ID] = m
	return nil
}

// Update replaces an existing raw material
func (r *InMemoryMaterialRepository) Update(ctx context.Context, m models.RawMaterial) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.materials[m.ID]; !exists {
		return ErrMaterialNotFound
	}
	r.materials[m.ID] = m
	return nil
}

// Delete removes a raw material
func (r *InMemoryMaterialRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.materials[id]; !exists {
		return ErrMaterialNotFound
	}
	delete(r.materials, id)
	return nil
}
