package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/pasteleria/admin-backend/internal/models"
)

var (
	ErrCakeNotFound = errors.New("cake not found")
)

// CakeRepository defines the interface for cake data access
type CakeRepository interface {
	GetAll(ctx context.Context) ([]models.Cake, error)
	GetByID(ctx context.Context, id string) (*models.Cake, error)
	Create(ctx context.Context, c models.Cake) error
	Update(ctx context.Context, c models.Cake) error
	Delete(ctx context.Context, id string) error
}

// InMemoryCakeRepository implements CakeRepository with in-memory storage
type InMemoryCakeRepository struct {
	mu    sync.RWMutex
	cakes map[string]models.Cake
}

// NewInMemoryCakeRepository creates a new in-memory cake repository with seed data.
// Seed recipes reference the seed materials of NewInMemoryMaterialRepository.
func NewInMemoryCakeRepository() *InMemoryCakeRepository {
	cakes := map[string]models.Cake{
		"1": {
			ID:   "1",
			Name: "Torta de chocolate",
			Recipe: &models.Recipe{
				YieldPortions: 20,
				Ingredients: []models.RecipeIngredient{
					{MaterialID: "1", Quantity: decimal.NewFromInt(500), Unit: "gr"},
					{MaterialID: "2", Quantity: decimal.NewFromInt(400), Unit: "gr"},
					{MaterialID: "6", Quantity: decimal.NewFromInt(300), Unit: "gr"},
					{MaterialID: "4", Quantity: decimal.NewFromInt(6), Unit: "unidad"},
					{MaterialID: "5", Quantity: decimal.NewFromInt(250), Unit: "cc"},
				},
			},
		},
		"2": {
			ID:   "2",
			Name: "Torta de vainilla",
			Recipe: &models.Recipe{
				YieldPortions: 16,
				Ingredients: []models.RecipeIngredient{
					{MaterialID: "1", Quantity: decimal.NewFromInt(450), Unit: "gr"},
					{MaterialID: "2", Quantity: decimal.NewFromInt(350), Unit: "gr"},
					{MaterialID: "3", Quantity: decimal.NewFromInt(200), Unit: "gr"},
					{MaterialID: "4", Quantity: decimal.NewFromInt(4), Unit: "unidad"},
					{MaterialID: "7", Quantity: decimal.NewFromInt(10), Unit: "cc"},
				},
			},
		},
		"3": {
			ID:   "3",
			Name: "Rogel",
			Recipe: &models.Recipe{
				YieldPortions: 12,
				Ingredients: []models.RecipeIngredient{
					{MaterialID: "1", Quantity: decimal.NewFromInt(600), Unit: "gr"},
					{MaterialID: "4", Quantity: decimal.NewFromInt(5), Unit: "unidad"},
					{MaterialID: "8", Quantity: decimal.NewFromInt(800), Unit: "gr"},
				},
			},
		},
		// No recipe loaded yet; its cost reads as unavailable.
		"4": {ID: "4", Name: "Cheesecake"},
	}

	return &InMemoryCakeRepository{
		cakes: cakes,
	}
}

// GetAll returns all cakes
func (r *InMemoryCakeRepository) GetAll(ctx context.Context) ([]models.Cake, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cakes := make([]models.Cake, 0, len(r.cakes))
	for _, c := range r.cakes {
		cakes = append(cakes, c)
	}
	return cakes, nil
}

// GetByID returns a cake by its ID
func (r *InMemoryCakeRepository) GetByID(ctx context.Context, id string) (*models.Cake, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.cakes[id]
	if !exists {
		return nil, ErrCakeNotFound
	}
	return &c, nil
}

// Create stores a new cake
func (r *InMemoryCakeRepository) Create(ctx context.Context, c models.Cake) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cakes[c.ID] = c
	return nil
}

// Update replaces an existing cake
func (r *InMemoryCakeRepository) Update(ctx context.Context, c models.Cake) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cakes[c.ID]; !exists {
		return ErrCakeNotFound
	}
	r.cakes[c.ID] = c
	return nil
}

// Delete removes a cake
func (r *InMemoryCakeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cakes[id]; !exists {
		return ErrCakeNotFound
	}
	delete(r.cakes, id)
	return nil
}
