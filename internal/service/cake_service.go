package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/pasteleria/admin-backend/internal/costing"
	"github.com/pasteleria/admin-backend/internal/models"
	"github.com/pasteleria/admin-backend/internal/repository"
)

var (
	ErrCakeNameRequired   = errors.New("cake name is required")
	ErrInvalidYield       = errors.New("recipe yield cannot be negative")
	ErrIngredientMaterial = errors.New("every ingredient needs a material reference")
)

// CakeService handles cake and recipe business logic and derives cost
// summaries on demand. Summaries are cached with a TTL and dropped on
// any cake or material mutation.
type CakeService struct {
	cakes     repository.CakeRepository
	materials repository.MaterialRepository
	summaries *gocache.Cache
}

// NewCakeService creates a new cake service
func NewCakeService(cakes repository.CakeRepository, materials repository.MaterialRepository, summaryTTL time.Duration) *CakeService {
	return &CakeService{
		cakes:     cakes,
		materials: materials,
		summaries: gocache.New(summaryTTL, 2*summaryTTL),
	}
}

// ListCakes returns all cakes
func (s *CakeService) ListCakes(ctx context.Context) ([]models.Cake, error) {
	return s.cakes.GetAll(ctx)
}

// GetCake returns a cake by ID
func (s *CakeService) GetCake(ctx context.Context, id string) (*models.Cake, error) {
	return s.cakes.GetByID(ctx, id)
}

// CreateCake validates and stores a new cake
func (s *CakeService) CreateCake(ctx context.Context, c models.Cake) (*models.Cake, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, ErrCakeNameRequired
	}
	if c.Recipe != nil {
		if err := validateRecipe(*c.Recipe); err != nil {
			return nil, err
		}
	}

	c.ID = uuid.New().String()
	if err := s.cakes.Create(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCake renames an existing cake, keeping its recipe
func (s *CakeService) UpdateCake(ctx context.Context, id, name string) (*models.Cake, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrCakeNameRequired
	}

	cake, err := s.cakes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cake.Name = name
	if err := s.cakes.Update(ctx, *cake); err != nil {
		return nil, err
	}

	s.summaries.Delete(id)
	return cake, nil
}

// SetRecipe replaces a cake's recipe
func (s *CakeService) SetRecipe(ctx context.Context, cakeID string, rec models.Recipe) (*models.Cake, error) {
	if err := validateRecipe(rec); err != nil {
		return nil, err
	}

	cake, err := s.cakes.GetByID(ctx, cakeID)
	if err != nil {
		return nil, err
	}

	cake.Recipe = &rec
	if err := s.cakes.Update(ctx, *cake); err != nil {
		return nil, err
	}

	s.summaries.Delete(cakeID)
	return cake, nil
}

// DeleteCake removes a cake
func (s *CakeService) DeleteCake(ctx context.Context, id string) error {
	if err := s.cakes.Delete(ctx, id); err != nil {
		return err
	}

	s.summaries.Delete(id)
	return nil
}

// CostSummary derives the cost picture for a cake from its recipe and
// the current raw-material lots. A cake without a recipe gets a summary
// whose per-portion figures are unavailable; that is a valid state, not
// an error.
func (s *CakeService) CostSummary(ctx context.Context, cakeID string) (costing.Summary, error) {
	if cached, ok := s.summaries.Get(cakeID); ok {
		return cached.(costing.Summary), nil
	}

	cake, err := s.cakes.GetByID(ctx, cakeID)
	if err != nil {
		return costing.Summary{}, err
	}

	summary := costing.Summarize(s.costingRecipe(ctx, cake.Recipe))
	s.summaries.Set(cakeID, summary, gocache.DefaultExpiration)
	return summary, nil
}

// CostPerPortion implements tray.PortionPricer. The boolean is false
// when the cake is unknown or its per-portion cost is unavailable.
func (s *CakeService) CostPerPortion(ctx context.Context, cakeID string) (decimal.Decimal, bool) {
	summary, err := s.CostSummary(ctx, cakeID)
	if err != nil || summary.PerPortion == nil {
		return decimal.Decimal{}, false
	}
	return summary.PerPortion.Cost, true
}

// InvalidateAll implements SummaryInvalidator
func (s *CakeService) InvalidateAll() {
	s.summaries.Flush()
}

// costingRecipe resolves a stored recipe into costing inputs. An
// ingredient whose material no longer exists gets a nil lot and drops
// out of the total.
func (s *CakeService) costingRecipe(ctx context.Context, rec *models.Recipe) *costing.Recipe {
	if rec == nil {
		return nil
	}

	out := &costing.Recipe{YieldPortions: rec.YieldPortions}
	for _, ing := range rec.Ingredients {
		entry := costing.Ingredient{Quantity: ing.Quantity, Unit: ing.Unit}
		if material, err := s.materials.GetByID(ctx, ing.MaterialID); err == nil {
			entry.Lot = &costing.Lot{
				Quantity:   material.BulkQuantity,
				Unit:       material.BulkUnit,
				TotalPrice: material.BulkTotalPrice,
			}
		}
		out.Ingredients = append(out.Ingredients, entry)
	}
	return out
}

func validateRecipe(rec models.Recipe) error {
	if rec.YieldPortions < 0 {
		return ErrInvalidYield
	}
	for _, ing := range rec.Ingredients {
		if strings.TrimSpace(ing.MaterialID) == "" {
			return ErrIngredientMaterial
		}
	}
	return nil
}
