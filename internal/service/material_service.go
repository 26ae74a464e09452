package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/pasteleria/admin-backend/internal/models"
	"github.com/pasteleria/admin-backend/internal/repository"
)

var (
	ErrMaterialNameRequired = errors.New("material name is required")
	ErrInvalidBulkQuantity  = errors.New("bulk quantity must be positive")
	ErrInvalidBulkPrice     = errors.New("bulk price cannot be negative")
)

// SummaryInvalidator drops cached cost summaries. Material mutations can
// change the cost of every cake, so the whole cache goes.
type SummaryInvalidator interface {
	InvalidateAll()
}

// MaterialService handles raw-material business logic
type MaterialService struct {
	repo      repository.MaterialRepository
	summaries SummaryInvalidator
}

// NewMaterialService creates a new material service. summaries may be
// nil when no cost cache is wired (as in tests).
func NewMaterialService(repo repository.MaterialRepository, summaries SummaryInvalidator) *MaterialService {
	return &MaterialService{
		repo:      repo,
		summaries: summaries,
	}
}

// ListMaterials returns all raw materials
func (s *MaterialService) ListMaterials(ctx context.Context) ([]models.RawMaterial, error) {
	return s.repo.GetAll(ctx)
}

// GetMaterial returns a raw material by ID
func (s *MaterialService) GetMaterial(ctx context.Context, id string) (*models.RawMaterial, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateMaterial validates and stores a new raw material
func (s *MaterialService) CreateMaterial(ctx context.Context, m models.RawMaterial) (*models.RawMaterial, error) {
	if err := validateMaterial(m); err != nil {
		return nil, err
	}

	m.ID = uuid.New().String()
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.invalidate()
	return &m, nil
}

// UpdateMaterial validates and replaces an existing raw material
func (s *MaterialService) UpdateMaterial(ctx context.Context, m models.RawMaterial) (*models.RawMaterial, error) {
	if err := validateMaterial(m); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	s.invalidate()
	return &m, nil
}

// DeleteMaterial removes a raw material. Recipes referencing it keep
// the dangling reference; their summaries simply stop attributing cost
// to that ingredient.
func (s *MaterialService) DeleteMaterial(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate()
	return nil
}

func (s *MaterialService) invalidate() {
	if s.summaries != nil {
		s.summaries.InvalidateAll()
	}
}

func validateMaterial(m models.RawMaterial) error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrMaterialNameRequired
	}
	if !m.BulkQuantity.IsPositive() {
		return ErrInvalidBulkQuantity
	}
	if m.BulkTotalPrice.IsNegative() {
		return ErrInvalidBulkPrice
	}
	return nil
}
