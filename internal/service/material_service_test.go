package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pasteleria/admin-backend/internal/models"
	"github.com/pasteleria/admin-backend/internal/repository"
)

func TestMaterialService_CreateMaterial(t *testing.T) {
	tests := []struct {
		name     string
		material models.RawMaterial
		wantErr  error
	}{
		{
			name: "valid material",
			material: models.RawMaterial{
				Name:           "Harina integral",
				BulkQuantity:   decimal.NewFromInt(25),
				BulkUnit:       "kg",
				BulkTotalPrice: decimal.NewFromInt(15000),
			},
			wantErr: nil,
		},
		{
			name: "free material is allowed",
			material: models.RawMaterial{
				Name:         "Muestra de cacao",
				BulkQuantity: decimal.NewFromInt(1),
				BulkUnit:     "kg",
			},
			wantErr: nil,
		},
		{
			name: "missing name",
			material: models.RawMaterial{
				Name:           "   ",
				BulkQuantity:   decimal.NewFromInt(25),
				BulkUnit:       "kg",
				BulkTotalPrice: decimal.NewFromInt(15000),
			},
			wantErr: ErrMaterialNameRequired,
		},
		{
			name: "zero bulk quantity",
			material: models.RawMaterial{
				Name:           "Harina",
				BulkQuantity:   decimal.Zero,
				BulkUnit:       "kg",
				BulkTotalPrice: decimal.NewFromInt(15000),
			},
			wantErr: ErrInvalidBulkQuantity,
		},
		{
			name: "negative price",
			material: models.RawMaterial{
				Name:           "Harina",
				BulkQuantity:   decimal.NewFromInt(25),
				BulkUnit:       "kg",
				BulkTotalPrice: decimal.NewFromInt(-1),
			},
			wantErr: ErrInvalidBulkPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repository.NewInMemoryMaterialRepository()
			svc := NewMaterialService(repo, nil)

			created, err := svc.CreateMaterial(context.Background(), tt.material)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CreateMaterial() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("CreateMaterial() unexpected error = %v", err)
			}
			if created.ID == "" {
				t.Error("CreateMaterial() did not assign an ID")
			}

			stored, err := svc.GetMaterial(context.Background(), created.ID)
			if err != nil {
				t.Fatalf("GetMaterial() error = %v", err)
			}
			if stored.Name != tt.material.Name {
				t.Errorf("stored name = %q, want %q", stored.Name, tt.material.Name)
			}
		})
	}
}

func TestMaterialService_DeleteMaterial(t *testing.T) {
	repo := repository.NewInMemoryMaterialRepository()
	svc := NewMaterialService(repo, nil)

	if err := svc.DeleteMaterial(context.Background(), "1"); err != nil {
		t.Fatalf("DeleteMaterial() error = %v", err)
	}
	if _, err := svc.GetMaterial(context.Background(), "1"); !errors.Is(err, repository.ErrMaterialNotFound) {
		t.Errorf("GetMaterial() after delete error = %v, want ErrMaterialNotFound", err)
	}
	if err := svc.DeleteMaterial(context.Background(), "missing"); !errors.Is(err, repository.ErrMaterialNotFound) {
		t.Errorf("DeleteMaterial() error = %v, want ErrMaterialNotFound", err)
	}
}
