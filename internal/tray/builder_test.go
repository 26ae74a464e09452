package tray

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pasteleria/admin-backend/internal/models"
)

// testPricer prices every known cake at a fixed per-portion cost.
func testPricer(costs map[string]int64) PortionPricer {
	return PortionPricerFunc(func(ctx context.Context, cakeID string) (decimal.Decimal, bool) {
		cost, ok := costs[cakeID]
		if !ok {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromInt(cost), true
	})
}

func TestBuilder_AddOrUpdateLine(t *testing.T) {
	pricer := testPricer(map[string]int64{"choc": 20, "lemon": 15})

	t.Run("appends a new line with its price contribution", func(t *testing.T) {
		b := NewBuilder(pricer)

		if err := b.AddOrUpdateLine(context.Background(), "choc", 10); err != nil {
			t.Fatalf("AddOrUpdateLine() unexpected error = %v", err)
		}

		lines := b.Lines()
		if len(lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(lines))
		}
		if lines[0].Portions != 10 {
			t.Errorf("portions = %d, want 10", lines[0].Portions)
		}
		if !lines[0].PriceContribution.Equal(decimal.NewFromInt(200)) {
			t.Errorf("priceContribution = %s, want 200", lines[0].PriceContribution)
		}
	})

	t.Run("rejects non-positive portions", func(t *testing.T) {
		b := NewBuilder(pricer)

		for _, portions := range []int{0, -3} {
			if err := b.AddOrUpdateLine(context.Background(), "choc", portions); !errors.Is(err, ErrInvalidPortions) {
				t.Errorf("AddOrUpdateLine(%d) error = %v, want ErrInvalidPortions", portions, err)
			}
		}
	})

	t.Run("rejects a duplicate cake without an edit cursor", func(t *testing.T) {
		b := NewBuilder(pricer)

		if err := b.AddOrUpdateLine(context.Background(), "choc", 10); err != nil {
			t.Fatalf("AddOrUpdateLine() unexpected error = %v", err)
		}
		if err := b.AddOrUpdateLine(context.Background(), "choc", 5); !errors.Is(err, ErrDuplicateCake) {
			t.Errorf("AddOrUpdateLine() error = %v, want ErrDuplicateCake", err)
		}
		if b.TotalPortions() != 10 {
			t.Errorf("totalPortions = %d, want 10 (rejected add must not merge)", b.TotalPortions())
		}
	})

	t.Run("replaces the line under edit and resets the cursor", func(t *testing.T) {
		b := NewBuilder(pricer)

		if err := b.AddOrUpdateLine(context.Background(), "choc", 10); err != nil {
			t.Fatalf("AddOrUpdateLine() unexpected error = %v", err)
		}

		portions, ok := b.BeginEdit("choc")
		if !ok || portions != 10 {
			t.Fatalf("BeginEdit() = (%d, %v), want (10, true)", portions, ok)
		}

		if err := b.AddOrUpdateLine(context.Background(), "choc", 6); err != nil {
			t.Fatalf("AddOrUpdateLine() after BeginEdit error = %v", err)
		}

		lines := b.Lines()
		if len(lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(lines))
		}
		if lines[0].Portions != 6 {
			t.Errorf("portions = %d, want 6", lines[0].Portions)
		}
		if !lines[0].PriceContribution.Equal(decimal.NewFromInt(120)) {
			t.Errorf("priceContribution = %s, want 120", lines[0].PriceContribution)
		}
		if b.Editing() != "" {
			t.Errorf("edit cursor = %q, want cleared", b.Editing())
		}
	})

	t.Run("edit cursor on one cake does not excuse duplicating another", func(t *testing.T) {
		b := NewBuilder(pricer)

		if err := b.AddOrUpdateLine(context.Background(), "choc", 10); err != nil {
			t.Fatalf("AddOrUpdateLine() unexpected error = %v", err)
		}
		if err := b.AddOrUpdateLine(context.Background(), "lemon", 5); err != nil {
			t.Fatalf("AddOrUpdateLine() unexpected error = %v", err)
		}
		if _, ok := b.BeginEdit("choc"); !ok {
			t.Fatal("BeginEdit() reported no line")
		}
		if err := b.AddOrUpdateLine(context.Background(), "lemon", 8); !errors.Is(err, ErrDuplicateCake) {
			t.Errorf("AddOrUpdateLine() error = %v, want ErrDuplicateCake", err)
		}
	})

	t.Run("cake without a cost summary contributes zero", func(t *testing.T) {
		b := NewBuilder(pricer)

		if err := b.AddOrUpdateLine(context.Background(), "mystery", 4); err != nil {
			t.Fatalf("AddOrUpdateLine() unexpected error = %v", err)
		}
		if !b.Lines()[0].PriceContribution.IsZero() {
			t.Errorf("priceContribution = %s, want 0", b.Lines()[0].PriceContribution)
		}
	})
}

func TestBuilder_BeginEdit(t *testing.T) {
	pricer := testPricer(map[string]int64{"choc": 20})
	b := NewBuilder(pricer)

	if _, ok := b.BeginEdit("choc"); ok {
		t.Error("BeginEdit() on missing line reported true")
	}
	if b.Editing() != "" {
		t.Errorf("edit cursor = %q, want unset after failed BeginEdit", b.Editing())
	}
}

func TestBuilder_RemoveLine(t *testing.T) {
	pricer := testPricer(map[string]int64{"choc": 20, "lemon": 15, "nut": 10})

	t.Run("removes a line and keeps order of the rest", func(t *testing.T) {
		b := NewBuilder(pricer)
		for _, c := range []string{"choc", "lemon", "nut"} {
			if err := b.AddOrUpdateLine(context.Background(), c, 5); err != nil {
				t.Fatalf("AddOrUpdateLine(%s) unexpected error = %v", c, err)
			}
		}

		if !b.RemoveLine("lemon") {
			t.Fatal("RemoveLine() reported no line removed")
		}

		lines := b.Lines()
		if len(lines) != 2 || lines[0].CakeID != "choc" || lines[1].CakeID != "nut" {
			t.Errorf("lines after remove = %+v, want [choc nut]", lines)
		}
	})

	t.Run("resets the edit cursor when removing its target", func(t *testing.T) {
		b := NewBuilder(pricer)
		if err := b.AddOrUpdateLine(context.Background(), "choc", 5); err != nil {
			t.Fatalf("AddOrUpdateLine() unexpected error = %v", err)
		}
		if _, ok := b.BeginEdit("choc"); !ok {
			t.Fatal("BeginEdit() reported no line")
		}

		b.RemoveLine("choc")

		if b.Editing() != "" {
			t.Errorf("edit cursor = %q, want cleared", b.Editing())
		}
		// Re-adding after the aborted edit behaves like a fresh add.
		if err := b.AddOrUpdateLine(context.Background(), "choc", 7); err != nil {
			t.Fatalf("AddOrUpdateLine() after remove error = %v", err)
		}
	})

	t.Run("remove then re-add matches a single add", func(t *testing.T) {
		direct := NewBuilder(pricer)
		if err := direct.AddOrUpdateLine(context.Background(), "choc", 9); err != nil {
			t.Fatalf("AddOrUpdateLine() unexpected error = %v", err)
		}

		roundTrip := NewBuilder(pricer)
		if err := roundTrip.AddOrUpdateLine(context.Background(), "choc", 3); err != nil {
			t.Fatalf("AddOrUpdateLine() unexpected error = %v", err)
		}
		roundTrip.RemoveLine("choc")
		if err := roundTrip.AddOrUpdateLine(context.Background(), "choc", 9); err != nil {
			t.Fatalf("AddOrUpdateLine() unexpected error = %v", err)
		}

		if !reflect.DeepEqual(direct.Lines(), roundTrip.Lines()) {
			t.Errorf("round-trip lines = %+v, want %+v", roundTrip.Lines(), direct.Lines())
		}
	})

	t.Run("reports false for a missing line", func(t *testing.T) {
		b := NewBuilder(pricer)
		if b.RemoveLine("choc") {
			t.Error("RemoveLine() on empty builder reported true")
		}
	})
}

func TestBuilder_Validate(t *testing.T) {
	pricer := testPricer(map[string]int64{"choc": 20, "lemon": 15})

	// withPortions builds a session holding the given total, split so no
	// single cake repeats.
	withPortions := func(t *testing.T, total int) *Builder {
		t.Helper()
		b := NewBuilder(pricer)
		half := total / 2
		if err := b.AddOrUpdateLine(context.Background(), "choc", total-half); err != nil {
			t.Fatalf("AddOrUpdateLine() unexpected error = %v", err)
		}
		if half > 0 {
			if err := b.AddOrUpdateLine(context.Background(), "lemon", half); err != nil {
				t.Fatalf("AddOrUpdateLine() unexpected error = %v", err)
			}
		}
		return b
	}

	t.Run("rejects blank name and size", func(t *testing.T) {
		b := withPortions(t, 36)

		if _, err := b.Validate("   ", "24cm", nil); !errors.Is(err, ErrEmptyName) {
			t.Errorf("Validate() error = %v, want ErrEmptyName", err)
		}
		if _, err := b.Validate("Cumpleaños", "  ", nil); !errors.Is(err, ErrEmptySize) {
			t.Errorf("Validate() error = %v, want ErrEmptySize", err)
		}
	})

	t.Run("rejects an empty tray regardless of name and size", func(t *testing.T) {
		b := NewBuilder(pricer)

		if _, err := b.Validate("Cumpleaños", "24cm", nil); !errors.Is(err, ErrNoLines) {
			t.Errorf("Validate() error = %v, want ErrNoLines", err)
		}
	})

	t.Run("rejects a size label without a number", func(t *testing.T) {
		b := withPortions(t, 36)

		for _, size := range []string{"grande", "cm", "..."} {
			if _, err := b.Validate("Cumpleaños", size, nil); !errors.Is(err, ErrInvalidSizeLabel) {
				t.Errorf("Validate(size=%q) error = %v, want ErrInvalidSizeLabel", size, err)
			}
		}
	})

	t.Run("tolerance band for 24cm is 31 to 41 inclusive", func(t *testing.T) {
		tests := []struct {
			total int
			valid bool
		}{
			{total: 31, valid: true},
			{total: 36, valid: true},
			{total: 41, valid: true},
			{total: 30, valid: false},
			{total: 42, valid: false},
		}

		for _, tt := range tests {
			b := withPortions(t, tt.total)
			payload, err := b.Validate("Cumpleaños", "24cm", nil)

			if tt.valid {
				if err != nil {
					t.Errorf("Validate() with %d portions error = %v, want success", tt.total, err)
				}
				continue
			}

			var capErr *CapacityError
			if !errors.As(err, &capErr) {
				t.Errorf("Validate() with %d portions error = %v, want *CapacityError", tt.total, err)
				continue
			}
			if payload != nil {
				t.Errorf("Validate() with %d portions returned a payload alongside an error", tt.total)
			}
			if capErr.TotalPortions != tt.total {
				t.Errorf("CapacityError.TotalPortions = %d, want %d", capErr.TotalPortions, tt.total)
			}
			if capErr.Capacity != 36 || capErr.LowerBound != 31 || capErr.UpperBound != 41 {
				t.Errorf("CapacityError band = (%.1f, %.1f, %.1f), want (36.0, 31.0, 41.0)",
					capErr.Capacity, capErr.LowerBound, capErr.UpperBound)
			}
		}
	})

	t.Run("parses a diameter embedded in prose", func(t *testing.T) {
		b := withPortions(t, 36)

		if _, err := b.Validate("Cumpleaños", "bandeja de 24 cm", nil); err != nil {
			t.Errorf("Validate() error = %v, want success", err)
		}
	})

	t.Run("successful validation returns the finalized payload", func(t *testing.T) {
		b := withPortions(t, 36)
		price := decimal.NewFromInt(1200)

		payload, err := b.Validate("  Cumpleaños ", "24cm", &price)
		if err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}

		if payload.Name != "Cumpleaños" {
			t.Errorf("payload name = %q, want trimmed %q", payload.Name, "Cumpleaños")
		}
		if payload.SizeLabel != "24cm" {
			t.Errorf("payload sizeLabel = %q, want %q", payload.SizeLabel, "24cm")
		}
		if payload.Price == nil || !payload.Price.Equal(price) {
			t.Errorf("payload price = %v, want %s", payload.Price, price)
		}
		if len(payload.Lines) != 2 {
			t.Errorf("payload lines = %d, want 2", len(payload.Lines))
		}
	})
}

func TestBuilder_Reset(t *testing.T) {
	pricer := testPricer(map[string]int64{"choc": 20})
	b := NewBuilder(pricer)

	if err := b.AddOrUpdateLine(context.Background(), "choc", 5); err != nil {
		t.Fatalf("AddOrUpdateLine() unexpected error = %v", err)
	}
	if _, ok := b.BeginEdit("choc"); !ok {
		t.Fatal("BeginEdit() reported no line")
	}

	b.Reset()

	if len(b.Lines()) != 0 || b.TotalPortions() != 0 || b.Editing() != "" {
		t.Error("Reset() did not clear lines and cursor")
	}
	if err := b.AddOrUpdateLine(context.Background(), "choc", 5); err != nil {
		t.Errorf("AddOrUpdateLine() after reset error = %v", err)
	}
}

func TestNewBuilderFromTray(t *testing.T) {
	pricer := testPricer(map[string]int64{"choc": 25})

	stale := decimal.NewFromInt(999)
	existing := &models.Tray{
		ID:        "t1",
		Name:      "Clásica",
		SizeLabel: "24cm",
		Lines: []models.TrayLine{
			{CakeID: "choc", Portions: 12, PriceContribution: stale},
			{CakeID: "mystery", Portions: 4, PriceContribution: stale},
		},
	}

	b := NewBuilderFromTray(context.Background(), pricer, existing)

	lines := b.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !lines[0].PriceContribution.Equal(decimal.NewFromInt(300)) {
		t.Errorf("choc contribution = %s, want recomputed 300", lines[0].PriceContribution)
	}
	if !lines[1].PriceContribution.IsZero() {
		t.Errorf("mystery contribution = %s, want 0 (no cost summary)", lines[1].PriceContribution)
	}
	if b.TotalPortions() != 16 {
		t.Errorf("totalPortions = %d, want 16", b.TotalPortions())
	}
}
