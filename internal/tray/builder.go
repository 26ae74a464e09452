package tray

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pasteleria/admin-backend/internal/models"
)

var (
	ErrInvalidPortions  = errors.New("portions must be a positive integer")
	ErrDuplicateCake    = errors.New("cake already in the tray; edit its line instead of re-adding")
	ErrEmptyName        = errors.New("tray name is required")
	ErrEmptySize        = errors.New("tray size is required")
	ErrNoLines          = errors.New("must add at least one cake")
	ErrInvalidSizeLabel = errors.New("size must contain a valid number, e.g. 24cm")
)

// PortionPricer resolves the per-portion cost of a cake. The second
// return is false when no cost summary is available for the cake, in
// which case its lines contribute zero to the tray price.
type PortionPricer interface {
	CostPerPortion(ctx context.Context, cakeID string) (decimal.Decimal, bool)
}

// PortionPricerFunc adapts a function to the PortionPricer interface.
type PortionPricerFunc func(ctx context.Context, cakeID string) (decimal.Decimal, bool)

func (f PortionPricerFunc) CostPerPortion(ctx context.Context, cakeID string) (decimal.Decimal, bool) {
	return f(ctx, cakeID)
}

// Line is one cake placed in the tray under assembly.
type Line struct {
	CakeID            string          `json:"cakeId"`
	Portions          int             `json:"portions"`
	PriceContribution decimal.Decimal `json:"priceContribution"`
}

// Builder holds the working state of one tray-assembly session: the
// ordered set of lines, keyed by cake so each cake appears at most
// once, and the edit cursor. A Builder is not safe for concurrent use;
// each session owns exactly one.
//
// Read-only (view) screens never construct a Builder at all — they
// render the persisted models.Tray directly, so there is no mutating
// operation to forbid.
type Builder struct {
	pricer  PortionPricer
	lines   []Line
	index   map[string]int
	editing string // cake id under edit, empty when none
}

// NewBuilder starts an empty session for assembling a new tray.
func NewBuilder(pricer PortionPricer) *Builder {
	return &Builder{
		pricer: pricer,
		index:  make(map[string]int),
	}
}

// NewBuilderFromTray starts an edit session pre-loaded with an existing
// tray's lines. Price contributions are recomputed from current
// per-portion costs rather than carried over from the stored tray.
func NewBuilderFromTray(ctx context.Context, pricer PortionPricer, t *models.Tray) *Builder {
	b := NewBuilder(pricer)
	for _, line := range t.Lines {
		if _, exists := b.index[line.CakeID]; exists {
			continue
		}
		b.index[line.CakeID] = len(b.lines)
		b.lines = append(b.lines, Line{
			CakeID:            line.CakeID,
			Portions:          line.Portions,
			PriceContribution: b.contribution(ctx, line.CakeID, line.Portions),
		})
	}
	return b
}

// AddOrUpdateLine places portions of a cake in the tray. When the edit
// cursor points at the cake, its existing line is replaced and the
// cursor resets. Otherwise the cake must not already have a line:
// duplicates are rejected, never silently merged.
func (b *Builder) AddOrUpdateLine(ctx context.Context, cakeID string, portions int) error {
	if portions <= 0 {
		return ErrInvalidPortions
	}

	contribution := b.contribution(ctx, cakeID, portions)

	if b.editing != "" && b.editing == cakeID {
		i := b.index[cakeID]
		b.lines[i].Portions = portions
		b.lines[i].PriceContribution = contribution
		b.editing = ""
		return nil
	}

	if _, exists := b.index[cakeID]; exists {
		return ErrDuplicateCake
	}

	b.index[cakeID] = len(b.lines)
	b.lines = append(b.lines, Line{
		CakeID:            cakeID,
		Portions:          portions,
		PriceContribution: contribution,
	})
	return nil
}

// BeginEdit moves the edit cursor to the given cake and returns its
// current portions so the caller can pre-fill an input. It reports
// false, without moving the cursor, if the cake has no line.
func (b *Builder) BeginEdit(cakeID string) (int, bool) {
	i, ok := b.index[cakeID]
	if !ok {
		return 0, false
	}
	b.editing = cakeID
	return b.lines[i].Portions, true
}

// RemoveLine deletes the cake's line, resetting the edit cursor if it
// pointed at it. It reports whether a line was removed.
func (b *Builder) RemoveLine(cakeID string) bool {
	i, ok := b.index[cakeID]
	if !ok {
		return false
	}

	b.lines = append(b.lines[:i], b.lines[i+1:]...)
	delete(b.index, cakeID)
	for j := i; j < len(b.lines); j++ {
		b.index[b.lines[j].CakeID] = j
	}

	if b.editing == cakeID {
		b.editing = ""
	}
	return true
}

// Reset clears all lines and the edit cursor.
func (b *Builder) Reset() {
	b.lines = nil
	b.index = make(map[string]int)
	b.editing = ""
}

// Lines returns a copy of the current lines in insertion order.
func (b *Builder) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// TotalPortions sums the portions across all lines.
func (b *Builder) TotalPortions() int {
	total := 0
	for _, line := range b.lines {
		total += line.Portions
	}
	return total
}

// Editing returns the cake id under edit, or empty when the cursor is
// not set.
func (b *Builder) Editing() string {
	return b.editing
}

func (b *Builder) contribution(ctx context.Context, cakeID string, portions int) decimal.Decimal {
	perPortion, ok := b.pricer.CostPerPortion(ctx, cakeID)
	if !ok {
		return decimal.Zero
	}
	return perPortion.Mul(decimal.NewFromInt(int64(portions)))
}

// Payload is the finalized tray handed to the persistence collaborator
// after a successful Validate.
type Payload struct {
	Name      string
	SizeLabel string
	Price     *decimal.Decimal
	Lines     []Line
}

// Validate checks the assembled tray against the declared name and
// size and, if everything holds, returns the finalized payload. The
// session state is left untouched either way, so the caller can fix a
// rejected input and try again.
func (b *Builder) Validate(name, sizeLabel string, price *decimal.Decimal) (*Payload, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(sizeLabel) == "" {
		return nil, ErrEmptySize
	}
	if len(b.lines) == 0 {
		return nil, ErrNoLines
	}

	diameter, err := parseDiameter(sizeLabel)
	if err != nil {
		return nil, err
	}

	if capErr := checkCapacity(diameter, b.TotalPortions()); capErr != nil {
		return nil, capErr
	}

	return &Payload{
		Name:      strings.TrimSpace(name),
		SizeLabel: strings.TrimSpace(sizeLabel),
		Price:     price,
		Lines:     b.Lines(),
	}, nil
}
