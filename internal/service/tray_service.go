package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pasteleria/admin-backend/internal/models"
	"github.com/pasteleria/admin-backend/internal/repository"
	"github.com/pasteleria/admin-backend/internal/tray"
)

var (
	ErrSessionNotFound = errors.New("tray session not found")
)

// SessionState is the read-only snapshot of a builder session handed to
// the UI for display.
type SessionState struct {
	SessionID     string      `json:"sessionId"`
	TrayID        string      `json:"trayId,omitempty"`
	Lines         []tray.Line `json:"lines"`
	TotalPortions int         `json:"totalPortions"`
	Editing       string      `json:"editing,omitempty"`
}

// builderSession pairs a builder with the tray it was opened from.
// trayID is empty for create sessions; edit sessions keep it so a
// confirm replaces the original tray instead of minting a sibling.
type builderSession struct {
	builder *tray.Builder
	trayID  string
}

// TrayService owns the registry of tray-assembly sessions and the CRUD
// surface for confirmed trays. Each session holds an independent
// builder; the service lock serializes access to it, matching the
// single-threaded contract of the builder itself.
type TrayService struct {
	trays  repository.TrayRepository
	pricer tray.PortionPricer

	mu       sync.RWMutex
	sessions map[string]*builderSession
}

// NewTrayService creates a new tray service
func NewTrayService(trays repository.TrayRepository, pricer tray.PortionPricer) *TrayService {
	return &TrayService{
		trays:    trays,
		pricer:   pricer,
		sessions: make(map[string]*builderSession),
	}
}

// StartSession opens a blank builder session for assembling a new tray
func (s *TrayService) StartSession(ctx context.Context) *SessionState {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &builderSession{builder: tray.NewBuilder(s.pricer)}

	return &SessionState{SessionID: id, Lines: []tray.Line{}}
}

// StartEditSession opens a builder session pre-loaded with an existing
// tray's lines, repriced against current cost summaries. Confirming the
// session later updates that same tray.
func (s *TrayService) StartEditSession(ctx context.Context, trayID string) (*SessionState, error) {
	existing, err := s.trays.GetByID(ctx, trayID)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	sess := &builderSession{
		builder: tray.NewBuilderFromTray(ctx, s.pricer, existing),
		trayID:  existing.ID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess

	return snapshot(id, sess), nil
}

// Session returns the current state of a builder session
func (s *TrayService) Session(sessionID string) (*SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return snapshot(sessionID, sess), nil
}

// AddOrUpdateLine places portions of a cake in the session's tray
func (s *TrayService) AddOrUpdateLine(ctx context.Context, sessionID, cakeID string, portions int) (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := sess.builder.AddOrUpdateLine(ctx, cakeID, portions); err != nil {
		return nil, err
	}
	return snapshot(sessionID, sess), nil
}

// BeginEdit moves the session's edit cursor to the given cake and
// returns its current portions. The boolean is false when the cake has
// no line in the tray.
func (s *TrayService) BeginEdit(sessionID, cakeID string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return 0, false, ErrSessionNotFound
	}
	portions, found := sess.builder.BeginEdit(cakeID)
	return portions, found, nil
}

// RemoveLine deletes a cake's line from the session's tray
func (s *TrayService) RemoveLine(sessionID, cakeID string) (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.builder.RemoveLine(cakeID)
	return snapshot(sessionID, sess), nil
}

// Reset clears the session's lines and edit cursor
func (s *TrayService) Reset(sessionID string) (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.builder.Reset()
	return snapshot(sessionID, sess), nil
}

// Confirm validates the assembled tray and, on success, persists it and
// closes the session. A create session stores a new tray; an edit
// session replaces the tray it was opened from, keeping its ID.
// Validation failures leave the session intact so the caller can
// correct the input and try again.
func (s *TrayService) Confirm(ctx context.Context, sessionID, name, sizeLabel string, price *decimal.Decimal) (*models.Tray, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	payload, err := sess.builder.Validate(name, sizeLabel, price)
	if err != nil {
		return nil, err
	}

	confirmed := models.Tray{
		ID:        sess.trayID,
		Name:      payload.Name,
		SizeLabel: payload.SizeLabel,
		Price:     payload.Price,
		Lines:     make([]models.TrayLine, 0, len(payload.Lines)),
	}
	for _, line := range payload.Lines {
		confirmed.Lines = append(confirmed.Lines, models.TrayLine{
			CakeID:            line.CakeID,
			Portions:          line.Portions,
			PriceContribution: line.PriceContribution,
		})
	}

	if confirmed.ID == "" {
		confirmed.ID = uuid.New().String()
		err = s.trays.Create(ctx, confirmed)
	} else {
		err = s.trays.Update(ctx, confirmed)
	}
	if err != nil {
		return nil, err
	}

	delete(s.sessions, sessionID)
	return &confirmed, nil
}

// Abandon drops a session without persisting anything
func (s *TrayService) Abandon(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// ListTrays returns all confirmed trays
func (s *TrayService) ListTrays(ctx context.Context) ([]models.Tray, error) {
	return s.trays.GetAll(ctx)
}

// GetTray returns a confirmed tray by ID
func (s *TrayService) GetTray(ctx context.Context, id string) (*models.Tray, error) {
	return s.trays.GetByID(ctx, id)
}

// DeleteTray removes a confirmed tray
func (s *TrayService) DeleteTray(ctx context.Context, id string) error {
	return s.trays.Delete(ctx, id)
}

func snapshot(sessionID string, sess *builderSession) *SessionState {
	return &SessionState{
		SessionID:     sessionID,
		TrayID:        sess.trayID,
		Lines:         sess.builder.Lines(),
		TotalPortions: sess.builder.TotalPortions(),
		Editing:       sess.builder.Editing(),
	}
}
