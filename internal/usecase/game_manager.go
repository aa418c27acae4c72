package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/columns/internal/apperror"
	"github.com/rocketscienceinc/columns/internal/columns"
	"github.com/rocketscienceinc/columns/internal/entity"
)

type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

type eventPublisher interface {
	Publish(ctx context.Context, event entity.Event) error
}

// SourceFactory returns the random source of a new board.
type SourceFactory func() columns.Source

type session struct {
	mu    sync.Mutex
	id    string
	board *columns.Board
}

// GameManager hosts independent boards, one per session.
type GameManager struct {
	logger    *slog.Logger
	publisher eventPublisher
	newSource SourceFactory

	rows, cols int

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewGameManager(logger *slog.Logger, publisher eventPublisher, rows, cols int, newSource SourceFactory) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		publisher: publisher,
		newSource: newSource,

		rows: rows,
		cols: cols,

		sessions: make(map[string]*session),
	}
}

func (that *GameManager) CreateSession(_ context.Context) (*entity.Session, error) {
	s := &session{
		id:    uuid.NewString(),
		board: columns.NewBoard(that.rows, that.cols, that.newSource()),
	}

	that.mu.Lock()
	that.sessions[s.id] = s
	that.mu.Unlock()

	that.logger.Info("session created", "session_id", s.id, "rows", that.rows, "columns", that.cols)

	return s.view(), nil
}

func (that *GameManager) DeleteSession(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	delete(that.sessions, id)
	that.logger.Info("session deleted", "session_id", id)

	return nil
}

func (that *GameManager) Snapshot(_ context.Context, id string) (*entity.Session, error) {
	s, err := that.getSession(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view(), nil
}

// Spawn creates a faller in column, or in a random column with room when column is nil.
func (that *GameManager) Spawn(ctx context.Context, id string, column *int) (*entity.Session, error) {
	return that.apply(ctx, id, "spawn", func(board *columns.Board) error {
		if column == nil {
			return board.CreateFaller()
		}
		return board.CreateFallerAt(*column)
	})
}

func (that *GameManager) Tick(ctx context.Context, id string) (*entity.Session, error) {
	return that.apply(ctx, id, "tick", (*columns.Board).AdvanceTick)
}

func (that *GameManager) Rotate(ctx context.Context, id string) (*entity.Session, error) {
	return that.apply(ctx, id, "rotate", (*columns.Board).Rotate)
}

func (that *GameManager) Move(ctx context.Context, id string, direction Direction) (*entity.Session, error) {
	switch direction {
	case DirectionLeft:
		return that.apply(ctx, id, "move_left", (*columns.Board).MoveLeft)
	case DirectionRight:
		return that.apply(ctx, id, "move_right", (*columns.Board).MoveRight)
	default:
		return nil, fmt.Errorf("%w: unknown direction %q", apperror.ErrInvalidMove, direction)
	}
}

// TickAll advances every running session by one step. A session waiting for a faller gets
// a new one in a random column instead.
func (that *GameManager) TickAll(ctx context.Context) {
	log := that.logger.With("method", "TickAll")

	that.mu.RLock()
	sessions := make([]*session, 0, len(that.sessions))
	for _, s := range that.sessions {
		sessions = append(sessions, s)
	}
	that.mu.RUnlock()

	for _, s := range sessions {
		s.mu.Lock()
		err := that.autoplay(ctx, s)
		s.mu.Unlock()

		if err != nil {
			log.Warn("autoplay step failed", "session_id", s.id, "error", err)
		}
	}
}

// Run calls TickAll every interval until ctx is canceled.
func (that *GameManager) Run(ctx context.Context, interval time.Duration) {
	log := that.logger.With("method", "Run")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("autoplay started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			log.Info("autoplay stopped")
			return
		case <-ticker.C:
			that.TickAll(ctx)
		}
	}
}

func (that *GameManager) autoplay(ctx context.Context, s *session) error {
	switch {
	case s.board.IsGameOver():
		return nil
	case s.board.NeedsNewFaller():
		return that.step(ctx, s, s.board.CreateFaller)
	default:
		return that.step(ctx, s, s.board.AdvanceTick)
	}
}

func (that *GameManager) apply(ctx context.Context, id, method string, op func(*columns.Board) error) (*entity.Session, error) {
	s, err := that.getSession(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = that.step(ctx, s, func() error { return op(s.board) }); err != nil {
		that.logger.Debug("operation rejected", "method", method, "session_id", id, "error", err)
		return nil, fmt.Errorf("failed to %s: %w", method, err)
	}

	return s.view(), nil
}

// step runs op on the board of s and publishes what changed. The caller holds s.mu.
func (that *GameManager) step(ctx context.Context, s *session, op func() error) error {
	before := s.board.State()
	clearedBefore := s.board.Cleared()
	column := -1
	if faller, ok := s.board.Faller(); ok {
		column = faller.Column
	}

	if err := op(); err != nil {
		return err
	}

	for _, event := range that.changes(s, before, clearedBefore, column) {
		that.publish(ctx, event)
	}

	return nil
}

// changes lists the events between two states of s. column is where the faller was before
// the step and is kept when the step retired it.
func (that *GameManager) changes(s *session, before columns.State, clearedBefore, column int) []entity.Event {
	after := s.board.State()
	if faller, ok := s.board.Faller(); ok {
		column = faller.Column
	}

	newEvent := func(eventType entity.EventType) entity.Event {
		return entity.Event{
			SessionID: s.id,
			Type:      eventType,
			Column:    column,
			State:     after.String(),
			At:        time.Now().UTC(),
		}
	}

	var events []entity.Event

	active := func(state columns.State) bool {
		return state == columns.StateFalling || state == columns.StateLanded
	}

	switch {
	case before == columns.StateAwaitingFaller && after == columns.StateFalling:
		events = append(events, newEvent(entity.EventSpawned))
	case before != columns.StateLanded && after == columns.StateLanded:
		events = append(events, newEvent(entity.EventLanded))
	case before == columns.StateLanded && !active(after):
		events = append(events, newEvent(entity.EventFrozen))
	}

	if cleared := s.board.Cleared() - clearedBefore; cleared > 0 {
		event := newEvent(entity.EventCleared)
		event.Cleared = cleared
		events = append(events, event)
	}

	if before != columns.StateGameOver && after == columns.StateGameOver {
		events = append(events, newEvent(entity.EventGameOver))
	}

	return events
}

func (that *GameManager) publish(ctx context.Context, event entity.Event) {
	if err := that.publisher.Publish(ctx, event); err != nil {
		that.logger.Error("failed to publish event", "type", event.Type, "session_id", event.SessionID, "error", err)
	}
}

func (that *GameManager) getSession(id string) (*session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	s, ok := that.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return s, nil
}

// view builds the public picture of s. The caller holds s.mu or owns s exclusively.
func (that *session) view() *entity.Session {
	view := &entity.Session{
		ID:       that.id,
		State:    that.board.State().String(),
		GameOver: that.board.IsGameOver(),
		Cleared:  that.board.Cleared(),
		Grid:     that.board.Snapshot(),
	}

	if faller, ok := that.board.Faller(); ok {
		view.Faller = &faller
	}

	return view
}
