package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type memoryEntry struct {
	game      entity.GameState
	expiresAt time.Time
}

type memoryGame struct {
	mu    sync.Mutex
	games map[string]memoryEntry

	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryGameRepository keeps games in process memory. Like the redis
// repository, a game expires ttl after its last write; ttl <= 0 keeps games
// until they are deleted or the process exits.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return newMemoryGameRepository(ttl, time.Now)
}

func newMemoryGameRepository(ttl time.Duration, now func() time.Time) *memoryGame {
	return &memoryGame{
		games:     make(map[string]memoryEntry),
		ttl:       ttl,
		now:       now,
		lastSweep: now(),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.GameState) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	that.sweep(now)

	entry := memoryEntry{game: *game}
	if that.ttl > 0 {
		entry.expiresAt = now.Add(that.ttl)
	}
	that.games[game.ID] = entry

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.GameState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.lookup(id, that.now())
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return &entry.game, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookup(id, that.now()); !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

// lookup drops the entry when it has expired. Callers hold mu.
func (that *memoryGame) lookup(id string, now time.Time) (memoryEntry, bool) {
	entry, ok := that.games[id]
	if !ok {
		return memoryEntry{}, false
	}

	if entry.expired(now) {
		delete(that.games, id)
		return memoryEntry{}, false
	}

	return entry, true
}

// sweep drops every expired entry, at most once per ttl. Callers hold mu.
func (that *memoryGame) sweep(now time.Time) {
	if that.ttl <= 0 || now.Sub(that.lastSweep) < that.ttl {
		return
	}

	for id, entry := range that.games {
		if entry.expired(now) {
			delete(that.games, id)
		}
	}
	that.lastSweep = now
}

func (that memoryEntry) expired(now time.Time) bool {
	return !that.expiresAt.IsZero() && !now.Before(that.expiresAt)
}
