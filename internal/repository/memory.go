package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

type memoryEntry struct {
	game      entity.Game
	expiresAt time.Time
}

type memoryGame struct {
	mu    sync.RWMutex
	games map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryGameRepository keeps sessions in process memory, for running without Redis.
// A non-positive ttl keeps sessions until they are deleted.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		games: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	that.sweep(now)

	entry := memoryEntry{game: copyGame(game)}
	if that.ttl > 0 {
		entry.expiresAt = now.Add(that.ttl)
	}

	that.games[game.ID] = entry

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	entry, ok := that.games[id]
	if !ok || entry.expired(that.now()) {
		return nil, apperror.ErrGameNotFound
	}

	existingGame := copyGame(&entry.game)

	return &existingGame, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.games[id]
	if !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.games, id)

	if entry.expired(that.now()) {
		return apperror.ErrGameNotFound
	}

	return nil
}

// sweep drops expired sessions. Caller holds the write lock.
func (that *memoryGame) sweep(now time.Time) {
	for id, entry := range that.games {
		if entry.expired(now) {
			delete(that.games, id)
		}
	}
}

func (that memoryEntry) expired(now time.Time) bool {
	return !that.expiresAt.IsZero() && !now.Before(that.expiresAt)
}

func copyGame(game *entity.Game) entity.Game {
	clone := *game
	if game.WinPatterns != nil {
		clone.WinPatterns = append([]entity.WinPattern(nil), game.WinPatterns...)
	}
	return clone
}
