package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func newTestManager(t *testing.T) (*GameManager, *mockGameRepo) {
	t.Helper()

	repo := &mockGameRepo{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	manager := NewGameManager(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
	manager.newID = func() string { return "g1" }

	return manager, repo
}

func startedGame(cells ...int) *entity.Game {
	game := entity.NewGame("g1")
	game.Start()
	for _, cell := range cells {
		if err := game.MakeTurn(cell); err != nil {
			panic(err)
		}
	}
	return game
}

func TestGameManager_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a new game", func(t *testing.T) {
		// Given: a repository that accepts writes
		manager, repo := newTestManager(t)
		repo.On("CreateOrUpdate", ctx, entity.NewGame("g1")).Return(nil).Once()

		// When: a game is created
		view, err := manager.CreateGame(ctx)

		// Then: the initial view is returned
		require.NoError(t, err)
		assert.Equal(t, "g1", view.GameID)
		assert.Equal(t, entity.PlayerX, view.Turn)
		assert.False(t, view.Started)
	})

	t.Run("Returns error when storage fails", func(t *testing.T) {
		manager, repo := newTestManager(t)
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(errRedisDown).Once()

		_, err := manager.CreateGame(ctx)

		require.ErrorIs(t, err, errRedisDown)
	})

	t.Run("Uses random ids by default", func(t *testing.T) {
		manager := NewGameManager(slog.New(slog.NewTextHandler(io.Discard, nil)), &mockGameRepo{})

		assert.NotEqual(t, manager.newID(), manager.newID())
	})
}

func TestGameManager_StartGame(t *testing.T) {
	ctx := context.Background()

	// Given: a stored game that is not started
	manager, repo := newTestManager(t)
	repo.On("GetByID", ctx, "g1").Return(entity.NewGame("g1"), nil).Once()
	repo.On("CreateOrUpdate", ctx, mock.MatchedBy(func(game *entity.Game) bool {
		return game.Started
	})).Return(nil).Once()

	// When: the game is started
	view, err := manager.StartGame(ctx, "g1")

	// Then: the stored game is started
	require.NoError(t, err)
	assert.True(t, view.Started)
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the accepted move", func(t *testing.T) {
		// Given: a started game
		manager, repo := newTestManager(t)
		repo.On("GetByID", ctx, "g1").Return(startedGame(), nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.MatchedBy(func(game *entity.Game) bool {
			return game.Board[4] == entity.PlayerX && game.Turn == entity.PlayerO
		})).Return(nil).Once()

		// When: X plays the center
		view, err := manager.MakeTurn(ctx, "g1", 4)

		// Then: the view reflects the move
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, view.Cells[4])
	})

	t.Run("Rejected move is not stored", func(t *testing.T) {
		// Given: a game where X took the center
		manager, repo := newTestManager(t)
		repo.On("GetByID", ctx, "g1").Return(startedGame(4), nil).Once()

		// When: O clicks the center
		view, err := manager.MakeTurn(ctx, "g1", 4)

		// Then: ErrCellOccupied is returned with the unchanged view
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, entity.PlayerO, view.Turn)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Winning move finishes the game", func(t *testing.T) {
		manager, repo := newTestManager(t)
		repo.On("GetByID", ctx, "g1").Return(startedGame(0, 3, 1, 4), nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		view, err := manager.MakeTurn(ctx, "g1", 2)

		require.NoError(t, err)
		assert.Equal(t, tictactoe.StatusTextXWin, view.StatusText)
		assert.Equal(t, []int{0, 1, 2}, view.WinCells)
		assert.True(t, view.ShowReplay)
	})

	t.Run("Unknown game", func(t *testing.T) {
		manager, repo := newTestManager(t)
		repo.On("GetByID", ctx, "nope").Return(nil, apperror.ErrGameNotFound).Once()

		_, err := manager.MakeTurn(ctx, "nope", 0)

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Storage failure after the move", func(t *testing.T) {
		manager, repo := newTestManager(t)
		repo.On("GetByID", ctx, "g1").Return(startedGame(), nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(errRedisDown).Once()

		_, err := manager.MakeTurn(ctx, "g1", 0)

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestGameManager_Replay(t *testing.T) {
	ctx := context.Background()

	// Given: a finished game
	manager, repo := newTestManager(t)
	repo.On("GetByID", ctx, "g1").Return(startedGame(0, 3, 1, 4, 2), nil).Once()
	repo.On("CreateOrUpdate", ctx, mock.MatchedBy(func(game *entity.Game) bool {
		return game.Board == entity.Board{} && game.IsPlaying()
	})).Return(nil).Once()

	// When: replay is requested
	view, err := manager.Replay(ctx, "g1")

	// Then: the board is reset
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPlaying, view.Status)
	assert.False(t, view.ShowReplay)
}

func TestGameManager_GetAndDeleteGame(t *testing.T) {
	ctx := context.Background()

	manager, repo := newTestManager(t)
	repo.On("GetByID", ctx, "g1").Return(startedGame(4), nil).Once()
	repo.On("DeleteByID", ctx, "g1").Return(nil).Once()
	repo.On("DeleteByID", ctx, "g2").Return(apperror.ErrGameNotFound).Once()

	view, err := manager.GetGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, entity.PlayerX, view.Cells[4])

	require.NoError(t, manager.DeleteGame(ctx, "g1"))
	require.ErrorIs(t, manager.DeleteGame(ctx, "g2"), apperror.ErrGameNotFound)
}

func TestGameManager_EvaluateBoard(t *testing.T) {
	manager, _ := newTestManager(t)

	t.Run("Evaluates a valid board", func(t *testing.T) {
		outcome, err := manager.EvaluateBoard([]string{"X", "X", "X", "X", "O", "O", "X", "O", "O"})

		require.NoError(t, err)
		assert.Equal(t, entity.Outcome{
			Status:   entity.StatusWon,
			Winner:   entity.PlayerX,
			Patterns: []entity.WinPattern{{0, 1, 2}, {0, 3, 6}},
		}, outcome)
	})

	t.Run("Rejects a malformed board", func(t *testing.T) {
		_, err := manager.EvaluateBoard([]string{"X"})

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})
}

func TestGameManager_EvaluateBoardWithPatterns(t *testing.T) {
	manager, _ := newTestManager(t)

	t.Run("Evaluates over the given patterns only", func(t *testing.T) {
		// Given: a board with a full top row and a full left column
		cells := []string{"X", "X", "X", "X", "O", "O", "X", "O", "O"}

		// When: only columns count as lines
		outcome, err := manager.EvaluateBoardWithPatterns(cells, [][]int{{0, 3, 6}, {1, 4, 7}, {2, 5, 8}})

		// Then: only the column is reported
		require.NoError(t, err)
		assert.Equal(t, entity.Outcome{
			Status:   entity.StatusWon,
			Winner:   entity.PlayerX,
			Patterns: []entity.WinPattern{{0, 3, 6}},
		}, outcome)
	})

	t.Run("Rejects a malformed pattern", func(t *testing.T) {
		_, err := manager.EvaluateBoardWithPatterns(make([]string, 9), [][]int{{0, 1}})

		require.ErrorIs(t, err, apperror.ErrInvalidPattern)
	})

	t.Run("Rejects a malformed board first", func(t *testing.T) {
		_, err := manager.EvaluateBoardWithPatterns([]string{"X"}, [][]int{{0, 1}})

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})
}
