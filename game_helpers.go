package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// game drives one board through the render-evaluate-commit loop
type game struct {
	board      *model.Board
	renderer   *model.TerminalRenderer
	stats      *utils.Stats
	history    model.History
	config     utils.Config
	logger     *utils.Logger
	generation int
}

// initializeGame loads the board from path, or seeds a random one when path is empty
func initializeGame(config utils.Config, path string, out io.Writer, logger *utils.Logger) (*game, error) {
	var (
		board *model.Board
		err   error
	)
	if path != "" {
		board, err = model.LoadBoardFile(path, config.StrictInput)
		if err != nil {
			return nil, errors.Wrap(err, "[initializeGame] failed to load board")
		}
	} else {
		board, err = model.NewBoard(config.Width, config.Height)
		if err != nil {
			return nil, errors.Wrap(err, "[initializeGame] failed to create board")
		}
		rng := rand.New(rand.NewPCG(uint64(config.Seed), 0))
		board.SeedInterestingPatterns(rng, config.RandomDensity)
	}
	board.SetWorkers(config.Workers)

	return &game{
		board:    board,
		renderer: &model.TerminalRenderer{Out: out},
		stats:    utils.NewStats(),
		config:   config,
		logger:   logger,
	}, nil
}

// displayGameInfo logs the initial game information
func (g *game) displayGameInfo() {
	g.logger.Infof("Grid: %dx%d | Initial living cells: %d | Workers: %d",
		g.board.Width(), g.board.Height(), g.board.CountLiving(), g.config.Workers)
	g.logger.Infof("Press Ctrl+C to exit gracefully")
}

// displayGameStatus shows the current game status
func (g *game) displayGameStatus() {
	var (
		s       = g.stats
		density = float64(s.Population) / float64(g.board.Width()*g.board.Height()) * 100
	)
	fmt.Fprintf(g.renderer.Out, "Gen: %d | Living: %d | Density: %.1f%% | Growing: %d | Dying: %d\n",
		g.generation, s.Population, density, s.Births, s.Deaths)
	fmt.Fprintf(g.renderer.Out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		s.GenerationsPerSecond, s.AveragePopulation, time.Since(s.StartTime).Seconds())
}

// advance runs one generation: evaluate, draw the in-between state, commit.
// It returns a non-empty reason when the run should stop.
func (g *game) advance(frameDuration time.Duration) (string, error) {
	g.board.Evaluate()

	growing, dying := g.board.Transitions()
	g.stats.Update(g.generation, g.board.CountLiving(), growing, dying, frameDuration)

	if err := g.renderer.Clear(); err != nil {
		return "", errors.Wrap(err, "[advance] failed to clear terminal")
	}
	g.displayGameStatus()
	if err := g.renderer.Display(g.board); err != nil {
		return "", errors.Wrap(err, "[advance] failed to display board")
	}

	if err := g.board.Commit(); err != nil {
		return "", errors.Wrapf(err, "[advance] generation %d", g.generation)
	}
	g.generation++

	if g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations {
		return fmt.Sprintf("reached maximum generations limit (%d)", g.config.MaxGenerations), nil
	}
	stagnant := g.history.Observe(g.board)
	if g.board.CountLiving() == 0 {
		return "extinction", nil
	}
	if stagnant && g.config.StopOnStagnation {
		return "stagnation detected", nil
	}
	return "", nil
}

// run advances one generation per tick until ctx is cancelled or advance asks to stop
func (g *game) run(ctx context.Context, ticks <-chan time.Time) error {
	lastFrameTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			g.logger.Infof("Shutting down gracefully...")
			return nil
		case now := <-ticks:
			reason, err := g.advance(now.Sub(lastFrameTime))
			lastFrameTime = now
			if err != nil {
				return err
			}
			if reason != "" {
				g.logger.Infof("Stopping: %s", reason)
				return nil
			}
		}
	}
}
