package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/l1jgo/arcade/internal/config"
	"github.com/l1jgo/arcade/internal/game"
	"github.com/l1jgo/arcade/internal/render"
)

// holdFor is how long one arrow key press keeps the ship moving. Terminals
// report key repeats but no key release.
const holdFor = 120 * time.Millisecond

func newPlayCmd(flags *globalFlags) *cobra.Command {
	var brain string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Play in the terminal.

Keys:
  left/right  move the ship
  space       fire
  mouse       click an asteroid to destroy it
  a           toggle the agent
  d           change the agent difficulty
  r           restart
  q, Esc      quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(flags)
			if err != nil {
				return err
			}
			defer log.Sync()
			return runPlay(cfg, log, brain)
		},
	}
	cmd.Flags().StringVar(&brain, "brain", brainAuto, "Agent brain: auto, heuristic or lua")
	return cmd
}

func runPlay(cfg *config.Config, log *zap.Logger, brainKind string) error {
	printBanner(os.Stderr, "play")
	printSection(os.Stderr, "setup")

	sess, err := newSession(cfg, log, brainKind)
	if err != nil {
		return err
	}
	defer sess.close()
	g := sess.game
	printStat(os.Stderr, "asteroids", cfg.Asteroids.Capacity)
	printStat(os.Stderr, "explosions", cfg.Explosions.Capacity)
	printStat(os.Stderr, "projectiles", cfg.Projectiles.Capacity)
	printOK(os.Stderr, fmt.Sprintf("agent brain: %s", sess.brain))

	stopMetrics := serveMetrics(cfg.Metrics, sess.collector, log)
	defer stopMetrics()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	term := render.NewTerminal(screen, cfg.Field.Width, cfg.Field.Height, render.HUDRows)

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	ticker := time.NewTicker(cfg.Frame.TickRate)
	defer ticker.Stop()

	log.Info("game loop started", zap.Duration("tick", cfg.Frame.TickRate), zap.Int64("seed", g.Seed()))

	ctl := &controls{g: g, screen: screen, term: term}
	for {
		select {
		case <-ticker.C:
			ctl.release(time.Now())
			term.Begin()
			g.Frame(cfg.Frame.TickRate, term)
			term.End()
		case ev := <-events:
			if !ctl.handle(ev, time.Now()) {
				finish(cfg, g, log)
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			finish(cfg, g, log)
			return nil
		}
	}
}

// controls maps terminal input onto game commands.
type controls struct {
	g         *game.Game
	screen    tcell.Screen
	term      *render.Terminal
	moveUntil time.Time
	pressed   bool // Button1 held at the last mouse event
}

// handle applies one event and reports whether the loop should continue.
func (c *controls) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			c.move(-1, now)
		case tcell.KeyRight:
			c.move(1, now)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				c.g.Fire()
			case 'a', 'A':
				c.g.ToggleAgent()
			case 'd', 'D':
				c.g.CycleDifficulty()
			case 'r', 'R':
				c.g.Restart()
			}
		}
	case *tcell.EventMouse:
		// drags and motion repeat the held button; only the press clicks
		down := ev.Buttons()&tcell.Button1 != 0
		wasDown := c.pressed
		c.pressed = down
		if !down || wasDown {
			return true
		}
		col, row := ev.Position()
		if x, y, ok := c.term.ToField(col, row); ok {
			c.g.Click(x, y)
		}
	case *tcell.EventResize:
		c.screen.Sync()
	}
	return true
}

func (c *controls) move(dir int, now time.Time) {
	if c.g.Agent().Active() {
		return
	}
	c.g.MoveShip(dir)
	c.moveUntil = now.Add(holdFor)
}

// release stops the ship once the last arrow press has expired.
func (c *controls) release(now time.Time) {
	if c.g.Agent().Active() || c.moveUntil.IsZero() || now.Before(c.moveUntil) {
		return
	}
	c.g.MoveShip(0)
	c.moveUntil = time.Time{}
}

func finish(cfg *config.Config, g *game.Game, log *zap.Logger) {
	log.Info("game over",
		zap.Int("score", g.Score()),
		zap.Bool("won", g.Won()),
		zap.Uint64("frames", g.FrameCount()),
		zap.Duration("elapsed", g.Elapsed()),
	)
	saveRun(cfg.Database, runRow(g, g.Agent().Decisions() > 0), log)
}
