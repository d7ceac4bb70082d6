package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/l1jgo/arcade/internal/agent"
	"github.com/l1jgo/arcade/internal/config"
	"github.com/l1jgo/arcade/internal/render"
)

type simOptions struct {
	frames      int
	dt          time.Duration
	seed        int64
	agent       bool
	brain       string
	difficulty  string
	dumpMetrics bool
}

func newSimCmd(flags *globalFlags) *cobra.Command {
	opts := &simOptions{}
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the game headless and print a summary",
		Long: `Run the game without a terminal for a fixed number of frames.
Every frame is drawn into an in-memory recorder, so the full frame path runs.

Example:
  arcade sim --frames 3600 --seed 42 --agent --difficulty hard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(flags)
			if err != nil {
				return err
			}
			defer log.Sync()
			return runSim(cmd.OutOrStdout(), cfg, log, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.frames, "frames", "n", 3600, "Number of frames to simulate")
	cmd.Flags().DurationVar(&opts.dt, "dt", 0, "Frame step (default frame.tick_rate)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "RNG seed (default frame.seed, 0 seeds from the clock)")
	cmd.Flags().BoolVar(&opts.agent, "agent", false, "Let the agent play")
	cmd.Flags().StringVar(&opts.brain, "brain", brainAuto, "Agent brain: auto, heuristic or lua")
	cmd.Flags().StringVar(&opts.difficulty, "difficulty", "", "Override agent.difficulty (easy, medium, hard)")
	cmd.Flags().BoolVar(&opts.dumpMetrics, "metrics", false, "Print the final metrics in Prometheus text format")
	return cmd
}

func runSim(w io.Writer, cfg *config.Config, log *zap.Logger, opts *simOptions) error {
	if opts.frames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", opts.frames)
	}
	if opts.seed != 0 {
		cfg.Frame.Seed = opts.seed
	}
	if opts.difficulty != "" {
		if _, err := agent.ParseDifficulty(opts.difficulty); err != nil {
			return err
		}
		cfg.Agent.Difficulty = opts.difficulty
	}
	if opts.agent {
		cfg.Agent.Enabled = true
	}
	dt := opts.dt
	if dt <= 0 {
		dt = cfg.Frame.TickRate
	}

	sess, err := newSession(cfg, log, opts.brain)
	if err != nil {
		return err
	}
	defer sess.close()
	g := sess.game

	rec := render.NewRecorder()
	draws := 0
	start := time.Now()
	for i := 0; i < opts.frames; i++ {
		rec.Reset()
		g.Frame(dt, rec)
		draws += len(rec.Ops)
	}
	wall := time.Since(start)
	log.Debug("simulation finished", zap.Int("frames", opts.frames), zap.Duration("wall", wall))

	printSection(w, "simulation")
	printStat(w, "seed", g.Seed())
	printStat(w, "frames", g.FrameCount())
	printStat(w, "simulated time", g.Elapsed())
	if g.Agent().Active() {
		printStat(w, "agent", fmt.Sprintf("%s (%s)", g.Agent().Difficulty(), sess.brain))
		printStat(w, "agent decisions", g.Agent().Decisions())
	} else {
		printStat(w, "agent", "off")
	}
	printStat(w, "draw calls", draws)

	printSection(w, "result")
	score := fmt.Sprint(g.Score())
	if g.MaxScore() > 0 {
		score = fmt.Sprintf("%d / %d", g.Score(), g.MaxScore())
	}
	printStat(w, "score", score)
	st := g.Stats()
	printStat(w, "spawned", st.Spawned)
	printStat(w, "destroyed", st.Destroyed)
	printStat(w, "escaped", st.Escaped)
	printStat(w, "shots", st.Shots)
	printStat(w, "explosions", st.Explosions)
	if g.Won() {
		printOK(w, fmt.Sprintf("won with a final score of %d", g.Score()))
	}

	printSection(w, "pools")
	for _, ps := range g.PoolStats() {
		printStat(w, ps.Name, fmt.Sprintf("%d/%d, %d acquired, %d full", ps.Active, ps.Capacity, ps.Acquired, ps.Exhausted))
	}

	if opts.dumpMetrics {
		fmt.Fprintln(w)
		if err := sess.collector.WriteText(w); err != nil {
			return err
		}
	}

	saveRun(cfg.Database, runRow(g, g.Agent().Decisions() > 0), log)
	return nil
}
