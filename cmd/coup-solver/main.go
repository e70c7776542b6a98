package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/behrlich/coup-solver/internal/cliutil"
	"github.com/behrlich/coup-solver/internal/logging"
	"github.com/behrlich/coup-solver/pkg/engine"
	"github.com/behrlich/coup-solver/pkg/rules"
	"github.com/behrlich/coup-solver/pkg/solver"
)

func main() {
	logging.Init(true)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "train":
		err = runTrain(os.Args[2:])
	case "eval":
		err = runEval(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: coup-solver <train|eval|inspect> [flags]\n")
}

// commonFlags holds the flags shared across all three subcommands.
type commonFlags struct {
	seed           int64
	maxDepth       int
	traversalMode  string
	debug          bool
	logInfosetHash bool
}

func registerCommonFlags(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.Int64Var(&c.seed, "seed", 0, "solver RNG seed")
	fs.IntVar(&c.maxDepth, "max-depth", 300, "maximum traversal/rollout depth")
	fs.StringVar(&c.traversalMode, "traversal-mode", "sampled", "traversal mode: sampled or full")
	fs.BoolVar(&c.debug, "debug", false, "emit per-step traversal debug logs (sampled mode only)")
	fs.BoolVar(&c.logInfosetHash, "log-infoset-hash", false, "log a hash of each infoset key instead of the full key")
	return c
}

func (c *commonFlags) newSolver() *solver.Solver {
	mode := solver.Sampled
	if c.traversalMode == "full" {
		mode = solver.Full
	}
	if c.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return solver.NewSolver(rules.Default(), c.seed, c.maxDepth, mode, c.debug, c.logInfosetHash)
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	common := registerCommonFlags(fs)
	iterations := fs.Int("iterations", 1000, "number of MCCFR iterations")
	outDir := fs.String("out", "", "output directory for the checkpoint (default runs/<timestamp>)")
	logInterval := fs.Int("log-interval", 10, "emit a progress log every N iterations (0 disables chunking)")
	gameSeed := fs.Int64("game-seed", 0, "seed every dealt game from this value instead of the solver's RNG (when omitted, the solver's RNG seeds each game)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	gameSeedSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "game-seed" {
			gameSeedSet = true
		}
	})

	s := common.newSolver()
	out, err := cliutil.EnsureOutDir(*outDir, time.Now())
	if err != nil {
		return err
	}

	var seedPtr *int64
	var gameSeedField any
	if gameSeedSet {
		seedPtr = gameSeed
		gameSeedField = *gameSeed
	}

	meta := map[string]any{
		"cmd":            "train",
		"iterations":     *iterations,
		"seed":           common.seed,
		"game_seed":      gameSeedField,
		"max_depth":      common.maxDepth,
		"traversal_mode": common.traversalMode,
		"debug":          common.debug,
	}
	if err := cliutil.EmitEvent(os.Stdout, "train_start", meta); err != nil {
		return err
	}

	total := *iterations
	interval := *logInterval
	if interval <= 0 || interval >= total {
		s.Iterate(total, seedPtr)
		if err := cliutil.EmitEvent(os.Stdout, "train_progress", map[string]any{"completed": total, "total": total}); err != nil {
			return err
		}
	} else {
		done := 0
		for done < total {
			step := interval
			if total-done < step {
				step = total - done
			}
			s.Iterate(step, seedPtr)
			done += step
			if err := cliutil.EmitEvent(os.Stdout, "train_progress", map[string]any{"completed": done, "total": total}); err != nil {
				return err
			}
		}
	}
	if err := cliutil.EmitEvent(os.Stdout, "train_end", meta); err != nil {
		return err
	}

	ckptPath := filepath.Join(out, "checkpoint.yaml")
	if err := s.SaveCheckpoint(ckptPath); err != nil {
		return err
	}
	fmt.Printf("Saved checkpoint to %s\n", ckptPath)
	return nil
}

func runEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	common := registerCommonFlags(fs)
	episodes := fs.Int("episodes", 100, "number of self-play episodes")
	evalSeed := fs.Int64("eval-seed", 7, "seed for the self-play episodes")
	outDir := fs.String("out", "", "output directory for eval.json (optional)")
	checkpoint := fs.String("checkpoint", "", "checkpoint file to load before evaluating")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := common.newSolver()
	if *checkpoint != "" {
		if err := s.LoadCheckpoint(*checkpoint); err != nil {
			return err
		}
	}

	if err := cliutil.EmitEvent(os.Stdout, "eval_start", map[string]any{
		"episodes":       *episodes,
		"seed":           common.seed,
		"max_depth":      common.maxDepth,
		"traversal_mode": common.traversalMode,
	}); err != nil {
		return err
	}

	val := s.Evaluate(*episodes, *evalSeed)
	result := map[string]any{"avg_utility_p0": val}
	if err := cliutil.EmitEvent(os.Stdout, "eval_result", result); err != nil {
		return err
	}

	if *outDir != "" {
		out, err := cliutil.EnsureOutDir(*outDir, time.Now())
		if err != nil {
			return err
		}
		path := filepath.Join(out, "eval.json")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		writeErr := cliutil.EmitEvent(f, "eval_result", result)
		closeErr := f.Close()
		if writeErr != nil {
			return writeErr
		}
		if closeErr != nil {
			return closeErr
		}
		fmt.Printf("Saved eval to %s\n", path)
	}
	return nil
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	common := registerCommonFlags(fs)
	gameSeed := fs.Int64("game-seed", 3, "seed for the inspected deal")
	checkpoint := fs.String("checkpoint", "", "checkpoint file to load before inspecting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := common.newSolver()
	if *checkpoint != "" {
		if err := s.LoadCheckpoint(*checkpoint); err != nil {
			return err
		}
	}

	gs, err := engine.New(2, *gameSeed, rules.Default())
	if err != nil {
		return err
	}

	probs := s.ActionProbabilities(gs)
	actions := make([]map[string]any, len(probs))
	for i, p := range probs {
		actions[i] = map[string]any{
			"action": p.Action.Type.String(),
			"target": p.Action.Target,
			"prob":   p.Probability,
		}
	}
	return cliutil.EmitEvent(os.Stdout, "inspect", map[string]any{"actions": actions})
}
