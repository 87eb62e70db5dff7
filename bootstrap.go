package jsmodules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-jsmodules/pkg/activity"
)

// Bootstrapper populates runtimes from script trees.
type Bootstrapper struct {
	cfg     bootstrapConfig
	emitter *activity.Emitter
}

// NewBootstrapper constructs a Bootstrapper.
func NewBootstrapper(opts ...Option) *Bootstrapper {
	cfg := applyOptions(opts)
	return &Bootstrapper{
		cfg: cfg,
		emitter: activity.NewEmitter(cfg.activityHooks, activity.Config{
			Enabled: true,
			Channel: cfg.activityChannel,
		}),
	}
}

// Plan lists the units Load would process, honoring the configured filter.
func (b *Bootstrapper) Plan(tree *Tree) ([]Unit, error) {
	return Plan(tree, b.cfg.filter)
}

// Define runs Load and reduces the outcome to a success flag. The failure
// itself is reported through the configured logger and activity hooks.
func (b *Bootstrapper) Define(ctx context.Context, rt *Runtime, tree *Tree) bool {
	return b.Load(ctx, rt, tree) == nil
}

// Load registers every nested-tier script of tree with the runtime's module
// loader and evaluates every global-tier script, stopping at the first error.
// A runtime can be loaded once; later calls fail with ErrAlreadyBootstrapped.
func (b *Bootstrapper) Load(ctx context.Context, rt *Runtime, tree *Tree) error {
	if ctx == nil {
		ctx = context.Background()
	}
	runID := b.cfg.newRunID()
	start := time.Now()

	if rt == nil || rt.VM() == nil {
		err := fmt.Errorf("jsmodules: runtime is nil")
		b.finish(ctx, runID, start, 0, err)
		return err
	}
	if tree == nil {
		b.finish(ctx, runID, start, 0, ErrNilTree)
		return ErrNilTree
	}
	if !rt.markBootstrapped() {
		b.finish(ctx, runID, start, 0, ErrAlreadyBootstrapped)
		return ErrAlreadyBootstrapped
	}

	units := 0
	w := &walker{
		tree:   tree,
		filter: b.cfg.filter,
	}
	r := &registrar{rt: rt, engine: b.cfg.engine, fsys: tree.fsys}
	w.visit = func(unit Unit) error {
		unitStart := time.Now()
		var err error
		switch unit.Tier {
		case TierModule:
			err = r.compileAndRegister(unit)
		case TierGlobal:
			err = r.compileAndEvaluateGlobal(unit)
		default:
			err = wrapUnitError(OpWalk, unit, fmt.Errorf("unknown tier %q", unit.Tier))
		}
		if err != nil {
			return err
		}
		units++
		b.cfg.logger.LogBootstrap(BootstrapLogEvent{
			RunID:    runID,
			Stage:    string(unit.Tier),
			Name:     unit.Name,
			Path:     unit.Path,
			Duration: time.Since(unitStart),
		})
		b.emitUnit(ctx, runID, unit)
		return nil
	}

	err := w.run()
	b.finish(ctx, runID, start, units, err)
	return err
}

func (b *Bootstrapper) finish(ctx context.Context, runID string, start time.Time, units int, err error) {
	b.cfg.logger.LogBootstrap(BootstrapLogEvent{
		RunID:    runID,
		Stage:    StageBootstrap,
		Units:    units,
		Duration: time.Since(start),
		Err:      err,
	})
	if err == nil {
		return
	}
	input := b.eventInput(runID)
	input.Units = units
	input.Err = err
	var bootErr *BootstrapError
	if errors.As(err, &bootErr) {
		input.Name = bootErr.Name
		input.Path = bootErr.Path
	}
	b.emit(ctx, runID, activity.BuildBootstrapFailedEvent(input))
}

func (b *Bootstrapper) emitUnit(ctx context.Context, runID string, unit Unit) {
	if !b.emitter.Enabled() {
		return
	}
	input := b.eventInput(runID)
	input.Name = unit.Name
	input.Path = unit.Path
	switch unit.Tier {
	case TierModule:
		b.emit(ctx, runID, activity.BuildModuleRegisteredEvent(input))
	case TierGlobal:
		b.emit(ctx, runID, activity.BuildScriptEvaluatedEvent(input))
	}
}

// emit forwards event to the activity hooks. Hook failures never fail the
// bootstrap; they are reported to the logger under StageActivity.
func (b *Bootstrapper) emit(ctx context.Context, runID string, event activity.Event) {
	if err := b.emitter.Emit(ctx, event); err != nil {
		b.cfg.logger.LogBootstrap(BootstrapLogEvent{
			RunID: runID,
			Stage: StageActivity,
			Name:  event.Verb,
			Err:   err,
		})
	}
}

func (b *Bootstrapper) eventInput(runID string) activity.BootstrapEventInput {
	return activity.BootstrapEventInput{
		RunID:   runID,
		ActorID: b.cfg.actorID,
	}
}

// Load bootstraps rt from tree with a one-off Bootstrapper.
func Load(ctx context.Context, rt *Runtime, tree *Tree, opts ...Option) error {
	return NewBootstrapper(opts...).Load(ctx, rt, tree)
}

// Define bootstraps rt from tree and reports success. Callers must treat false
// as fatal to runtime startup; rt may be partially initialized.
func Define(ctx context.Context, rt *Runtime, tree *Tree, opts ...Option) bool {
	return NewBootstrapper(opts...).Define(ctx, rt, tree)
}
