/*
Package app provides the main application container and orchestration for the
ditherfile tool. It manages component lifecycle, coordinates dither file
creation, and handles graceful shutdown.

The application container initializes and manages all core components:
- Logger for structured logging
- Filesystem abstraction shared by all parsers
- Worker pool registry for batch creation
- Progress visualization
- Output formatting

Usage:

	app := app.New(config)
	defer app.Shutdown()
	if err := app.Create(options); err != nil {
	    log.Fatal(err)
	}
*/
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"

	"github.com/mxhf/pyhetdex/internal/config"
	"github.com/mxhf/pyhetdex/pkg/dither"
	"github.com/mxhf/pyhetdex/pkg/fits"
	"github.com/mxhf/pyhetdex/pkg/fplane"
	"github.com/mxhf/pyhetdex/pkg/logger"
	"github.com/mxhf/pyhetdex/pkg/progress"
	"github.com/mxhf/pyhetdex/pkg/telescope"
	"github.com/mxhf/pyhetdex/pkg/worker"
)

// batchPoolName is the registry key of the pool used by CreateAll
const batchPoolName = "create"

// CreateOptions defines the options for a dither file creation
type CreateOptions struct {
	// ID of the IFU the file is written for, ignored with CreateAll
	ID string

	// FPlanePath is the instrument focal plane file
	FPlanePath string

	// Basenames are the exposure basename templates, a single one or
	// one per dither
	Basenames []string

	// ModelBases are the model basename templates, a single one or
	// one per dither
	ModelBases []string

	// Outfile is the output file template
	Outfile string

	// IDType selects the identifier space IFUs are addressed in
	IDType string

	// FWHM is the seeing written to the file
	FWHM float64

	// OrderBy is a FITS header keyword the basenames are ordered by,
	// empty to keep the given order
	OrderBy string

	// Extension is appended to basenames for FITS header lookups
	Extension string

	// Offsets are the dither shifts dx1,..,dxn,dy1,..,dyn, used for
	// every IFU when no positions file is given
	Offsets []float64

	// PositionsPath is a file with per-IFU dither shifts
	PositionsPath string

	// Illumination holds per-dither relative illumination
	// measurements, empty for unit normalisation
	Illumination []float64
}

// App represents the main application container
type App struct {
	config *config.Config
	log    logger.Logger

	fs       afero.Fs
	registry *worker.Registry
	progress progress.Progress

	ctx      context.Context
	cancel   context.CancelFunc
	signals  chan os.Signal
	done     chan struct{}
	doneOnce sync.Once
	mu       sync.RWMutex
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		config:  cfg,
		signals: make(chan os.Signal, 1),
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}

	app.initLogger()
	app.initComponents()
	app.setupSignalHandling()

	app.log.WithFields(logger.Fields{
		"workers": cfg.Workers,
		"idType":  cfg.IDType,
		"verbose": cfg.Verbose,
	}).Info("Application initialized")

	return app
}

// Create writes the dither file of a single IFU
func (a *App) Create(opts *CreateOptions) error {
	defer func() {
		if r := recover(); r != nil {
			a.log.WithFields(logger.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Recovered from panic")
		}
	}()

	a.log.WithFields(logger.Fields{
		"id":     opts.ID,
		"idType": opts.IDType,
		"fplane": opts.FPlanePath,
	}).Info("Starting dither file creation")

	creator, _, err := a.buildCreator(opts)
	if err != nil {
		return err
	}

	outPath, err := a.writeOne(creator, opts.ID, opts)
	if err != nil {
		return fmt.Errorf("failed to create dither file: %w", err)
	}

	a.log.WithFields(logger.Fields{
		"id":   opts.ID,
		"path": outPath,
	}).Info("Dither file created")

	return nil
}

// CreateAll writes one dither file per focal plane entry, spreading the
// work over the configured worker pool
func (a *App) CreateAll(opts *CreateOptions) error {
	defer func() {
		if r := recover(); r != nil {
			a.log.WithFields(logger.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Recovered from panic")
		}
	}()

	start := time.Now()

	creator, fp, err := a.buildCreator(opts)
	if err != nil {
		return err
	}

	ifus := fp.IFUs()
	total := len(ifus)
	space := fplane.IDSpace(opts.IDType)

	a.log.WithFields(logger.Fields{
		"ifus":    total,
		"idType":  opts.IDType,
		"workers": a.config.Workers,
	}).Info("Starting batch dither file creation")

	pool, err := a.registry.Get(a.ctx, batchPoolName, worker.Config{
		Workers:   a.config.Workers,
		RateLimit: a.config.RateLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}

	if !a.config.NoProgress {
		a.progress.Start("Creating dither files...")
	}

	var written atomic.Int64
	for i, ifu := range ifus {
		id, err := identifier(ifu, space)
		if err != nil {
			return err
		}

		task := worker.Task{
			ID: i,
			Execute: func(ctx context.Context) (worker.Result, error) {
				outPath, err := a.writeOne(creator, id, opts)
				if err != nil {
					return worker.Result{}, fmt.Errorf("%s: %w", id, err)
				}

				done := written.Add(1)
				if !a.config.NoProgress {
					a.progress.Update(progress.Status{
						Current:     done,
						Total:       int64(total),
						CurrentItem: outPath,
						StartTime:   start,
					})
				}

				return worker.Result{Data: outPath}, nil
			},
		}

		if err := pool.Submit(task); err != nil {
			return fmt.Errorf("failed to submit task for %s: %w", id, err)
		}
	}

	results, errs := pool.WaitSafe()
	if err := a.registry.Remove(batchPoolName); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to remove worker pool")
	}

	if len(errs) > 0 {
		if !a.config.NoProgress {
			a.progress.Error(fmt.Sprintf("Batch creation failed for %d of %d IFUs", len(errs), total))
		}
		for _, err := range errs {
			a.log.WithFields(logger.Fields{
				"error": err.Error(),
			}).Error("Dither file creation failed")
		}
		return fmt.Errorf("batch creation failed for %d of %d IFUs", len(errs), total)
	}

	if !a.config.NoProgress {
		a.progress.Complete(fmt.Sprintf("Created %d dither files", len(results)))
	}

	a.log.WithFields(logger.Fields{
		"files":    len(results),
		"duration": a.formatDuration(time.Since(start)),
	}).Info("Batch creation completed")

	return nil
}

// buildCreator parses the focal plane and assembles the dither creator
// from the shot description and the dither positions
func (a *App) buildCreator(opts *CreateOptions) (*dither.Creator, *fplane.FPlane, error) {
	fp, err := fplane.Parse(a.fs, opts.FPlanePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse focal plane file: %w", err)
	}

	a.log.WithFields(logger.Fields{
		"path": opts.FPlanePath,
		"ifus": len(fp.IFUs()),
	}).Debug("Focal plane parsed")

	shot := telescope.NewShot(opts.FWHM)
	if len(opts.Illumination) > 0 {
		model, err := telescope.RelativeIllumination(opts.Illumination)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid illumination values: %w", err)
		}
		shot.IlluminationModel = model
	}

	if opts.PositionsPath != "" {
		creator, err := dither.NewCreatorFromFile(a.fs, fp, shot, opts.PositionsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read dither positions: %w", err)
		}
		return creator, fp, nil
	}

	// Same shift pattern for every focal plane entry
	rows := make([]dither.PositionRow, 0, len(fp.IFUs()))
	for _, ifu := range fp.IFUs() {
		rows = append(rows, dither.PositionRow{ID: ifu.IFUSlot, Offsets: opts.Offsets})
	}

	creator, err := dither.NewCreator(fp, shot, rows)
	if err != nil {
		return nil, nil, err
	}

	return creator, fp, nil
}

// writeOne writes the dither file of one IFU and returns its path
func (a *App) writeOne(creator *dither.Creator, id string, opts *CreateOptions) (string, error) {
	space := fplane.IDSpace(opts.IDType)

	dxs, err := creator.Dxs(id, space)
	if err != nil {
		return "", err
	}
	ndithers := len(dxs)

	if err := dither.CheckDithers("basenames", opts.Basenames, ndithers); err != nil {
		return "", err
	}
	if err := dither.CheckDithers("modelbases", opts.ModelBases, ndithers); err != nil {
		return "", err
	}

	basenames := dither.FormatNames(opts.Basenames, id, ndithers)
	modelbases := dither.FormatNames(opts.ModelBases, id, ndithers)

	if opts.OrderBy != "" {
		sorted, err := dither.SortBasenames(basenames, opts.OrderBy, opts.Extension, fits.HeaderValue(a.fs))
		if err != nil {
			return "", fmt.Errorf("failed to order basenames: %w", err)
		}
		basenames = sorted
	}

	outPath := strings.ReplaceAll(opts.Outfile, "{id}", id)
	if err := a.createOutputDirectory(outPath); err != nil {
		return "", err
	}

	if err := creator.CreateFile(a.fs, id, basenames, modelbases, outPath, space); err != nil {
		return "", err
	}

	a.log.WithFields(logger.Fields{
		"id":      id,
		"path":    outPath,
		"dithers": ndithers,
	}).Trace("Wrote dither file")

	return outPath, nil
}

// identifier returns the identifier of an IFU in the given space
func identifier(ifu *fplane.IFU, space fplane.IDSpace) (string, error) {
	switch space {
	case fplane.IFUSlot:
		return ifu.IFUSlot, nil
	case fplane.IFUID:
		return ifu.IFUID, nil
	case fplane.SpecID:
		return ifu.SpecID, nil
	default:
		return "", &fplane.UnknownIDSpaceError{Space: space}
	}
}

// Shutdown performs a graceful shutdown of the application
func (a *App) Shutdown() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.log.Info("Initiating graceful shutdown")

	// Cancel context to stop ongoing operations
	a.cancel()

	// Stop progress visualization
	a.progress.Stop()

	// Stop worker pools
	if err := a.registry.StopAll(); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to stop worker pools")
	}

	a.doneOnce.Do(func() {
		close(a.done)
	})

	a.log.Info("Shutdown complete")
	return nil
}

// initLogger initializes the application logger
func (a *App) initLogger() {
	a.log = logger.NewLogger(logger.Config{
		Verbosity: a.config.Verbose,
	})

	a.log.WithFields(logger.Fields{
		"verbosity": a.config.Verbose,
	}).Debug("Logger initialized")
}

// initComponents initializes all application components
func (a *App) initComponents() {
	a.log.Debug("Initializing application components")

	a.fs = afero.NewOsFs()
	a.registry = worker.NewRegistry()

	// Initialize progress visualization
	style := progress.StyleBar
	if !a.isTerminal() {
		style = progress.StyleSimple
	}
	a.progress = progress.New(progress.Config{
		Style:             style,
		ShowStats:         true,
		NoColor:           a.config.NoColor,
		RefreshRate:       100 * time.Millisecond,
		HideAfterComplete: false,
	}, a.log)

	a.log.Debug("Components initialized successfully")
}

// writeOutput writes the formatted output to the specified destination
func (a *App) writeOutput(content string, outputPath string) error {
	a.log.WithFields(logger.Fields{
		"path": outputPath,
	}).Debug("Writing output")

	if outputPath == "" {
		_, err := fmt.Fprintln(os.Stdout, content)
		if err != nil {
			a.log.WithFields(logger.Fields{
				"error": err,
			}).Error("Failed to write to stdout")
		}
		return err
	}

	if err := a.createOutputDirectory(outputPath); err != nil {
		return err
	}

	err := afero.WriteFile(a.fs, outputPath, []byte(content), 0644)
	if err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
			"path":  outputPath,
		}).Error("Failed to write output file")
		return fmt.Errorf("failed to write output file: %w", err)
	}

	a.log.WithFields(logger.Fields{
		"path": outputPath,
	}).Info("Output written successfully")
	return nil
}

// createOutputDirectory ensures the output directory exists
func (a *App) createOutputDirectory(path string) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}

	a.log.WithFields(logger.Fields{
		"directory": dir,
	}).Debug("Ensuring output directory exists")

	if err := a.fs.MkdirAll(dir, 0755); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
			"path":  dir,
		}).Error("Failed to create output directory")
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	return nil
}

// isTerminal checks if the output is going to a terminal
func (a *App) isTerminal() bool {
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) != 0 {
		a.log.Debug("Output is going to a terminal")
		return true
	}
	a.log.Debug("Output is not going to a terminal")
	return false
}

// formatDuration formats a duration for display
func (a *App) formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds",
			int(d.Minutes()),
			int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm%ds",
		int(d.Hours()),
		int(d.Minutes())%60,
		int(d.Seconds())%60)
}
