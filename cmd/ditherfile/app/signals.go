/*
Package app signal handling implementation provides graceful shutdown and
cleanup functionality for the ditherfile application. It handles system
signals like SIGINT and SIGTERM, ensuring proper resource cleanup and
operation termination.
*/
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/mxhf/pyhetdex/internal/config"
	"github.com/mxhf/pyhetdex/pkg/logger"
	"github.com/mxhf/pyhetdex/pkg/progress"
)

// signalState tracks the state of signal handling
type signalState struct {
	shutdownInitiated atomic.Bool
	forceShutdown     atomic.Bool
}

// setupSignalHandling initializes signal handling for graceful shutdown
func (a *App) setupSignalHandling() {
	state := &signalState{}

	a.log.Debug("Initializing signal handlers")

	signal.Notify(a.signals,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)

	go a.handleSignals(a.signals, state)
}

// handleSignals processes incoming system signals
func (a *App) handleSignals(sigChan chan os.Signal, state *signalState) {
	for sig := range sigChan {
		a.log.WithFields(logger.Fields{
			"signal": sig.String(),
		}).Debug("Received system signal")

		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			if state.forceShutdown.Load() {
				a.handleForcedShutdown()
				return
			}

			if state.shutdownInitiated.Load() {
				a.log.Warn("Received second interrupt, initiating forced shutdown")
				state.forceShutdown.Store(true)
				continue
			}

			if !state.shutdownInitiated.CompareAndSwap(false, true) {
				continue
			}

			a.handleGracefulShutdown()

		case syscall.SIGHUP:
			a.handleHangup()
		}
	}
}

// handleGracefulShutdown performs a graceful shutdown of the application
func (a *App) handleGracefulShutdown() {
	a.log.Info("Initiating graceful shutdown")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Notify progress of shutdown
	if a.progress != nil {
		a.progress.Update(progress.Status{
			CurrentItem: "Shutting down...",
		})
	}

	// Create error channel for shutdown operations
	errCh := make(chan error, 1)

	go func() {
		errCh <- a.performShutdown(ctx)
	}()

	// Wait for shutdown completion or timeout
	select {
	case err := <-errCh:
		if err != nil {
			a.log.WithFields(logger.Fields{
				"error": err,
			}).Error("Shutdown encountered errors")
		} else {
			a.log.Info("Graceful shutdown completed")
		}

	case <-ctx.Done():
		a.log.Error("Shutdown timed out")
	}
}

// handleForcedShutdown performs an immediate shutdown
func (a *App) handleForcedShutdown() {
	a.log.Warn("Forced shutdown initiated")

	// Cancel all operations immediately
	a.cancel()

	// Perform minimal cleanup
	if a.progress != nil {
		a.progress.Stop()
	}

	if err := a.registry.StopAll(); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to stop worker pools during forced shutdown")
	}

	a.log.Info("Forced shutdown completed")
	os.Exit(1)
}

// handleHangup handles SIGHUP signal
func (a *App) handleHangup() {
	a.log.Info("Received SIGHUP signal")

	// Reload configuration if supported
	if err := a.reloadConfiguration(); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to reload configuration")
	}
}

// performShutdown executes the shutdown sequence
func (a *App) performShutdown(ctx context.Context) error {
	a.log.Debug("Executing shutdown sequence")

	// Create error channel for collecting shutdown errors
	errCh := make(chan error, 2)

	// Stop worker pools
	go func() {
		if err := a.registry.StopAll(); err != nil {
			errCh <- fmt.Errorf("worker pool shutdown failed: %w", err)
			return
		}
		errCh <- nil
	}()

	// Stop progress display
	go func() {
		if a.progress != nil {
			a.progress.Stop()
		}
		errCh <- nil
	}()

	// Collect errors from shutdown operations
	var shutdownErrors []error
	for i := 0; i < cap(errCh); i++ {
		select {
		case err := <-errCh:
			if err != nil {
				shutdownErrors = append(shutdownErrors, err)
			}
		case <-ctx.Done():
			return fmt.Errorf("shutdown timed out")
		}
	}

	// Log shutdown completion status
	if len(shutdownErrors) > 0 {
		for _, err := range shutdownErrors {
			a.log.WithFields(logger.Fields{
				"error": err,
			}).Error("Shutdown error occurred")
		}
		return fmt.Errorf("shutdown completed with %d errors", len(shutdownErrors))
	}

	a.log.Debug("Shutdown sequence completed successfully")
	return nil
}

// reloadConfiguration reloads application configuration
func (a *App) reloadConfiguration() error {
	a.log.Debug("Reloading configuration")

	a.mu.Lock()
	defer a.mu.Unlock()

	// Reload configuration from environment
	newConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}

	// Update configuration
	a.config = &newConfig

	// Update components with new configuration
	a.updateComponents()

	a.log.Info("Configuration reloaded successfully")
	return nil
}

// updateComponents updates component configurations. Worker pools are
// created per operation and pick up the new configuration on their own,
// only the progress display needs recreating.
func (a *App) updateComponents() {
	a.log.Debug("Recreating components with new configuration")

	if a.progress != nil {
		a.progress.Stop()
	}

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

	a.log.Debug("Progress display recreated with new configuration")
}
