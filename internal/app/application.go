package app

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rgal/internal/blob"
	"github.com/kk-code-lab/rgal/internal/config"
	fsutil "github.com/kk-code-lab/rgal/internal/fs"
	"github.com/kk-code-lab/rgal/internal/logging"
	"github.com/kk-code-lab/rgal/internal/metrics"
	statepkg "github.com/kk-code-lab/rgal/internal/state"
	inputui "github.com/kk-code-lab/rgal/internal/ui/input"
	renderui "github.com/kk-code-lab/rgal/internal/ui/render"
)

// Application represents the running app.
type Application struct {
	cfg      *config.Config
	screen   tcell.Screen
	state    *statepkg.AppState
	reducer  *statepkg.StateReducer
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	registry *blob.Registry
	metrics  *metrics.Server

	actionCh   chan statepkg.Action
	shouldQuit bool

	// Guards closed; senders hold the read lock while enqueueing so Close
	// can drain everything that made it into actionCh.
	mu      sync.RWMutex
	closed  bool
	done    chan struct{}
	pending sync.WaitGroup

	openDirectory func(path string) (fsutil.Directory, error)
}

// Close tears the session down: the gallery listener is removed, every
// locator released and results still in flight are released on arrival.
func (app *Application) Close() error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return nil
	}
	app.closed = true
	app.mu.Unlock()

	close(app.done)
	app.pending.Wait()
	app.reducer.Teardown(app.state)
	app.drainActions()

	err := app.metrics.Close()
	app.screen.Fini()

	logging.Info("session closed", logging.Int("live_locators", app.registry.Live()))
	_ = logging.Sync()
	return err
}

// dispatch enqueues an action for the event loop. It is safe to call from
// loader goroutines, including after Close.
func (app *Application) dispatch(action statepkg.Action) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	if app.closed {
		statepkg.ReleaseActionResources(app.registry, action)
		return
	}

	select {
	case app.actionCh <- action:
	default:
		app.pending.Add(1)
		go func() {
			defer app.pending.Done()
			select {
			case app.actionCh <- action:
			case <-app.done:
				statepkg.ReleaseActionResources(app.registry, action)
			}
		}()
	}
}

func (app *Application) drainActions() {
	for {
		select {
		case action := <-app.actionCh:
			statepkg.ReleaseActionResources(app.registry, action)
		default:
			return
		}
	}
}
