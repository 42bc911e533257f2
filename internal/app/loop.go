package app

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rgal/internal/blob"
	"github.com/kk-code-lab/rgal/internal/config"
	fsutil "github.com/kk-code-lab/rgal/internal/fs"
	"github.com/kk-code-lab/rgal/internal/logging"
	"github.com/kk-code-lab/rgal/internal/metrics"
	statepkg "github.com/kk-code-lab/rgal/internal/state"
	"github.com/kk-code-lab/rgal/internal/ui/input"
	renderui "github.com/kk-code-lab/rgal/internal/ui/render"
	"golang.org/x/text/language"
)

const actionBufferSize = 32

// NewApplication initializes the terminal and opens cfg.Root when set.
func NewApplication(cfg *config.Config) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newApplication(cfg, screen)
}

// newApplication wires the session to an initialized screen.
func newApplication(cfg *config.Config, screen tcell.Screen) (*Application, error) {
	if cfg == nil {
		cfg = &config.Config{AsyncLoads: true}
	}

	registry := blob.NewRegistry()
	state := statepkg.NewAppState(registry)
	if cfg.Locale != language.Und {
		state.Locale = cfg.Locale
	}
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, actionBufferSize)
	inputHandler := input.NewInputHandler(actionCh)

	app := &Application{
		cfg:           cfg,
		screen:        screen,
		state:         state,
		reducer:       statepkg.NewStateReducer(),
		renderer:      renderui.NewRenderer(screen, registry),
		input:         inputHandler,
		registry:      registry,
		actionCh:      actionCh,
		done:          make(chan struct{}),
		openDirectory: fsutil.OpenDirectory,
	}

	state.Keys = inputHandler.Listeners()
	state.SetDispatch(app.dispatch)
	if cfg.AsyncLoads {
		state.DirectoryLoader = statepkg.NewAsyncDirectoryLoader()
		state.FileLoader = statepkg.NewAsyncFileLoader()
	}
	inputHandler.SetState(state)

	app.metrics = metrics.StartServer(cfg.MetricsAddr, func(err error) {
		logging.Error("metrics server stopped", logging.String("addr", cfg.MetricsAddr), logging.Err(err))
	})

	if cfg.Root != "" {
		app.openFolder(cfg.Root)
	}
	return app, nil
}

// Run processes terminal events and actions until the user quits. The caller
// owns Close.
func (app *Application) Run() {
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				// Screen finalized.
				close(eventChan)
				return
			}
			select {
			case eventChan <- ev:
			case <-app.done:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.PromptSubmitAction:
		app.openFolder(app.state.PromptInput)
		return true
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
	}
	if offer := app.state.TakeExport(); offer != nil {
		app.saveExport(offer)
	}
	return true
}

// openFolder is the terminal's directory picker: a typed path stands in for
// the host granting a folder handle.
func (app *Application) openFolder(path string) {
	path = expandHome(strings.TrimSpace(path))
	var action statepkg.Action
	if path == "" {
		action = statepkg.CapabilityUnavailableAction{Err: errors.New("no folder given")}
	} else if dir, err := app.openDirectory(path); err != nil {
		action = statepkg.CapabilityUnavailableAction{Err: err}
	} else {
		action = statepkg.SelectFolderAction{Dir: dir}
	}
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
	}
}

// saveExport writes an offered download into the export directory without
// overwriting anything already there.
func (app *Application) saveExport(offer *statepkg.ExportOffer) {
	dir := expandHome(app.cfg.ExportDir)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		app.exportFailed(offer, err)
		return
	}

	target, err := createUnique(dir, filepath.Base(offer.Name))
	if err != nil {
		app.exportFailed(offer, err)
		return
	}
	_, writeErr := target.Write(offer.Data)
	closeErr := target.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(target.Name())
		app.exportFailed(offer, err)
		return
	}

	app.state.Notice = "Saved " + target.Name()
	logging.Info("export saved",
		logging.String("file", offer.Name),
		logging.String("path", target.Name()),
		logging.Int("bytes", len(offer.Data)),
	)
}

func (app *Application) exportFailed(offer *statepkg.ExportOffer, err error) {
	app.state.LastError = fmt.Errorf("save %s: %w", offer.Name, err)
	logging.Warn("export failed", logging.String("file", offer.Name), logging.Err(err))
}

// createUnique opens name inside dir, falling back to "name (n).ext" when
// the file already exists.
func createUnique(dir, name string) (*os.File, error) {
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "download"
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 0; n < 1000; n++ {
		candidate := name
		if n > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
		}
		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("no free file name for %s in %s", name, dir)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
