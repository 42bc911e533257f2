//go:build !windows

package app

import (
	"os"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rgal/internal/logging"
	statepkg "github.com/kk-code-lab/rgal/internal/state"
)

func (app *Application) suspendToShell() {
	_ = app.screen.Suspend()
	// Stop only this process so job control in the launching shell keeps working.
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTSTP); err != nil {
		logging.Warn("suspend failed", logging.Err(err))
	}
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		logging.Warn("resume failed", logging.Err(err))
		return false
	}
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.dispatch(statepkg.ResizeAction{Width: w, Height: h})
	}
	return true
}

// contSignals are the signals that mean the shell resumed us.
func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}
