package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rgal/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
	listeners  *Listeners
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
		listeners:  NewListeners(),
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// Listeners returns the registry consulted before mode handling.
func (ih *InputHandler) Listeners() *Listeners {
	return ih.listeners
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the application should quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true
	}

	if ih.listeners.Dispatch(KeyFromEvent(ev)) {
		return true
	}

	s := ih.state
	switch {
	case s == nil:
		return true
	case s.PromptActive:
		return ih.processPromptKey(ev)
	case s.Gallery.Open:
		// Navigation belongs to the gallery listener; only quit gets through.
		return ih.processQuitKey(ev)
	case s.Preview != nil:
		return ih.processPreviewKey(ev)
	case s.SearchActive:
		return ih.processSearchKey(ev)
	case !s.HasFolder():
		return ih.processNoFolderKey(ev)
	default:
		return ih.processNormalKey(ev)
	}
}

func (ih *InputHandler) processQuitKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}
	return true
}

func (ih *InputHandler) processPromptKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.PromptCancelAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.PromptSubmitAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.PromptBackspaceAction{}
	case tcell.KeyRune:
		ih.actionChan <- statepkg.PromptCharAction{Char: ev.Rune()}
	}
	return true
}

func (ih *InputHandler) processPreviewKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter, tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.PreviewCloseAction{}
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			ih.actionChan <- statepkg.PreviewCloseAction{}
		}
	}
	return true
}

func (ih *InputHandler) processSearchKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.SearchClearAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.SearchSubmitAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.SearchBackspaceAction{}
	case tcell.KeyUp:
		ih.actionChan <- statepkg.NavigateUpAction{}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.NavigateDownAction{}
	case tcell.KeyRune:
		// All characters are search input, including 'q'
		ih.actionChan <- statepkg.SearchCharAction{Char: ev.Rune()}
	}
	return true
}

func (ih *InputHandler) processNoFolderKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.PromptStartAction{}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'o':
			ih.actionChan <- statepkg.PromptStartAction{}
		case 'q':
			ih.actionChan <- statepkg.QuitAction{}
			return false
		}
	}
	return true
}

func (ih *InputHandler) processNormalKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		ih.actionChan <- statepkg.NavigateUpAction{}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.NavigateDownAction{}
	case tcell.KeyEnter, tcell.KeyRight:
		ih.actionChan <- statepkg.OpenSelectedAction{}
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.BackAction{}
	case tcell.KeyEscape:
		if ih.state.SearchQuery != "" {
			ih.actionChan <- statepkg.SearchClearAction{}
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case '/':
			ih.actionChan <- statepkg.SearchStartAction{}
		case 'r':
			ih.actionChan <- statepkg.ResetAction{}
		case 'o':
			ih.actionChan <- statepkg.PromptStartAction{}
		case 'j':
			ih.actionChan <- statepkg.NavigateDownAction{}
		case 'k':
			ih.actionChan <- statepkg.NavigateUpAction{}
		}
	}
	return true
}
