package state

import (
	"strings"

	fsutil "github.com/kk-code-lab/rgal/internal/fs"
)

// BreadcrumbSeparator joins directory names in the header.
const BreadcrumbSeparator = " / "

// PathStack is the navigation trail, root first and current directory last.
type PathStack struct {
	dirs []fsutil.Directory
}

// Push appends dir as the new current directory.
func (p *PathStack) Push(dir fsutil.Directory) {
	p.dirs = append(p.dirs, dir)
}

// Pop removes the current directory unless it is the session root. It reports
// whether anything was removed.
func (p *PathStack) Pop() bool {
	if len(p.dirs) <= 1 {
		return false
	}
	p.dirs[len(p.dirs)-1] = nil
	p.dirs = p.dirs[:len(p.dirs)-1]
	return true
}

// Top returns the current directory, or nil when nothing is selected.
func (p *PathStack) Top() fsutil.Directory {
	if len(p.dirs) == 0 {
		return nil
	}
	return p.dirs[len(p.dirs)-1]
}

func (p *PathStack) Len() int {
	return len(p.dirs)
}

// Reset empties the stack.
func (p *PathStack) Reset() {
	p.dirs = nil
}

// Names returns the display names from root to current.
func (p *PathStack) Names() []string {
	names := make([]string, len(p.dirs))
	for i, d := range p.dirs {
		names[i] = d.Name()
	}
	return names
}

// Breadcrumb joins the display names with sep.
func (p *PathStack) Breadcrumb(sep string) string {
	return strings.Join(p.Names(), sep)
}
