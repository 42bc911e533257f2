package state

import "testing"

func TestPathStack_PushPopBreadcrumb(t *testing.T) {
	var p PathStack
	if p.Top() != nil || p.Len() != 0 {
		t.Fatalf("empty stack should have no top")
	}
	if p.Pop() {
		t.Fatalf("Pop on empty stack should report false")
	}

	p.Push(newFakeDir("photos"))
	p.Push(newFakeDir("2024"))
	p.Push(newFakeDir("summer"))

	if got := p.Breadcrumb(BreadcrumbSeparator); got != "photos / 2024 / summer" {
		t.Fatalf("Breadcrumb = %q", got)
	}
	if !p.Pop() || p.Top().Name() != "2024" {
		t.Fatalf("Pop should return to 2024")
	}
	if !p.Pop() {
		t.Fatalf("Pop should succeed above the root")
	}
	if p.Pop() {
		t.Fatalf("Pop must not remove the session root")
	}
	if p.Len() != 1 || p.Top().Name() != "photos" {
		t.Fatalf("root should remain, got %v", p.Names())
	}

	p.Reset()
	if p.Len() != 0 || p.Breadcrumb(BreadcrumbSeparator) != "" {
		t.Fatalf("Reset should empty the stack")
	}
}
