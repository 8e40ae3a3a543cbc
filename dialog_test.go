package server

import "testing"

func TestDialogLines(t *testing.T) {
	dialog := NewDialog("  Hello there.  \n\n   \nSecond line.\n")

	line, ok := dialog.Next()
	if !ok || line != "Hello there." {
		t.Fatalf("unexpected first line %q ok=%v", line, ok)
	}
	line, ok = dialog.Next()
	if !ok || line != "Second line." {
		t.Fatalf("unexpected second line %q ok=%v", line, ok)
	}
	if line, ok = dialog.Next(); ok {
		t.Fatalf("expected exhausted dialog, got %q", line)
	}
	if line, ok = dialog.Next(); ok {
		t.Fatalf("exhausted dialog must stay exhausted, got %q", line)
	}
}

func TestDialogReset(t *testing.T) {
	dialog := NewDialog("one\ntwo")
	if _, ok := dialog.Next(); !ok {
		t.Fatalf("expected a first line")
	}
	dialog.Reset()
	line, ok := dialog.Next()
	if !ok || line != "one" {
		t.Fatalf("reset did not restart the sequence, got %q ok=%v", line, ok)
	}
}

func TestDialogBlankMessage(t *testing.T) {
	dialog := NewDialog("   \n \n")
	if line, ok := dialog.Next(); ok {
		t.Fatalf("blank message must yield no lines, got %q", line)
	}
}
