package models

import (
	"reflect"
	"testing"
)

// TestResumeSet_InsertionOrder tests that Names preserves the order of Add calls
func TestResumeSet_InsertionOrder(t *testing.T) {
	set := NewResumeSet()
	set.Add("backend.pdf", "Go developer")
	set.Add("data.pdf", "Data analyst")
	set.Add("frontend.pdf", "React developer")

	want := []string{"backend.pdf", "data.pdf", "frontend.pdf"}
	if got := set.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	if got := set.First(); got != "backend.pdf" {
		t.Errorf("First() = %q, want %q", got, "backend.pdf")
	}
}

// TestResumeSet_SkipsEmptyText tests that resumes without extracted text are excluded
func TestResumeSet_SkipsEmptyText(t *testing.T) {
	set := NewResumeSet()
	set.Add("scanned.pdf", "")
	set.Add("good.pdf", "Software engineer with Go experience")

	if set.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", set.Len())
	}
	if set.Has("scanned.pdf") {
		t.Error("set should not contain resume with empty text")
	}
	if !set.Has("good.pdf") {
		t.Error("set should contain resume with text")
	}
}

// TestResumeSet_IgnoresDuplicates tests that a duplicate name keeps the first text
func TestResumeSet_IgnoresDuplicates(t *testing.T) {
	set := NewResumeSet()
	set.Add("cv.pdf", "first version")
	set.Add("cv.pdf", "second version")

	if set.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", set.Len())
	}
	if text, _ := set.Text("cv.pdf"); text != "first version" {
		t.Errorf("Text() = %q, want %q", text, "first version")
	}
}

// TestResumeSet_Empty tests the empty set's accessors
func TestResumeSet_Empty(t *testing.T) {
	set := NewResumeSet()

	if set.Len() != 0 {
		t.Errorf("Len() = %d, want 0", set.Len())
	}
	if got := set.First(); got != "" {
		t.Errorf("First() = %q, want empty", got)
	}
	if _, ok := set.Text("anything"); ok {
		t.Error("Text() on empty set should report not found")
	}
}
