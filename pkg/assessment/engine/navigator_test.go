package engine

import "testing"

func TestSectionNavigatorWalk(t *testing.T) {
	nav := NewSectionNavigator(3)

	if nav.Current() != 0 {
		t.Errorf("expected to start at section 0, got %d", nav.Current())
	}
	if nav.HasPrevious() {
		t.Error("first section must not have a previous")
	}
	if nav.OnLastSection() {
		t.Error("first of three sections is not the last")
	}

	if !nav.Next() {
		t.Fatal("expected Next to succeed")
	}
	if !nav.Next() {
		t.Fatal("expected Next to succeed")
	}
	if nav.Current() != 2 {
		t.Errorf("expected section 2, got %d", nav.Current())
	}
	if !nav.OnLastSection() {
		t.Error("expected to be on the last section")
	}

	// forward past the end is a no-op
	if nav.Next() {
		t.Error("Next past the last section must report false")
	}
	if nav.Current() != 2 {
		t.Errorf("position must not change, got %d", nav.Current())
	}

	if !nav.Previous() {
		t.Fatal("expected Previous to succeed")
	}
	if !nav.Previous() {
		t.Fatal("expected Previous to succeed")
	}
	if nav.Current() != 0 {
		t.Errorf("expected section 0, got %d", nav.Current())
	}

	// backward past the start is a no-op
	if nav.Previous() {
		t.Error("Previous before the first section must report false")
	}
	if nav.Current() != 0 {
		t.Errorf("position must not change, got %d", nav.Current())
	}
}

func TestSectionNavigatorSingleSection(t *testing.T) {
	nav := NewSectionNavigator(1)
	if !nav.OnLastSection() {
		t.Error("single section form is always on the last section")
	}
	if nav.Next() {
		t.Error("Next must report false")
	}
	if nav.Previous() {
		t.Error("Previous must report false")
	}
}

func TestSectionNavigatorEmptyForm(t *testing.T) {
	nav := NewSectionNavigator(0)
	if !nav.OnLastSection() {
		t.Error("empty form counts as being on the last section")
	}
	if nav.Next() || nav.Previous() {
		t.Error("navigation on an empty form must be a no-op")
	}
}

func TestSectionNavigatorNegativeTotal(t *testing.T) {
	nav := NewSectionNavigator(-2)
	if nav.TotalSections() != 0 {
		t.Errorf("negative totals clamp to 0, got %d", nav.TotalSections())
	}
}
