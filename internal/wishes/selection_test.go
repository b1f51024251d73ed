package wishes

import (
	"reflect"
	"testing"
)

func TestSelection(t *testing.T) {
	sel := NewSelection("a", "b", "a")
	if sel.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", sel.Len())
	}

	if !sel.Toggle("c") {
		t.Error("Toggle(c) should select c")
	}
	if sel.Toggle("a") {
		t.Error("Toggle(a) should deselect a")
	}
	if sel.Contains("a") || !sel.Contains("b") || !sel.Contains("c") {
		t.Errorf("Contains() wrong after toggles: %v", sel.IDs())
	}
	if got := sel.IDs(); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("IDs() = %v, want [b c]", got)
	}

	// Index stays consistent after removal from the middle
	sel.Add("d")
	sel.Toggle("c")
	if got := sel.IDs(); !reflect.DeepEqual(got, []string{"b", "d"}) {
		t.Errorf("IDs() = %v, want [b d]", got)
	}

	ids := sel.IDs()
	ids[0] = "mutated"
	if sel.Contains("mutated") {
		t.Error("IDs() exposed internal storage")
	}

	sel.Clear()
	if sel.Len() != 0 || sel.Contains("b") {
		t.Error("Clear() left ids behind")
	}
	sel.Toggle("z")
	if !sel.Contains("z") {
		t.Error("selection unusable after Clear()")
	}
}
