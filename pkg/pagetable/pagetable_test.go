package pagetable

import "testing"

func TestGetSetRemove(t *testing.T) {
	tbl := New(4)

	if _, ok := tbl.Get(7); ok {
		t.Fatal("Get() on empty table should report absent")
	}

	tbl.Set(7, 1)
	tbl.Set(11, 2) // collides with 7 in a 4-bucket table (7%4 == 11%4 == 3)

	if v, ok := tbl.Get(7); !ok || v != 1 {
		t.Errorf("Get(7) = %d, %v, want 1, true", v, ok)
	}
	if v, ok := tbl.Get(11); !ok || v != 2 {
		t.Errorf("Get(11) = %d, %v, want 2, true", v, ok)
	}

	tbl.Set(7, 9)
	if v, ok := tbl.Get(7); !ok || v != 9 {
		t.Errorf("Get(7) after overwrite = %d, %v, want 9, true", v, ok)
	}

	if !tbl.Remove(7) {
		t.Error("Remove(7) should report present")
	}
	if _, ok := tbl.Get(7); ok {
		t.Error("Get(7) after Remove should report absent")
	}
	if v, ok := tbl.Get(11); !ok || v != 2 {
		t.Errorf("Get(11) after sibling removed = %d, %v, want 2, true", v, ok)
	}
	if tbl.Remove(7) {
		t.Error("Remove(7) twice should report absent the second time")
	}
}

func TestDefaultCapacity(t *testing.T) {
	tbl := New(0)
	if len(tbl.buckets) != DefaultCapacity {
		t.Errorf("len(buckets) = %d, want %d", len(tbl.buckets), DefaultCapacity)
	}
}
