package record

import "testing"

func TestAttrSize(t *testing.T) {
	cases := []struct {
		attr Attr
		want int
	}{
		{Attr{Type: TypeInt}, 4},
		{Attr{Type: TypeFloat}, 4},
		{Attr{Type: TypeBool}, 1},
		{Attr{Type: TypeString, Length: 10}, 11},
	}
	for _, c := range cases {
		if got := AttrSize(c.attr); got != c.want {
			t.Errorf("AttrSize(%+v) = %d, want %d", c.attr, got, c.want)
		}
	}
}

func TestRecordSize(t *testing.T) {
	schema := NewSchema([]Attr{
		{Name: "id", Type: TypeInt},
		{Name: "name", Type: TypeString, Length: 20},
		{Name: "score", Type: TypeFloat},
		{Name: "active", Type: TypeBool},
	}, []int{0})

	want := 4 + 21 + 4 + 1
	if got := schema.RecordSize(); got != want {
		t.Errorf("RecordSize() = %d, want %d", got, want)
	}
}

func TestAttrOffset(t *testing.T) {
	schema := NewSchema([]Attr{
		{Type: TypeInt},
		{Type: TypeString, Length: 9},
		{Type: TypeBool},
	}, nil)
	if off := schema.attrOffset(0); off != 0 {
		t.Errorf("offset(0) = %d, want 0", off)
	}
	if off := schema.attrOffset(1); off != 4 {
		t.Errorf("offset(1) = %d, want 4", off)
	}
	if off := schema.attrOffset(2); off != 4+10 {
		t.Errorf("offset(2) = %d, want %d", off, 4+10)
	}
}
