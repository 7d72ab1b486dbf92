package record

import "testing"

// TestQuranRecordRoundTripAcrossShutdown implements scenario 3: insert a
// record, shut down, reopen, and verify it comes back byte-identical at
// the expected row id.
func TestQuranRecordRoundTripAcrossShutdown(t *testing.T) {
	path := testDBPath(t)
	schema := quranSchema()

	session, err := Init(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := session.CreateTable("quran", schema); err != nil {
		t.Fatal(err)
	}
	table, err := session.OpenTable("quran")
	if err != nil {
		t.Fatal(err)
	}

	rec := NewRecord(schema)
	mustSet(t, SetInt(schema, rec, 0, 1))
	mustSet(t, SetString(schema, rec, 1, "Al-Fatihah"))
	mustSet(t, SetInt(schema, rec, 2, 7))
	mustSet(t, SetFloat(schema, rec, 3, 1.0))
	mustSet(t, SetBool(schema, rec, 4, true))

	rid, err := table.Insert(rec.Data)
	if err != nil {
		t.Fatal(err)
	}
	if rid.Page != 1 || rid.Slot != 0 {
		t.Fatalf("RID = %+v, want {Page:1 Slot:0}", rid)
	}

	if err := table.Close(); err != nil {
		t.Fatal(err)
	}
	if err := session.Shutdown(); err != nil {
		t.Fatal(err)
	}

	session, err = Init(path)
	if err != nil {
		t.Fatal(err)
	}
	defer session.Shutdown()
	table, err = session.OpenTable("quran")
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	got, err := table.Get(rid)
	if err != nil {
		t.Fatal(err)
	}
	if string(got.Data) != string(rec.Data) {
		t.Errorf("payload mismatch after restart: got %v, want %v", got.Data, rec.Data)
	}

	name, err := GetString(schema, got, 1)
	if err != nil || name != "Al-Fatihah" {
		t.Errorf("GetString(1) = %q, %v, want Al-Fatihah, nil", name, err)
	}
}

func mustSet(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestInsertBumpsNumTuples(t *testing.T) {
	path := testDBPath(t)
	session, err := Init(path)
	if err != nil {
		t.Fatal(err)
	}
	defer session.Shutdown()

	schema := NewSchema([]Attr{{Type: TypeInt}}, nil)
	if err := session.CreateTable("t", schema); err != nil {
		t.Fatal(err)
	}
	table, err := session.OpenTable("t")
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	for i := int32(0); i < 5; i++ {
		rec := NewRecord(schema)
		mustSet(t, SetInt(schema, rec, 0, i))
		if _, err := table.Insert(rec.Data); err != nil {
			t.Fatal(err)
		}
	}
	n, err := table.NumTuples()
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Errorf("NumTuples() = %d, want 5", n)
	}
}

func TestDeleteThenGetFails(t *testing.T) {
	path := testDBPath(t)
	session, err := Init(path)
	if err != nil {
		t.Fatal(err)
	}
	defer session.Shutdown()

	schema := NewSchema([]Attr{{Type: TypeInt}}, nil)
	if err := session.CreateTable("t", schema); err != nil {
		t.Fatal(err)
	}
	table, err := session.OpenTable("t")
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	rec := NewRecord(schema)
	mustSet(t, SetInt(schema, rec, 0, 42))
	rid, err := table.Insert(rec.Data)
	if err != nil {
		t.Fatal(err)
	}
	if err := table.Delete(rid); err != nil {
		t.Fatal(err)
	}
	if _, err := table.Get(rid); err != ErrSlotEmpty {
		t.Errorf("err = %v, want ErrSlotEmpty", err)
	}
	if err := table.Delete(rid); err != ErrSlotEmpty {
		t.Errorf("second Delete() err = %v, want ErrSlotEmpty", err)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	path := testDBPath(t)
	session, err := Init(path)
	if err != nil {
		t.Fatal(err)
	}
	defer session.Shutdown()

	schema := NewSchema([]Attr{{Type: TypeInt}}, nil)
	if err := session.CreateTable("t", schema); err != nil {
		t.Fatal(err)
	}
	table, err := session.OpenTable("t")
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	rec := NewRecord(schema)
	mustSet(t, SetInt(schema, rec, 0, 1))
	rid, err := table.Insert(rec.Data)
	if err != nil {
		t.Fatal(err)
	}

	updated := NewRecord(schema)
	mustSet(t, SetInt(schema, updated, 0, 99))
	if err := table.Update(rid, updated.Data); err != nil {
		t.Fatal(err)
	}

	got, err := table.Get(rid)
	if err != nil {
		t.Fatal(err)
	}
	v, err := GetInt(schema, got, 0)
	if err != nil || v != 99 {
		t.Errorf("GetInt() = %d, %v, want 99, nil", v, err)
	}
}

func TestGetOutOfRangeSlotFails(t *testing.T) {
	path := testDBPath(t)
	session, err := Init(path)
	if err != nil {
		t.Fatal(err)
	}
	defer session.Shutdown()

	schema := NewSchema([]Attr{{Type: TypeInt}}, nil)
	if err := session.CreateTable("t", schema); err != nil {
		t.Fatal(err)
	}
	table, err := session.OpenTable("t")
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	if _, err := table.Get(RID{Page: table.mainPage, Slot: 999999}); err != ErrSlotOutOfRange {
		t.Errorf("err = %v, want ErrSlotOutOfRange", err)
	}
}

func TestInsertOverflowsToNewPage(t *testing.T) {
	path := testDBPath(t)
	session, err := Init(path)
	if err != nil {
		t.Fatal(err)
	}
	defer session.Shutdown()

	// a wide record so only a handful fit per page, forcing overflow
	// quickly.
	schema := NewSchema([]Attr{{Type: TypeString, Length: 500}}, nil)
	if err := session.CreateTable("t", schema); err != nil {
		t.Fatal(err)
	}
	table, err := session.OpenTable("t")
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	perPage := recordsPerPage(schema)
	total := perPage*2 + 1
	var rids []RID
	for i := 0; i < total; i++ {
		rec := NewRecord(schema)
		mustSet(t, SetString(schema, rec, 0, "x"))
		rid, err := table.Insert(rec.Data)
		if err != nil {
			t.Fatalf("Insert(%d) error = %v", i, err)
		}
		rids = append(rids, rid)
	}

	pages := make(map[int]bool)
	for _, rid := range rids {
		pages[int(rid.Page)] = true
	}
	if len(pages) < 3 {
		t.Errorf("expected records spread across >= 3 pages, got %d", len(pages))
	}
	for _, rid := range rids {
		if _, err := table.Get(rid); err != nil {
			t.Fatalf("Get(%+v) error = %v", rid, err)
		}
	}
}
