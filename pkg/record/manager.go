// Package record implements the catalog-driven table layout: a system
// catalog on page 0, per-table chains of slotted pages, a free-page
// list, and sequential scans. It is the top of the storage stack,
// talking to the buffer pool for every page it touches.
package record

import (
	"os"

	"minibase/pkg/buffer"
	"minibase/pkg/storage"
)

const defaultFileName = "DATA.bin"
const numBufferFrames = 16

// Session is an open record-manager instance: a buffer pool plus the
// permanently pinned catalog page. It replaces the reference's
// process-global buffer pool and catalog handle.
type Session struct {
	pool          *buffer.Pool
	catalogHandle *buffer.PageHandle
	openTables    map[string]*Table
}

// Init opens (creating if necessary) fileName as a record-manager
// session. An empty fileName defaults to "DATA.bin".
func Init(fileName string) (*Session, error) {
	if fileName == "" {
		fileName = defaultFileName
	}

	newSystem := false
	if _, err := os.Stat(fileName); err != nil {
		if err := storage.CreatePageFile(fileName); err != nil {
			return nil, err
		}
		newSystem = true
	}

	pool, err := buffer.NewPool(fileName, numBufferFrames, buffer.LRU)
	if err != nil {
		return nil, err
	}

	handle, err := pool.Pin(0)
	if err != nil {
		pool.Shutdown()
		return nil, err
	}

	s := &Session{
		pool:          pool,
		catalogHandle: handle,
		openTables:    make(map[string]*Table),
	}

	if newSystem {
		cat := s.catalogView()
		cat.SetTotalNumPages(1)
		cat.SetFreePage(storage.NoPage)
		cat.SetNumTables(0)
		if err := s.markCatalogDirty(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Shutdown unpins the catalog page and shuts down the underlying buffer
// pool, flushing all dirty frames.
func (s *Session) Shutdown() error {
	if err := s.pool.Unpin(0); err != nil {
		return err
	}
	return s.pool.Shutdown()
}

func (s *Session) catalogView() catalogView {
	return catalogView{data: s.catalogHandle.Data}
}

func (s *Session) markCatalogDirty() error {
	return s.pool.MarkDirty(0)
}

// findTable scans the catalog for name, returning its index and view, or
// (-1, nil) if absent. Looked up fresh every call since DeleteTable can
// shift later entries down.
func (s *Session) findTable(name string) (int, *tableView) {
	cat := s.catalogView()
	n := int(cat.NumTables())
	for i := 0; i < n; i++ {
		td := cat.Table(i)
		if td.Name() == name {
			return i, &td
		}
	}
	return -1, nil
}

// CreateTable adds a new table descriptor to the catalog and allocates
// its main page.
func (s *Session) CreateTable(name string, schema *Schema) error {
	if _, td := s.findTable(name); td != nil {
		return ErrTableExists
	}
	cat := s.catalogView()
	if int(cat.NumTables()) >= MaxNumTables {
		return ErrTooManyTables
	}
	if len(schema.Attrs) > MaxNumAttr {
		return ErrTooManyAttrs
	}
	if len(schema.KeyAttrs) > MaxNumKeys {
		return ErrTooManyKeys
	}

	idx := int(cat.NumTables())
	td := cat.Table(idx)
	td.SetName(name)
	td.SetNumAttr(int32(len(schema.Attrs)))
	for i, a := range schema.Attrs {
		td.SetAttrName(i, a.Name)
		td.SetDataType(i, a.Type)
		td.SetTypeLength(i, int32(a.Length))
	}
	td.SetKeySize(int32(len(schema.KeyAttrs)))
	for i, k := range schema.KeyAttrs {
		td.SetKeyAttr(i, int32(k))
	}
	td.SetNumTuples(0)
	cat.SetNumTables(int32(idx + 1))

	mainPage, err := s.getFreePage()
	if err != nil {
		return err
	}
	td.SetMainPage(mainPage)

	if err := s.initNewPage(nil, schema, mainPage); err != nil {
		return err
	}

	return s.markCatalogDirty()
}

// OpenTable pins name's main page and returns a handle for CRUD and
// scan operations. Reopening an already-open table fails.
func (s *Session) OpenTable(name string) (*Table, error) {
	if _, open := s.openTables[name]; open {
		return nil, ErrTableOpen
	}
	_, td := s.findTable(name)
	if td == nil {
		return nil, ErrTableNotFound
	}
	schema := schemaFromDescriptor(*td)
	mainPage := td.MainPage()

	handle, err := s.pool.Pin(mainPage)
	if err != nil {
		return nil, err
	}

	t := &Table{
		session:  s,
		name:     name,
		schema:   schema,
		mainPage: mainPage,
		handle:   handle,
	}
	s.openTables[name] = t
	return t, nil
}

// DeleteTable removes name's descriptor and returns its entire page
// chain to the free list. It rejects deleting a table that is currently
// open, unlike the reference, to avoid orphaning a pinned handle.
func (s *Session) DeleteTable(name string) error {
	if _, open := s.openTables[name]; open {
		return ErrTableOpen
	}
	idx, td := s.findTable(name)
	if td == nil {
		return ErrTableNotFound
	}
	mainPage := td.MainPage()

	if err := s.appendToFreeList(mainPage); err != nil {
		return err
	}

	cat := s.catalogView()
	n := int(cat.NumTables())
	for i := idx; i < n-1; i++ {
		copy(cat.Table(i).data, cat.Table(i+1).data)
	}
	cat.SetNumTables(int32(n - 1))
	return s.markCatalogDirty()
}

// Table is an open handle to one table's schema and main page.
type Table struct {
	session  *Session
	name     string
	schema   *Schema
	mainPage storage.PageNum
	handle   *buffer.PageHandle
}

// Schema returns the table's schema.
func (t *Table) Schema() *Schema { return t.schema }

// Close unpins the table's main page and forces it to disk, then clears
// the session's open-table entry.
func (t *Table) Close() error {
	if err := t.session.pool.Unpin(t.mainPage); err != nil {
		return err
	}
	if err := t.session.pool.ForcePage(t.mainPage); err != nil && err != buffer.ErrKeyNotFound {
		return err
	}
	delete(t.session.openTables, t.name)
	t.handle = nil
	return nil
}

func (t *Table) bumpNumTuples(delta int32) error {
	_, td := t.session.findTable(t.name)
	if td == nil {
		return ErrTableNotFound
	}
	td.SetNumTuples(td.NumTuples() + delta)
	return t.session.markCatalogDirty()
}
