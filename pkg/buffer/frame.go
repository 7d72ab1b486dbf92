package buffer

import "minibase/pkg/storage"

// frame is an in-memory slot holding at most one page.
type frame struct {
	data      []byte
	pageNum   storage.PageNum
	fixCount  int
	dirty     bool
	occupied  bool
	timestamp uint64
}

func newFrame() *frame {
	return &frame{data: make([]byte, storage.PageSize)}
}

// PageHandle is a short-lived borrow of a frame's bytes, valid until the
// corresponding Unpin. Callers must not retain it past that point.
type PageHandle struct {
	Data    []byte
	PageNum storage.PageNum
}
