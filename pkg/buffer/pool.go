// Package buffer implements a fixed-size buffer pool: N frames caching
// pages from a single page file, with pinning, dirty tracking, and
// FIFO/LRU eviction. It is the only component that talks to pkg/storage
// directly on behalf of the record manager.
package buffer

import (
	"errors"

	"minibase/pkg/pagetable"
	"minibase/pkg/storage"
)

// Errors returned by the buffer pool. ErrKeyNotFound corresponds to the
// spec's IM_KEY_NOT_FOUND; ErrWriteFailed corresponds to WRITE_FAILED.
var (
	ErrKeyNotFound = errors.New("buffer: page not cached")
	ErrWriteFailed = errors.New("buffer: write failed")
)

// Pool owns a fixed set of frames over a single open page file.
type Pool struct {
	frames     []*frame
	table      *pagetable.Table
	file       *storage.FileHandle
	strategy   Strategy
	clock      uint64
	fifoCursor int
	numRead    int
	numWrite   int
}

// NewPool opens fileName and allocates numFrames zeroed frames, all
// unoccupied and unpinned, governed by strategy.
func NewPool(fileName string, numFrames int, strategy Strategy) (*Pool, error) {
	file, err := storage.OpenPageFile(fileName)
	if err != nil {
		return nil, err
	}

	p := &Pool{
		frames:     make([]*frame, numFrames),
		table:      pagetable.New(pagetable.DefaultCapacity),
		file:       file,
		strategy:   strategy,
		fifoCursor: numFrames - 1,
	}
	for i := range p.frames {
		f := newFrame()
		f.timestamp = p.tick()
		p.frames[i] = f
	}
	return p, nil
}

func (p *Pool) tick() uint64 {
	ts := p.clock
	p.clock++
	return ts
}

// Pin loads pageNum into a frame (if not already cached), increments its
// fix count, and returns a handle to its bytes.
func (p *Pool) Pin(pageNum storage.PageNum) (*PageHandle, error) {
	if pageNum < 0 {
		return nil, ErrKeyNotFound
	}

	if idx, ok := p.table.Get(pageNum); ok {
		f := p.frames[idx]
		f.timestamp = p.tick()
		f.fixCount++
		return &PageHandle{Data: f.data, PageNum: pageNum}, nil
	}

	idx, ok := p.victim()
	if !ok {
		return nil, ErrWriteFailed
	}
	f := p.frames[idx]
	if err := p.evict(f); err != nil {
		return nil, err
	}

	if err := p.file.EnsureCapacity(pageNum + 1); err != nil {
		return nil, err
	}
	if err := p.file.ReadBlock(pageNum, f.data); err != nil {
		return nil, err
	}
	p.numRead++

	f.pageNum = pageNum
	f.fixCount = 1
	f.dirty = false
	f.occupied = true
	f.timestamp = p.tick()
	p.table.Set(pageNum, idx)

	return &PageHandle{Data: f.data, PageNum: pageNum}, nil
}

// evict clears f's occupancy, writing it back first if it is dirty.
func (p *Pool) evict(f *frame) error {
	f.timestamp = p.tick()
	if f.occupied {
		p.table.Remove(f.pageNum)
		if f.dirty {
			if err := p.file.WriteBlock(f.pageNum, f.data); err != nil {
				return err
			}
			p.numWrite++
		}
	}
	f.occupied = false
	f.dirty = false
	f.fixCount = 0
	return nil
}

// Unpin decrements the fix count of the frame holding pageNum, clamped
// at 0. It fails if pageNum is not cached.
func (p *Pool) Unpin(pageNum storage.PageNum) error {
	idx, ok := p.table.Get(pageNum)
	if !ok {
		return ErrKeyNotFound
	}
	f := p.frames[idx]
	f.timestamp = p.tick()
	if f.fixCount > 0 {
		f.fixCount--
	}
	return nil
}

// MarkDirty flags the frame holding pageNum as modified. It fails if
// pageNum is not cached.
func (p *Pool) MarkDirty(pageNum storage.PageNum) error {
	idx, ok := p.table.Get(pageNum)
	if !ok {
		return ErrKeyNotFound
	}
	f := p.frames[idx]
	f.timestamp = p.tick()
	f.dirty = true
	return nil
}

// ForcePage writes the frame holding pageNum back to disk and clears its
// dirty flag, but only if it is currently unpinned.
func (p *Pool) ForcePage(pageNum storage.PageNum) error {
	idx, ok := p.table.Get(pageNum)
	if !ok {
		return ErrKeyNotFound
	}
	f := p.frames[idx]
	f.timestamp = p.tick()
	if f.fixCount != 0 {
		return ErrWriteFailed
	}
	if err := p.file.WriteBlock(pageNum, f.data); err != nil {
		return err
	}
	p.numWrite++
	f.dirty = false
	return nil
}

// ForceFlush writes back every occupied, dirty, unpinned frame. Pinned
// dirty frames are left untouched.
func (p *Pool) ForceFlush() error {
	for _, f := range p.frames {
		if f.occupied && f.dirty && f.fixCount == 0 {
			if err := p.file.WriteBlock(f.pageNum, f.data); err != nil {
				return err
			}
			p.numWrite++
			f.timestamp = p.tick()
			f.dirty = false
		}
	}
	return nil
}

// Shutdown fails if any frame is still pinned; otherwise it force-flushes
// the pool and closes the underlying file.
func (p *Pool) Shutdown() error {
	for _, f := range p.frames {
		if f.fixCount > 0 {
			return ErrWriteFailed
		}
	}
	if err := p.ForceFlush(); err != nil {
		return err
	}
	return p.file.Close()
}
