package buffer

import "minibase/pkg/storage"

// FrameContents returns, for each frame index, the page number currently
// resident there, or storage.NoPage if the frame is unoccupied.
func (p *Pool) FrameContents() []storage.PageNum {
	out := make([]storage.PageNum, len(p.frames))
	for i, f := range p.frames {
		if f.occupied {
			out[i] = f.pageNum
		} else {
			out[i] = storage.NoPage
		}
	}
	return out
}

// DirtyFlags returns, for each frame index, whether it holds unflushed
// writes.
func (p *Pool) DirtyFlags() []bool {
	out := make([]bool, len(p.frames))
	for i, f := range p.frames {
		out[i] = f.occupied && f.dirty
	}
	return out
}

// FixCounts returns, for each frame index, its current pin count.
func (p *Pool) FixCounts() []int {
	out := make([]int, len(p.frames))
	for i, f := range p.frames {
		if f.occupied {
			out[i] = f.fixCount
		}
	}
	return out
}

// NumReadIO returns the number of pages read from disk over the pool's
// lifetime.
func (p *Pool) NumReadIO() int { return p.numRead }

// NumWriteIO returns the number of pages written to disk over the pool's
// lifetime.
func (p *Pool) NumWriteIO() int { return p.numWrite }

// NumFrames returns the number of frames the pool was configured with.
func (p *Pool) NumFrames() int { return len(p.frames) }
