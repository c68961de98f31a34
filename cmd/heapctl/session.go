package main

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/kheap/heap"
	"github.com/joshuapare/kheap/heap/arena"
)

// opResult records the outcome of one script operation.
type opResult struct {
	Line   int    `json:"line"`
	Op     string `json:"op"`
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Offset int    `json:"offset"`
	Moved  bool   `json:"moved,omitempty"`
	Error  string `json:"error,omitempty"`
}

// session replays script operations against one allocator, tracking live
// blocks by name.
type session struct {
	h    *heap.Allocator
	ptrs map[string]unsafe.Pointer
}

func newSession(h *heap.Allocator) *session {
	return &session{h: h, ptrs: make(map[string]unsafe.Pointer)}
}

// exec applies o. Allocator refusals are reported in the result; misuse of
// block names is returned as an error.
func (s *session) exec(o op) (opResult, error) {
	res := opResult{Line: o.line, Op: o.String(), Name: o.name, Offset: -1}

	if o.kind == opAlloc {
		if _, ok := s.ptrs[o.name]; ok {
			return res, fmt.Errorf("line %d: block %q already allocated", o.line, o.name)
		}
	} else if _, ok := s.ptrs[o.name]; !ok {
		return res, fmt.Errorf("line %d: unknown block %q", o.line, o.name)
	}

	switch o.kind {
	case opAlloc:
		var p unsafe.Pointer
		if o.zero {
			p = s.h.AllocZeroed(o.size, o.align)
		} else {
			p = s.h.Alloc(o.size, o.align)
		}
		if p == nil {
			return s.failed(res), nil
		}
		s.ptrs[o.name] = p
		res.OK, res.Offset = true, s.offset(p)

	case opFree:
		p := s.ptrs[o.name]
		res.OK, res.Offset = true, s.offset(p)
		s.h.Free(p)
		delete(s.ptrs, o.name)

	case opResize:
		p := s.ptrs[o.name]
		np := s.h.Resize(p, o.size, o.align)
		if np == nil {
			res.Offset = s.offset(p)
			return s.failed(res), nil
		}
		s.ptrs[o.name] = np
		res.OK, res.Offset, res.Moved = true, s.offset(np), np != p

	case opFill:
		p := s.ptrs[o.name]
		s.h.Inspect(func(a *arena.Arena) {
			b, _ := a.Bytes(p)
			for i := range b {
				b[i] = o.fill
			}
		})
		res.OK, res.Offset = true, s.offset(p)
	}
	return res, nil
}

func (s *session) failed(res opResult) opResult {
	if err := s.h.Err(); err != nil {
		res.Error = err.Error()
	}
	return res
}

// offset returns p's payload offset, or -1.
func (s *session) offset(p unsafe.Pointer) int {
	off := -1
	s.h.Inspect(func(a *arena.Arena) {
		if o, ok := a.Payload().Offset(p); ok {
			off = o
		}
	})
	return off
}

// contents copies the bytes of the named block.
func (s *session) contents(name string) ([]byte, int, error) {
	p, ok := s.ptrs[name]
	if !ok {
		return nil, 0, fmt.Errorf("unknown block %q", name)
	}
	var out []byte
	s.h.Inspect(func(a *arena.Arena) {
		b, _ := a.Bytes(p)
		out = append([]byte(nil), b...)
	})
	return out, s.offset(p), nil
}
