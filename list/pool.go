package list

import (
	"github.com/VodenoFF/IPTV-Player/widget"
)

// minSlotBatch is the smallest number of slots added when the pool
// grows. Larger pools grow by half their current size instead, so the
// number of growth events stays logarithmic in the peak demand.
const minSlotBatch = 8

// Slot is a reusable render element bound to at most one list index at
// a time. It carries the per-row state that must survive across frames
// while an item is rendered. Slots are owned by their pool and reached
// through handles.
type Slot struct {
	// Item is the bound item, valid while Index is not -1.
	Item Item
	// Index is the bound list index, -1 while the slot is idle.
	Index int
	// Icon holds the slot's decoded icon once one is bound.
	Icon widget.Icon
	// Requested records that an icon fetch was issued for the current
	// binding, so reconciliation schedules at most one per binding.
	Requested bool

	gen uint64
}

func (s *Slot) reset() {
	s.Item = Item{}
	s.Index = -1
	s.Requested = false
	s.Icon.Reset()
}

// Handle addresses a slot in its pool's arena. It pairs the arena
// index with the generation observed when the slot was acquired, so
// any holder can detect that the slot has since been recycled: once
// the slot is released, resolving the handle fails and whatever work
// the holder intended becomes a no-op.
type Handle struct {
	index int
	gen   uint64
}

// Pool owns an arena of render slots and hands them out by handle.
// Slots are never freed, only recycled; releasing one bumps its
// generation, invalidating every handle minted for the old binding.
//
// A pool is confined to the UI goroutine. Background work never
// touches slots directly; it carries handles and resolves them on the
// UI goroutine when its completion runs.
type Pool struct {
	slots []*Slot
	idle  []int
}

// NewPool returns a pool with at least initial idle slots ready.
func NewPool(initial int) *Pool {
	if initial < minSlotBatch {
		initial = minSlotBatch
	}
	p := &Pool{}
	p.grow(initial)
	return p
}

// grow appends n fresh idle slots to the arena.
func (p *Pool) grow(n int) {
	for i := 0; i < n; i++ {
		idx := len(p.slots)
		p.slots = append(p.slots, &Slot{Index: -1})
		p.idle = append(p.idle, idx)
	}
}

// Acquire pops an idle slot, growing the arena by a batch when none
// remain. The handle stays valid until the slot is released.
func (p *Pool) Acquire() (*Slot, Handle) {
	if len(p.idle) == 0 {
		batch := len(p.slots) / 2
		if batch < minSlotBatch {
			batch = minSlotBatch
		}
		p.grow(batch)
	}
	idx := p.idle[len(p.idle)-1]
	p.idle = p.idle[:len(p.idle)-1]
	s := p.slots[idx]
	return s, Handle{index: idx, gen: s.gen}
}

// Release detaches the slot's binding and returns it to the idle list.
// The generation bump makes every outstanding handle for the old
// binding stale. Releasing a stale handle is a no-op, so double
// releases are harmless.
func (p *Pool) Release(h Handle) {
	s, ok := p.Resolve(h)
	if !ok {
		return
	}
	s.gen++
	s.reset()
	p.idle = append(p.idle, h.index)
}

// Resolve returns the slot addressed by h if and only if the slot has
// not been recycled since the handle was minted.
func (p *Pool) Resolve(h Handle) (*Slot, bool) {
	if h.index < 0 || h.index >= len(p.slots) {
		return nil, false
	}
	s := p.slots[h.index]
	if s.gen != h.gen {
		return nil, false
	}
	return s, true
}

// ClearAll releases every bound slot at once. Used when the sequence
// is replaced wholesale and no binding can survive.
func (p *Pool) ClearAll() {
	for idx, s := range p.slots {
		if s.Index < 0 {
			continue
		}
		s.gen++
		s.reset()
		p.idle = append(p.idle, idx)
	}
}

// Size returns the arena size, bound and idle slots together.
func (p *Pool) Size() int {
	return len(p.slots)
}

// Idle returns how many slots are ready for acquisition.
func (p *Pool) Idle() int {
	return len(p.idle)
}
