// Package list provides a virtualized vertical list that renders
// thousands of fixed-height items using render resources proportional
// to the visible window, not the sequence length.
//
// A View owns the logical item sequence and a Pool of render slots.
// Every frame it derives the viewport from the scroll offset, binds
// slots for the rows inside the viewport plus a buffer, and releases
// the rest. Icon loading is cooperative: the view asks its hooks to
// schedule fetches for quiet rows and receives decoded images back
// through BindIcon, typically relayed by an update queue so that all
// mutation happens on the UI goroutine.
package list

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
)

const (
	// DefaultBuffer is how many rows beyond each viewport edge stay
	// bound so small scrolls reveal already-built rows.
	DefaultBuffer = 10
	// DefaultQuiet is how long scrolling must pause before the view
	// resumes scheduling icon fetches.
	DefaultQuiet = 150 * time.Millisecond
	// minReconcileInterval caps how often bindings are recomputed.
	// Drawing still happens every frame; only the bind/unbind work is
	// throttled, holding reconciliation near 60Hz under load.
	minReconcileInterval = 16 * time.Millisecond
)

// DefaultItemHeight fits a 40dp icon with a little padding.
var DefaultItemHeight = unit.Dp(48)

// Hooks is the set of application-defined behaviors a View requires.
// All fields must be non-nil.
type Hooks struct {
	// Present lays out the content of one row. The view has already
	// positioned and clipped the row; Present only draws into it. It
	// is free to read hover and selection state from the view.
	Present func(gtx layout.Context, index int, slot *Slot)
	// Select is invoked when a row is clicked.
	Select func(index int, item Item)
	// Request schedules an asynchronous icon fetch for a resource id.
	// It reports whether the fetch was accepted; ids already cached,
	// failed, or in flight are refused.
	Request func(id string) bool
	// Lookup returns the cached icon for a resource id, if present.
	// Cache hits bind synchronously and never touch the network.
	Lookup func(id string) (image.Image, bool)
}

// View is a virtualized list. It must only be used from the UI
// goroutine; background completions reach it through closures that
// call BindIcon.
type View struct {
	// ItemHeight is the fixed height of every row.
	ItemHeight unit.Value
	// Buffer is how many extra rows stay bound on each side of the
	// viewport. While scrolling it is doubled so the settled frame
	// has rows ready in both directions.
	Buffer int
	// Quiet is the pause that must follow the last scroll movement
	// before icon scheduling resumes.
	Quiet time.Duration
	// IndicatorColor tints the scroll position indicator.
	IndicatorColor color.NRGBA

	hooks Hooks
	pool  *Pool

	items []Item
	bound map[int]Handle

	offset   int
	viewport Viewport
	rowPx    int
	viewPx   int

	hovered  int
	selected int

	lastScroll    time.Time
	lastReconcile time.Time
}

// NewView validates the hooks and constructs an empty view. Missing
// hooks panic immediately rather than failing at first use.
func NewView(hooks Hooks) *View {
	switch {
	case hooks.Present == nil:
		panic(fmt.Errorf("must provide an implementation of Present"))
	case hooks.Select == nil:
		panic(fmt.Errorf("must provide an implementation of Select"))
	case hooks.Request == nil:
		panic(fmt.Errorf("must provide an implementation of Request"))
	case hooks.Lookup == nil:
		panic(fmt.Errorf("must provide an implementation of Lookup"))
	}
	return &View{
		ItemHeight:     DefaultItemHeight,
		Buffer:         DefaultBuffer,
		Quiet:          DefaultQuiet,
		IndicatorColor: color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x90},
		hooks:          hooks,
		pool:           NewPool(0),
		bound:          make(map[int]Handle),
		hovered:        -1,
		selected:       -1,
	}
}

// SetItems replaces the sequence wholesale. Every binding is released,
// the scroll position returns to the top, and hover and selection
// reset. Icon caches live outside the view and are untouched, so items
// shared between sequences keep their icons.
func (v *View) SetItems(items []Item) {
	v.pool.ClearAll()
	v.bound = make(map[int]Handle)
	v.items = append([]Item(nil), items...)
	v.offset = 0
	v.viewport = Viewport{}
	v.hovered = -1
	v.selected = -1
	v.lastReconcile = time.Time{}
	v.lastScroll = time.Time{}
}

// Len returns the length of the logical sequence.
func (v *View) Len() int {
	return len(v.items)
}

// Selected returns the selected index and item, if any.
func (v *View) Selected() (int, Item, bool) {
	if v.selected < 0 || v.selected >= len(v.items) {
		return -1, Item{}, false
	}
	return v.selected, v.items[v.selected], true
}

// SetSelected moves the selection and scrolls it into view. It does
// not invoke the Select hook; programmatic selection is the caller's
// own action.
func (v *View) SetSelected(index int) {
	if index < 0 || index >= len(v.items) {
		return
	}
	v.selected = index
	if v.rowPx <= 0 || v.viewPx <= 0 {
		return
	}
	top := index * v.rowPx
	if top < v.offset {
		v.offset = top
	}
	if bottom := top + v.rowPx; bottom > v.offset+v.viewPx {
		v.offset = bottom - v.viewPx
	}
}

// IsSelected reports whether index is the selected row.
func (v *View) IsSelected(index int) bool {
	return index == v.selected
}

// IsHovered reports whether the pointer is over index.
func (v *View) IsHovered(index int) bool {
	return index == v.hovered
}

// BindIcon attaches a decoded image to every slot currently showing
// the resource id. Deliveries for rows that have scrolled away or
// been recycled find no matching live binding and do nothing; under
// scrolling that is the normal outcome, not an error.
func (v *View) BindIcon(id string, img image.Image) {
	if id == "" || img == nil {
		return
	}
	for _, h := range v.bound {
		s, ok := v.pool.Resolve(h)
		if !ok {
			continue
		}
		if s.Item.Icon != id {
			continue
		}
		s.Icon.Set(img)
	}
}

// Layout processes input, reconciles bindings against the viewport,
// and draws the bound rows. Must be called from the UI goroutine.
func (v *View) Layout(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	v.rowPx = gtx.Px(v.ItemHeight)
	if v.rowPx <= 0 {
		v.rowPx = 1
	}
	v.viewPx = size.Y

	v.handleInput(gtx)
	v.clampOffset()
	v.updateViewport(size.Y)

	scrolling := v.scrolling(gtx.Now)
	if v.shouldReconcile(gtx.Now) {
		v.reconcile(scrolling)
		v.lastReconcile = gtx.Now
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	pointer.InputOp{
		Tag:   v,
		Types: pointer.Press | pointer.Move | pointer.Leave | pointer.Scroll,
		ScrollBounds: image.Rectangle{
			Min: image.Pt(0, -1e6),
			Max: image.Pt(0, 1e6),
		},
	}.Add(gtx.Ops)

	for index, h := range v.bound {
		s, ok := v.pool.Resolve(h)
		if !ok {
			continue
		}
		v.layoutRow(gtx, size, index, s)
	}

	// After motion stops a settle frame must run so the rows the
	// scroll pass skipped get their icons scheduled.
	if scrolling {
		op.InvalidateOp{At: v.lastScroll.Add(v.Quiet)}.Add(gtx.Ops)
	}

	v.layoutIndicator(gtx, size)

	return layout.Dimensions{Size: size}
}

// layoutRow positions, clips, and presents one bound row.
func (v *View) layoutRow(gtx layout.Context, size image.Point, index int, s *Slot) {
	y := index*v.rowPx - v.offset
	if y+v.rowPx < 0 || y > size.Y {
		return
	}
	trans := op.Offset(f32.Pt(0, float32(y))).Push(gtx.Ops)
	cl := clip.Rect{Max: image.Pt(size.X, v.rowPx)}.Push(gtx.Ops)
	rgtx := gtx
	rgtx.Constraints = layout.Exact(image.Pt(size.X, v.rowPx))
	v.hooks.Present(rgtx, index, s)
	cl.Pop()
	trans.Pop()
}

// handleInput consumes this frame's pointer events.
func (v *View) handleInput(gtx layout.Context) {
	for _, e := range gtx.Events(v) {
		ev, ok := e.(pointer.Event)
		if !ok {
			continue
		}
		switch ev.Type {
		case pointer.Scroll:
			v.scrollBy(ev.Scroll.Y, gtx.Now)
		case pointer.Move:
			v.hovered = v.indexAt(ev.Position.Y)
		case pointer.Leave, pointer.Cancel:
			v.hovered = -1
		case pointer.Press:
			index := v.indexAt(ev.Position.Y)
			if index < 0 {
				break
			}
			v.selected = index
			v.hooks.Select(index, v.items[index])
		}
	}
}

// scrollBy moves the content offset and records the motion time that
// drives the quiet period.
func (v *View) scrollBy(dy float32, now time.Time) {
	v.offset += int(dy)
	v.lastScroll = now
}

// indexAt maps a pointer y coordinate in view space to the row index
// under it, or -1 when no row is there.
func (v *View) indexAt(y float32) int {
	if v.rowPx <= 0 || len(v.items) == 0 || y < 0 {
		return -1
	}
	index := (v.offset + int(y)) / v.rowPx
	if index >= len(v.items) {
		return -1
	}
	return index
}

func (v *View) clampOffset() {
	max := len(v.items)*v.rowPx - v.viewPx
	if max < 0 {
		max = 0
	}
	if v.offset > max {
		v.offset = max
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// updateViewport recomputes the visible index range from the offset.
func (v *View) updateViewport(height int) {
	n := len(v.items)
	if n == 0 || height <= 0 {
		v.viewport = Viewport{}
		return
	}
	top := v.offset / v.rowPx
	bottom := (v.offset + height - 1) / v.rowPx
	if bottom >= n {
		bottom = n - 1
	}
	if top > bottom {
		top = bottom
	}
	v.viewport = Viewport{Top: top, Bottom: bottom}
}

// scrolling reports whether scroll motion is younger than the quiet
// period.
func (v *View) scrolling(now time.Time) bool {
	return !v.lastScroll.IsZero() && now.Sub(v.lastScroll) < v.Quiet
}

func (v *View) shouldReconcile(now time.Time) bool {
	return v.lastReconcile.IsZero() || now.Sub(v.lastReconcile) >= minReconcileInterval
}

func (v *View) currentBuffer(scrolling bool) int {
	if scrolling {
		return v.Buffer * 2
	}
	return v.Buffer
}

// reconcile binds and unbinds slots so that exactly the rows inside
// the buffered viewport hold them. While scroll motion is live the
// buffer doubles and icon scheduling is skipped entirely, so rows
// passed during a fling never reach the network; the settle frame
// schedules icons for whatever is still visible.
func (v *View) reconcile(scrolling bool) {
	start, end := v.viewport.Range(v.currentBuffer(scrolling), len(v.items))

	for index, h := range v.bound {
		if index >= start && index < end {
			continue
		}
		v.pool.Release(h)
		delete(v.bound, index)
	}

	for index := start; index < end; index++ {
		h, ok := v.bound[index]
		if !ok {
			s, nh := v.pool.Acquire()
			s.Index = index
			s.Item = v.items[index]
			v.bound[index] = nh
			h = nh
		}
		if scrolling {
			continue
		}
		if s, ok := v.pool.Resolve(h); ok {
			v.ensureIcon(s)
		}
	}
}

// ensureIcon binds a cached icon synchronously, or schedules a fetch
// at most once per binding. Refused requests still mark the binding:
// a refusal means the id is failed, cached, or already in flight, and
// in the in-flight case the completion reaches us through BindIcon.
func (v *View) ensureIcon(s *Slot) {
	if s.Item.Icon == "" || s.Icon.Ready() || s.Requested {
		return
	}
	if img, ok := v.hooks.Lookup(s.Item.Icon); ok {
		s.Icon.Set(img)
		return
	}
	v.hooks.Request(s.Item.Icon)
	s.Requested = true
}

// layoutIndicator draws a passive scroll position indicator along the
// right edge when the content overflows the view.
func (v *View) layoutIndicator(gtx layout.Context, size image.Point) {
	content := len(v.items) * v.rowPx
	if content <= size.Y || content == 0 {
		return
	}
	width := gtx.Px(unit.Dp(4))
	h := size.Y * size.Y / content
	if min := gtx.Px(unit.Dp(16)); h < min {
		h = min
	}
	y := (size.Y - h) * v.offset / (content - size.Y)
	bar := image.Rect(size.X-width*2, y, size.X-width, y+h)
	paint.FillShape(gtx.Ops, v.IndicatorColor,
		clip.UniformRRect(layout.FRect(bar), float32(width)/2).Op(gtx.Ops))
}
