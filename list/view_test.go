package list

import (
	"fmt"
	"image"
	"testing"
	"time"

	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
)

// viewHarness drives a View through synthetic frames and records what
// it asks of its hooks.
type viewHarness struct {
	view     *View
	icons    map[string]image.Image
	requests []string
	clicks   []int
}

func newViewHarness(items []Item) *viewHarness {
	h := &viewHarness{icons: make(map[string]image.Image)}
	h.view = NewView(Hooks{
		Present: func(gtx layout.Context, index int, slot *Slot) {},
		Select: func(index int, item Item) {
			h.clicks = append(h.clicks, index)
		},
		Request: func(id string) bool {
			h.requests = append(h.requests, id)
			return true
		},
		Lookup: func(id string) (image.Image, bool) {
			img, ok := h.icons[id]
			return img, ok
		},
	})
	h.view.ItemHeight = unit.Dp(16)
	h.view.SetItems(items)
	return h
}

// frame lays the view out once at the given time, as the window event
// loop would.
func (h *viewHarness) frame(now time.Time, size image.Point) {
	gtx := layout.NewContext(new(op.Ops), system.FrameEvent{
		Now:    now,
		Metric: unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Size:   size,
	})
	h.view.Layout(gtx)
}

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{
			ID:   fmt.Sprintf("stream-%d", i),
			Name: fmt.Sprintf("Channel %d", i),
			Icon: fmt.Sprintf("http://icons.example.com/%d.png", i),
		}
	}
	return items
}

func testIcon() image.Image {
	return image.NewNRGBA(image.Rect(0, 0, 4, 4))
}

func TestViewportRange(t *testing.T) {
	type testcase struct {
		name       string
		vp         Viewport
		buffer     int
		n          int
		start, end int
	}
	for _, tc := range []testcase{
		{
			name:   "interior window widens both sides",
			vp:     Viewport{Top: 100, Bottom: 120},
			buffer: 10,
			n:      10000,
			start:  90,
			end:    131,
		},
		{
			name:   "clips at the top",
			vp:     Viewport{Top: 2, Bottom: 20},
			buffer: 10,
			n:      10000,
			start:  0,
			end:    31,
		},
		{
			name:   "clips at the bottom",
			vp:     Viewport{Top: 9990, Bottom: 9999},
			buffer: 10,
			n:      10000,
			start:  9980,
			end:    10000,
		},
		{
			name:   "zero buffer is the viewport alone",
			vp:     Viewport{Top: 5, Bottom: 7},
			buffer: 0,
			n:      100,
			start:  5,
			end:    8,
		},
		{
			name:   "empty sequence binds nothing",
			vp:     Viewport{},
			buffer: 10,
			n:      0,
			start:  0,
			end:    0,
		},
		{
			name:   "window larger than the sequence",
			vp:     Viewport{Top: 0, Bottom: 50},
			buffer: 10,
			n:      5,
			start:  0,
			end:    5,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			start, end := tc.vp.Range(tc.buffer, tc.n)
			if start != tc.start || end != tc.end {
				t.Errorf("expected [%d,%d), got [%d,%d)", tc.start, tc.end, start, end)
			}
		})
	}
}

func TestViewBindsViewportPlusBuffer(t *testing.T) {
	items := makeItems(10000)
	h := newViewHarness(items)
	size := image.Pt(400, 336) // 21 rows of 16px
	h.view.offset = 1600       // rows 100 through 120 visible
	h.frame(time.Now(), size)

	if vp := h.view.viewport; vp.Top != 100 || vp.Bottom != 120 {
		t.Fatalf("expected viewport [100,120], got [%d,%d]", vp.Top, vp.Bottom)
	}
	if len(h.view.bound) != 41 {
		t.Errorf("expected exactly 41 bound rows, got %d", len(h.view.bound))
	}
	for index := 90; index <= 130; index++ {
		bh, ok := h.view.bound[index]
		if !ok {
			t.Errorf("expected index %d bound", index)
			continue
		}
		s, ok := h.view.pool.Resolve(bh)
		if !ok {
			t.Errorf("expected a live slot for index %d", index)
			continue
		}
		if s.Item.ID != items[index].ID {
			t.Errorf("expected slot for index %d to hold %s, got %s", index, items[index].ID, s.Item.ID)
		}
	}
	for _, index := range []int{89, 131} {
		if _, ok := h.view.bound[index]; ok {
			t.Errorf("expected index %d outside the render range to stay unbound", index)
		}
	}
}

func TestViewStaleIconDeliveryIsNoOp(t *testing.T) {
	items := makeItems(1000)
	h := newViewHarness(items)
	base := time.Now()
	size := image.Pt(400, 336)
	h.frame(base, size)

	handle, ok := h.view.bound[0]
	if !ok {
		t.Fatal("expected index 0 bound after the first frame")
	}
	// The closure an async completion would hand to the update queue,
	// arriving only after its row has scrolled away.
	icon := items[0].Icon
	deliver := func() { h.view.BindIcon(icon, testIcon()) }

	h.view.offset = 8000
	h.frame(base.Add(100*time.Millisecond), size)
	if _, ok := h.view.bound[0]; ok {
		t.Fatal("expected index 0 released after scrolling away")
	}

	deliver()

	if _, ok := h.view.pool.Resolve(handle); ok {
		t.Errorf("expected the handle for index 0 to be stale after release")
	}
	for index, bh := range h.view.bound {
		s, ok := h.view.pool.Resolve(bh)
		if !ok {
			t.Fatalf("expected every bound handle to resolve, index %d did not", index)
		}
		if s.Icon.Ready() {
			t.Errorf("expected no live slot to receive the stale icon, index %d did", index)
		}
	}
}

func TestViewSchedulesNoFetchesWhileScrolling(t *testing.T) {
	items := makeItems(1000)
	h := newViewHarness(items)
	base := time.Now()
	size := image.Pt(400, 336)

	h.frame(base, size)
	h.requests = nil

	// A fling: scroll deltas across consecutive frames, passing
	// hundreds of rows on the way to row 500.
	now := base
	for i := 0; i < 5; i++ {
		now = now.Add(20 * time.Millisecond)
		h.view.scrollBy(1600, now)
		h.frame(now, size)
	}
	if len(h.requests) != 0 {
		t.Fatalf("expected no icon requests during scroll motion, got %d", len(h.requests))
	}

	// The settle frame schedules icons for the final neighborhood
	// only; rows passed in transit never reach the loader.
	now = now.Add(h.view.Quiet + 10*time.Millisecond)
	h.frame(now, size)
	if len(h.requests) == 0 {
		t.Fatal("expected icon requests once motion settled")
	}
	start, end := h.view.viewport.Range(h.view.Buffer, len(items))
	want := make(map[string]bool, end-start)
	for i := start; i < end; i++ {
		want[items[i].Icon] = true
	}
	for _, id := range h.requests {
		if !want[id] {
			t.Errorf("expected requests only for the settled range [%d,%d), got %s", start, end, id)
		}
	}
	if len(h.requests) != len(want) {
		t.Errorf("expected %d requests, one per settled row, got %d", len(want), len(h.requests))
	}
}

func TestViewThrottlesReconciliation(t *testing.T) {
	items := makeItems(1000)
	h := newViewHarness(items)
	base := time.Now()
	size := image.Pt(400, 336)
	h.frame(base, size)
	if _, ok := h.view.bound[0]; !ok {
		t.Fatal("expected index 0 bound after the first frame")
	}

	h.view.offset = 3200 // row 200
	h.frame(base.Add(5*time.Millisecond), size)
	if _, ok := h.view.bound[0]; !ok {
		t.Errorf("expected bindings unchanged inside the reconcile interval")
	}
	if _, ok := h.view.bound[200]; ok {
		t.Errorf("expected no new bindings inside the reconcile interval")
	}

	h.frame(base.Add(25*time.Millisecond), size)
	if _, ok := h.view.bound[0]; ok {
		t.Errorf("expected stale bindings released once the interval passed")
	}
	if _, ok := h.view.bound[200]; !ok {
		t.Errorf("expected the new viewport bound once the interval passed")
	}
}

func TestViewRequestsEachBindingOnce(t *testing.T) {
	items := makeItems(30)
	h := newViewHarness(items)
	base := time.Now()
	size := image.Pt(400, 336)
	h.frame(base, size)
	n := len(h.requests)
	if n == 0 {
		t.Fatal("expected the first frame to request icons")
	}
	h.frame(base.Add(50*time.Millisecond), size)
	h.frame(base.Add(100*time.Millisecond), size)
	if len(h.requests) != n {
		t.Errorf("expected no repeat requests for stable bindings, got %d extra", len(h.requests)-n)
	}
}

func TestViewBindsCachedIconsWithoutFetch(t *testing.T) {
	items := makeItems(3)
	h := newViewHarness(items)
	h.icons[items[1].Icon] = testIcon()
	h.frame(time.Now(), image.Pt(400, 336))

	s, ok := h.view.pool.Resolve(h.view.bound[1])
	if !ok {
		t.Fatal("expected index 1 bound")
	}
	if !s.Icon.Ready() {
		t.Errorf("expected the cached icon bound synchronously")
	}
	for _, id := range h.requests {
		if id == items[1].Icon {
			t.Errorf("expected no fetch for a cached icon")
		}
	}
	if len(h.requests) != 2 {
		t.Errorf("expected 2 requests for the uncached rows, got %d", len(h.requests))
	}
}

func TestViewBindIconReachesEveryMatchingRow(t *testing.T) {
	items := makeItems(3)
	items[0].Icon = "shared"
	items[2].Icon = "shared"
	h := newViewHarness(items)
	h.frame(time.Now(), image.Pt(400, 336))

	h.view.BindIcon("shared", testIcon())

	for index, want := range map[int]bool{0: true, 1: false, 2: true} {
		s, ok := h.view.pool.Resolve(h.view.bound[index])
		if !ok {
			t.Fatalf("expected index %d bound", index)
		}
		if s.Icon.Ready() != want {
			t.Errorf("expected index %d icon ready=%t, got %t", index, want, s.Icon.Ready())
		}
	}
}

func TestViewSetItemsResetsRenderState(t *testing.T) {
	items := makeItems(1000)
	h := newViewHarness(items)
	base := time.Now()
	size := image.Pt(400, 336)
	h.frame(base, size)
	h.view.scrollBy(800, base)
	h.frame(base.Add(20*time.Millisecond), size)
	h.view.SetSelected(60)

	h.view.SetItems(makeItems(5))
	if h.view.offset != 0 {
		t.Errorf("expected scroll reset, got offset %d", h.view.offset)
	}
	if _, _, ok := h.view.Selected(); ok {
		t.Errorf("expected selection cleared")
	}
	if len(h.view.bound) != 0 {
		t.Errorf("expected no bindings right after SetItems, got %d", len(h.view.bound))
	}
	if h.view.pool.Idle() != h.view.pool.Size() {
		t.Errorf("expected every slot idle after SetItems")
	}

	h.frame(base.Add(40*time.Millisecond), size)
	if len(h.view.bound) != 5 {
		t.Errorf("expected 5 bound rows for the new sequence, got %d", len(h.view.bound))
	}
}

func TestViewIndexAt(t *testing.T) {
	items := makeItems(100)
	h := newViewHarness(items)
	h.frame(time.Now(), image.Pt(400, 336))

	type testcase struct {
		name   string
		offset int
		y      float32
		want   int
	}
	for _, tc := range []testcase{
		{name: "top of the list", offset: 0, y: 0, want: 0},
		{name: "row boundary belongs to the lower row", offset: 0, y: 16, want: 1},
		{name: "offset shifts the mapping", offset: 32, y: 8, want: 2},
		{name: "above the view", offset: 32, y: -1, want: -1},
		{name: "past the last row", offset: 1264, y: 400, want: -1},
		{name: "last row", offset: 1264, y: 335, want: 99},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h.view.offset = tc.offset
			if got := h.view.indexAt(tc.y); got != tc.want {
				t.Errorf("expected index %d, got %d", tc.want, got)
			}
		})
	}
}

func TestViewSetSelectedScrollsIntoView(t *testing.T) {
	items := makeItems(100)
	h := newViewHarness(items)
	h.frame(time.Now(), image.Pt(400, 336))

	h.view.SetSelected(50)
	if want := 50*16 + 16 - 336; h.view.offset != want {
		t.Errorf("expected offset %d to reveal row 50, got %d", want, h.view.offset)
	}
	if !h.view.IsSelected(50) {
		t.Errorf("expected row 50 selected")
	}

	h.view.SetSelected(0)
	if h.view.offset != 0 {
		t.Errorf("expected offset 0 to reveal row 0, got %d", h.view.offset)
	}
}
