package document

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 1, Width: 3, Height: 2}
	cases := []struct {
		x, y int
		want bool
	}{
		{2, 1, true},
		{4, 2, true},
		{5, 1, false},
		{2, 3, false},
		{1, 1, false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Fatalf("Contains(%d,%d) = %v, expected %v", tc.x, tc.y, got, tc.want)
		}
	}
	if !(Rect{Width: 0, Height: 3}).Empty() {
		t.Fatalf("expected zero width rect to be empty")
	}
}

func TestDispatchClickReportsInsideAndOutside(t *testing.T) {
	d := New()
	var gotA, gotB []bool
	d.Subscribe(Listener{
		Bounds: func() []Rect { return []Rect{{X: 0, Y: 0, Width: 10, Height: 1}} },
		Click:  func(_ Click, inside bool) { gotA = append(gotA, inside) },
	})
	d.Subscribe(Listener{
		Bounds: func() []Rect { return []Rect{{X: 0, Y: 2, Width: 10, Height: 1}, {X: 0, Y: 5, Width: 10, Height: 2}} },
		Click:  func(_ Click, inside bool) { gotB = append(gotB, inside) },
	})

	if outside := d.DispatchClick(Click{X: 3, Y: 0}); outside != 1 {
		t.Fatalf("expected one listener outside, got %d", outside)
	}
	if len(gotA) != 1 || !gotA[0] || len(gotB) != 1 || gotB[0] {
		t.Fatalf("unexpected inside flags a=%v b=%v", gotA, gotB)
	}
	if outside := d.DispatchClick(Click{X: 1, Y: 6}); outside != 1 || !gotB[1] {
		t.Fatalf("expected click in second region of b to count as inside, got outside=%d b=%v", outside, gotB)
	}
}

func TestUnsubscribeIsIdempotentAndScoped(t *testing.T) {
	d := New()
	calls := 0
	idA, unsubA := d.Subscribe(Listener{Click: func(Click, bool) { calls++ }})
	idB, _ := d.Subscribe(Listener{Click: func(Click, bool) { calls++ }})
	if idA == idB {
		t.Fatalf("expected distinct scope ids")
	}
	unsubA()
	unsubA()
	if d.Active(idA) || !d.Active(idB) || d.Len() != 1 {
		t.Fatalf("expected only scope b to remain")
	}
	d.DispatchClick(Click{})
	if calls != 1 {
		t.Fatalf("expected one delivery, got %d", calls)
	}
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	d := New()
	var unsub func()
	calls := 0
	_, unsub = d.Subscribe(Listener{Click: func(Click, bool) {
		calls++
		unsub()
	}})
	d.DispatchClick(Click{})
	d.DispatchClick(Click{})
	if calls != 1 {
		t.Fatalf("expected listener removed after first click, got %d calls", calls)
	}
}

func TestDispatchKeyStopsAtFirstConsumer(t *testing.T) {
	d := New()
	var order []string
	d.Subscribe(Listener{Key: func(k string) bool { order = append(order, "a"); return k == "esc" }})
	d.Subscribe(Listener{Key: func(string) bool { order = append(order, "b"); return true }})
	if !d.DispatchKey("esc") {
		t.Fatalf("expected esc consumed")
	}
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("expected propagation stopped after a, got %v", order)
	}
}
