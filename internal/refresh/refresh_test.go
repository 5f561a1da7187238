package refresh

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vidyasagar/deskup/internal/logging"
)

func TestSlotTransitions(t *testing.T) {
	s := NewSlot[int]()
	if got := s.Load(); got.Phase != Unset || got.Status() != StatusLoading {
		t.Fatalf("new slot = %+v", got)
	}

	if s.Resolve(1, nil) {
		t.Error("Resolve on Unset should fail")
	}
	if !s.Claim() {
		t.Fatal("Claim on Unset should succeed")
	}
	if s.Claim() {
		t.Error("second Claim should fail")
	}
	if s.Disable() {
		t.Error("Disable on Pending should fail")
	}
	if got := s.Load(); got.Phase != Pending || got.Status() != StatusLoading {
		t.Errorf("claimed slot = %+v", got)
	}

	if !s.Resolve(42, nil) {
		t.Fatal("Resolve on Pending should succeed")
	}
	if s.Resolve(7, nil) {
		t.Error("second Resolve should fail")
	}
	if got := s.Load(); got.Phase != Ready || got.Value != 42 {
		t.Errorf("resolved slot = %+v", got)
	}
	if s.Retry() {
		t.Error("Retry on Ready should fail")
	}
	if !s.Reset() {
		t.Error("Reset on Ready should succeed")
	}
	if got := s.Load().Phase; got != Unset {
		t.Errorf("after Reset phase = %v", got)
	}
}

func TestSlotFailedAndRetry(t *testing.T) {
	var s Slot[string]
	boom := errors.New("boom")

	s.Claim()
	s.Resolve("ignored", boom)

	got := s.Load()
	if got.Phase != Failed || got.Status() != StatusFailed || !errors.Is(got.Err, boom) {
		t.Fatalf("failed slot = %+v", got)
	}
	if got.Value != "" {
		t.Errorf("failed slot kept value %q", got.Value)
	}
	if !got.Settled() {
		t.Error("Failed should be settled")
	}
	if !s.Retry() {
		t.Fatal("Retry on Failed should succeed")
	}
	if s.Load().Phase != Unset {
		t.Errorf("after Retry phase = %v", s.Load().Phase)
	}
}

func TestSlotDisable(t *testing.T) {
	var s Slot[int]
	if !s.Disable() {
		t.Fatal("Disable on Unset should succeed")
	}
	if s.Claim() {
		t.Error("Claim on NotConfigured should fail")
	}
	if s.Load().Status() != StatusNotConfigured {
		t.Errorf("status = %v", s.Load().Status())
	}
}

func TestMaybeRefreshDispatchesOnce(t *testing.T) {
	rt := NewRuntime(context.Background())
	defer rt.Close()

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "sunny", nil
	}

	slot := NewSlot[string]()
	dispatched := 0
	for i := 0; i < 100; i++ {
		if MaybeRefresh(rt, "weather", slot, fetch) {
			dispatched++
		}
	}
	if dispatched != 1 {
		t.Errorf("dispatched %d times, want 1", dispatched)
	}
	if slot.Load().Status() != StatusLoading {
		t.Errorf("status while in flight = %v", slot.Load().Status())
	}

	close(release)
	if err := rt.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("fetch called %d times", calls.Load())
	}
	if got := slot.Load(); got.Phase != Ready || got.Value != "sunny" {
		t.Errorf("slot = %+v", got)
	}

	if MaybeRefresh(rt, "weather", slot, fetch) {
		t.Error("Ready slot should not be fetched again")
	}
}

func TestRefusedDispatchReleasesClaim(t *testing.T) {
	rt := NewRuntime(context.Background(), WithLimit(1))
	defer rt.Close()

	block := make(chan struct{})
	first := NewSlot[int]()
	MaybeRefresh(rt, "first", first, func(ctx context.Context) (int, error) {
		<-block
		return 1, nil
	})

	second := NewSlot[int]()
	if MaybeRefresh(rt, "second", second, func(ctx context.Context) (int, error) { return 2, nil }) {
		t.Fatal("dispatch beyond the limit should be refused")
	}
	if second.Load().Phase != Unset {
		t.Fatalf("refused slot phase = %v, want unset", second.Load().Phase)
	}

	close(block)
	if err := rt.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !MaybeRefresh(rt, "second", second, func(ctx context.Context) (int, error) { return 2, nil }) {
		t.Fatal("dispatch after capacity frees should succeed")
	}
	rt.Wait(context.Background())
	if got := second.Load(); got.Value != 2 {
		t.Errorf("second = %+v", got)
	}
}

func TestTimeoutIsFailure(t *testing.T) {
	rt := NewRuntime(context.Background(), WithTimeout(20*time.Millisecond))
	defer rt.Close()
	if rt.Timeout() != 20*time.Millisecond {
		t.Errorf("Timeout = %v", rt.Timeout())
	}

	slot := NewSlot[int]()
	MaybeRefresh(rt, "slow", slot, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	rt.Wait(context.Background())

	got := slot.Load()
	if got.Phase != Failed || !errors.Is(got.Err, context.DeadlineExceeded) {
		t.Errorf("slot = %+v, want failed with deadline", got)
	}
}

func TestClosedRuntimeRefuses(t *testing.T) {
	rt := NewRuntime(context.Background())
	rt.Close()
	rt.Close()

	slot := NewSlot[int]()
	if MaybeRefresh(rt, "late", slot, func(ctx context.Context) (int, error) { return 1, nil }) {
		t.Error("closed runtime should refuse")
	}
	if slot.Load().Phase != Unset {
		t.Errorf("phase = %v", slot.Load().Phase)
	}
	if err := rt.Wait(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Wait = %v, want ErrClosed", err)
	}
}

func TestCloseRacesDispatch(t *testing.T) {
	for i := 0; i < 50; i++ {
		rt := NewRuntime(context.Background())

		var wg sync.WaitGroup
		var ran atomic.Int32
		for j := 0; j < 8; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rt.Go("race", func(ctx context.Context) { ran.Add(1) })
			}()
		}
		rt.Close()
		wg.Wait()

		if rt.Go("late", func(ctx context.Context) { t.Error("job ran after Close") }) {
			t.Fatal("Go after Close should refuse")
		}
		if ran.Load() > 8 {
			t.Fatalf("ran %d jobs", ran.Load())
		}
	}
}

func TestRuntimeLogsWithPrefix(t *testing.T) {
	saved := logging.Logger
	defer func() { logging.Logger = saved }()

	var buf bytes.Buffer
	logging.SetOutput(&buf, "debug")

	rt := NewRuntime(context.Background())
	rt.Go("joke", func(ctx context.Context) {})
	rt.Wait(context.Background())
	rt.Close()

	out := buf.String()
	if !strings.Contains(out, "refresh") || !strings.Contains(out, "job=joke") {
		t.Errorf("log = %q", out)
	}
}

func TestOnDoneHook(t *testing.T) {
	rt := NewRuntime(context.Background())
	defer rt.Close()

	done := make(chan string, 1)
	rt.OnDone(func(name string) { done <- name })

	MaybeRefresh(rt, "joke", NewSlot[string](), func(ctx context.Context) (string, error) {
		return "ha", nil
	})
	select {
	case name := <-done:
		if name != "joke" {
			t.Errorf("hook got %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hook not called")
	}
}

func TestOrchestrator(t *testing.T) {
	rt := NewRuntime(context.Background())
	o := New(rt)
	defer o.Close()

	var jokeCalls, holidayCalls atomic.Int32
	joke := NewSlot[string]()
	holidays := NewSlot[[]string]()
	tasks := NewSlot[[]string]()

	failHolidays := true
	Register(o, "joke", joke, func(ctx context.Context) (string, error) {
		jokeCalls.Add(1)
		return "setup - punchline", nil
	})
	Register(o, "holidays", holidays, func(ctx context.Context) ([]string, error) {
		holidayCalls.Add(1)
		if failHolidays {
			return nil, errors.New("connection refused")
		}
		return []string{"New Year"}, nil
	})
	Register(o, "tasks", tasks, func(ctx context.Context) ([]string, error) {
		t.Error("unconfigured job fetched")
		return nil, nil
	}, WhenConfigured(func() bool { return false }))

	if err := o.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !o.Settled() || o.InFlight() != 0 {
		t.Error("orchestrator should be settled")
	}
	if got := holidays.Load(); got.Status() != StatusFailed || got.Err == nil {
		t.Errorf("holidays = %+v", got)
	}
	if tasks.Load().Status() != StatusNotConfigured {
		t.Errorf("tasks = %+v", tasks.Load())
	}

	// Settled jobs are not fetched again.
	if n := o.Refresh(); n != 0 {
		t.Errorf("Refresh dispatched %d", n)
	}

	failHolidays = false
	if n := o.Retry(); n != 1 {
		t.Errorf("Retry reset %d, want 1", n)
	}
	if err := o.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := holidays.Load(); got.Phase != Ready || len(got.Value) != 1 {
		t.Errorf("holidays after retry = %+v", got)
	}

	if !o.Reload("joke") {
		t.Error("Reload of a ready job should succeed")
	}
	if o.Reload("missing") {
		t.Error("Reload of an unknown job should fail")
	}
	o.Wait(context.Background())
	if jokeCalls.Load() != 2 || holidayCalls.Load() != 2 {
		t.Errorf("calls joke=%d holidays=%d", jokeCalls.Load(), holidayCalls.Load())
	}
}

func TestReloadWhilePending(t *testing.T) {
	rt := NewRuntime(context.Background())
	o := New(rt)
	defer o.Close()

	var calls atomic.Int32
	release := make(chan struct{})
	tasks := NewSlot[int]()
	Register(o, "tasks", tasks, func(ctx context.Context) (int, error) {
		n := calls.Add(1)
		if n == 1 {
			<-release
		}
		return int(n), nil
	})

	if n := o.Refresh(); n != 1 {
		t.Fatalf("Refresh dispatched %d", n)
	}
	if !o.Reload("tasks") {
		t.Fatal("Reload of a pending job should be accepted")
	}
	if o.Settled() {
		t.Error("a job with a reload outstanding is not settled")
	}
	close(release)

	if err := o.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("fetched %d times, want 2", calls.Load())
	}
	if got := tasks.Load(); got.Phase != Ready || got.Value != 2 {
		t.Errorf("tasks = %+v", got)
	}
	if n := o.Refresh(); n != 0 {
		t.Errorf("Refresh after reload dispatched %d", n)
	}
}
