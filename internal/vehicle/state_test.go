package vehicle

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"testing"

	"torque-lite-pro/internal/session"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newSession(id, vehicleID, name string) *session.Session {
	return &session.Session{
		ID:      id,
		Profile: session.Profile{ID: vehicleID, Name: name},
		Values:  map[string]any{},
	}
}

func TestState_NotifyStoresLatest(t *testing.T) {
	state, err := NewState(NewRegistry(), testLogger())
	if err != nil {
		t.Fatalf("new state: %v", err)
	}

	first := newSession("s1", "veh-1", "Family Wagon")
	first.Values["speed"] = 42.0
	if err := state.Notify(context.Background(), first); err != nil {
		t.Fatalf("notify: %v", err)
	}

	second := newSession("s2", "veh-1", "Family Wagon")
	second.Values["speed"] = 55.0
	if err := state.Notify(context.Background(), second); err != nil {
		t.Fatalf("notify: %v", err)
	}

	snap, ok := state.Snapshot("veh-1")
	if !ok || snap.ID != "s2" {
		t.Fatalf("snapshot = %+v %v, want latest session", snap, ok)
	}
	if state.Value("veh-1", "speed") != 55.0 {
		t.Fatalf("speed = %v", state.Value("veh-1", "speed"))
	}
}

func TestState_NotifyScrubsNonFinite(t *testing.T) {
	state, _ := NewState(NewRegistry(), testLogger())
	sess := newSession("s1", "veh-1", "Car")
	sess.Values["rpm"] = math.NaN()

	if err := state.Notify(context.Background(), sess); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if got := state.Value("veh-1", "rpm"); got != nil {
		t.Fatalf("rpm = %v, want nil", got)
	}
}

func TestState_NotifyLeavesInputSessionUntouched(t *testing.T) {
	registry := NewRegistry()
	registry.EnsureName("veh-1", "Family Wagon", "")
	state, _ := NewState(registry, testLogger())

	sess := newSession("s1", "veh-1", "vehicle")
	sess.Values["rpm"] = math.NaN()
	if err := state.Notify(context.Background(), sess); err != nil {
		t.Fatalf("notify: %v", err)
	}

	// The caller's session is shared with the cache; name settling and
	// scrubbing must only affect the stored snapshot.
	if sess.Profile.Name != "vehicle" {
		t.Fatalf("input name mutated to %q", sess.Profile.Name)
	}
	if v, ok := sess.Values["rpm"].(float64); !ok || !math.IsNaN(v) {
		t.Fatalf("input value mutated to %v", sess.Values["rpm"])
	}

	snap, ok := state.Snapshot("veh-1")
	if !ok {
		t.Fatal("expected snapshot")
	}
	if snap.Profile.Name != "Family Wagon" {
		t.Fatalf("stored name = %q, want registered name", snap.Profile.Name)
	}
	if snap.Values["rpm"] != nil {
		t.Fatalf("stored rpm = %v, want scrubbed", snap.Values["rpm"])
	}

	sess.Values["speed"] = 42.0
	if _, ok := snap.Values["speed"]; ok {
		t.Fatal("stored snapshot must not share the caller's values map")
	}
}

func TestState_NotifyRejectsAnonymousSession(t *testing.T) {
	state, _ := NewState(NewRegistry(), testLogger())
	if err := state.Notify(context.Background(), newSession("s1", "", "")); err == nil {
		t.Fatal("expected error for session without vehicle identity")
	}
}

func TestState_Forget(t *testing.T) {
	state, _ := NewState(NewRegistry(), testLogger())
	_ = state.Notify(context.Background(), newSession("s1", "veh-1", "Car One"))

	state.Forget("veh-1")
	if _, ok := state.Snapshot("veh-1"); ok {
		t.Fatal("forgotten vehicle must have no snapshot")
	}
}

func TestRegistry_KeepsGoodNameOverPoorUpload(t *testing.T) {
	registry := NewRegistry()
	if got := registry.EnsureName("veh-1", "Family Wagon", "1.2.3"); got != "Family Wagon" {
		t.Fatalf("first name = %q", got)
	}
	if got := registry.EnsureName("veh-1", "vehicle", ""); got != "Family Wagon" {
		t.Fatalf("poor upload replaced good name: %q", got)
	}
	if got := registry.EnsureName("veh-1", "veh-1", ""); got != "Family Wagon" {
		t.Fatalf("id-as-name replaced good name: %q", got)
	}
	if registry.AppVersion("veh-1") != "1.2.3" {
		t.Fatalf("app version = %q", registry.AppVersion("veh-1"))
	}
}

func TestRegistry_SyntheticFallback(t *testing.T) {
	registry := NewRegistry()
	if got := registry.EnsureName("abcdef123456", "", ""); got != "Vehicle abcdef" {
		t.Fatalf("fallback name = %q", got)
	}
}

type failingConsumer struct{}

func (failingConsumer) Notify(context.Context, *session.Session) error {
	return errors.New("boom")
}

func TestMultiConsumer_NotifiesAllAndReturnsFirstError(t *testing.T) {
	state, _ := NewState(NewRegistry(), testLogger())
	consumer := NewMultiConsumer(failingConsumer{}, state)

	sess := newSession("s1", "veh-1", "Car")
	if err := consumer.Notify(context.Background(), sess); err == nil {
		t.Fatal("expected error from failing consumer")
	}
	if _, ok := state.Snapshot("veh-1"); !ok {
		t.Fatal("later consumers must still be notified")
	}
}

func TestManager_ConsumerLifecycle(t *testing.T) {
	manager := NewManager(NewRegistry(), nil, testLogger())

	consumer, err := manager.ConsumerFor("tenant-a")
	if err != nil {
		t.Fatalf("consumer for tenant: %v", err)
	}
	if err := consumer.Notify(context.Background(), newSession("s1", "veh-1", "Car")); err != nil {
		t.Fatalf("notify: %v", err)
	}

	snapshots := manager.Snapshots()
	if _, ok := snapshots["tenant-a"]["veh-1"]; !ok {
		t.Fatalf("snapshots = %+v", snapshots)
	}

	manager.Forget("veh-1")
	if _, ok := manager.Snapshots()["tenant-a"]["veh-1"]; ok {
		t.Fatal("forgotten vehicle must vanish from snapshots")
	}

	manager.Remove("tenant-a")
	if len(manager.Snapshots()) != 0 {
		t.Fatal("removed tenant must vanish")
	}
}
