package registry

import "testing"

func TestRegistry_SetGet(t *testing.T) {
	r := NewRegistry()
	r.SetGlobal("k", 42)
	v, ok := r.GetGlobal("k")
	if !ok || v != 42 {
		t.Errorf("GetGlobal = %v, %v; want 42, true", v, ok)
	}
	if _, ok := r.GetGlobal("missing"); ok {
		t.Error("GetGlobal missing: want false")
	}
}

func TestRegistry_LockPanicsOnSet(t *testing.T) {
	r := NewRegistry()
	r.Lock("k")
	if !r.IsLocked("k") {
		t.Fatal("IsLocked = false after Lock")
	}
	defer func() {
		if rec := recover(); rec == nil {
			t.Error("expected panic on SetGlobal after Lock")
		}
	}()
	r.SetGlobal("k", 1)
}

func TestRegistry_UnlockForTesting(t *testing.T) {
	r := NewRegistry()
	r.Lock("k")
	r.UnlockForTesting("k")
	r.SetGlobal("k", "ok")
	if v, _ := r.GetGlobal("k"); v != "ok" {
		t.Errorf("GetGlobal = %v, want ok", v)
	}
}
