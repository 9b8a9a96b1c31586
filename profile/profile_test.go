package profile

import "testing"

func TestNew_AppliesOptions(t *testing.T) {
	p := New(WithMode("cpu"), WithPath("/tmp/x"), WithQuiet(true), nil)

	want := Profiler{Mode: "cpu", Path: "/tmp/x", Quiet: true}
	if p != want {
		t.Errorf("New() = %+v, want %+v", p, want)
	}
}

func TestProfiler_StartWithoutMode(t *testing.T) {
	stop := New(WithPath(t.TempDir())).Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start() without mode = %T, want no-op", stop)
	}

	stop.Stop()
}

func TestProfiler_StartUnknownMode(t *testing.T) {
	stop := New(WithMode("nonsense"), WithPath(t.TempDir())).Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start() with unknown mode = %T, want no-op", stop)
	}

	stop.Stop()
}
