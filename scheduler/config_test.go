package scheduler

import "testing"

func TestConfigNewDefaultsToGoroutineBackend(t *testing.T) {
	s, err := Config{}.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(goroutinePoolScheduler); !ok {
		t.Fatalf("empty Backend must build goroutinePoolScheduler, got %T", s)
	}
}

func TestConfigNewAnts(t *testing.T) {
	s, err := Config{Backend: "ants", MaxWorker: 4}.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	done := make(chan struct{})
	s.Execute(func() { close(done) })
	<-done
}

func TestConfigNewWorkerpool(t *testing.T) {
	s, err := Config{Backend: "workerpool", MaxWorker: 2}.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	done := make(chan struct{})
	s.Execute(func() { close(done) })
	<-done
}

func TestConfigNewPond(t *testing.T) {
	s, err := Config{Backend: "pond", MaxWorker: 2}.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	done := make(chan struct{})
	s.Execute(func() { close(done) })
	<-done
}

func TestConfigNewUnknownBackendErrors(t *testing.T) {
	_, err := Config{Backend: "nonsense"}.New()
	if err == nil {
		t.Fatal("unknown backend must be a build-time error, not a silent fallback")
	}
}
