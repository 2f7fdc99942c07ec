package logging

import "testing"

func TestNewProgressSamplerDefaults(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"zero", 0, 5},
		{"negative", -1, 5},
		{"custom", 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSamplerNilAlwaysLogs(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "enrichment") {
		t.Error("nil sampler should always log")
	}
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(25)
	steps := []struct {
		percent float64
		want    bool
	}{
		{0, true},
		{10, false},
		{25, true},
		{30, false},
		{80, true},
		{100, true},
		{120, false},
	}
	for _, step := range steps {
		if got := s.ShouldLog(step.percent, "enrichment"); got != step.want {
			t.Fatalf("ShouldLog(%v) = %v, want %v", step.percent, got, step.want)
		}
	}
}

func TestProgressSamplerStageChangeResetsBuckets(t *testing.T) {
	s := NewProgressSampler(5)
	if !s.ShouldLog(50, "enrichment") {
		t.Fatal("first event should log")
	}
	if s.ShouldLog(50, "enrichment") {
		t.Fatal("repeat event should not log")
	}
	if !s.ShouldLog(10, "persona") {
		t.Fatal("stage change should log")
	}
	if s.lastStage != "persona" {
		t.Fatalf("lastStage = %q", s.lastStage)
	}
}

func TestProgressSamplerCounts(t *testing.T) {
	s := NewProgressSampler(50)
	if !s.ShouldLogCount(5, 40, "enrichment") {
		t.Fatal("first count should log")
	}
	if s.ShouldLogCount(10, 40, "enrichment") {
		t.Fatal("25% should stay in the first bucket")
	}
	if !s.ShouldLogCount(20, 40, "enrichment") {
		t.Fatal("50% should cross a bucket")
	}
	if !s.ShouldLogCount(0, 0, "other") {
		t.Fatal("stage change with unknown total should log")
	}
}
