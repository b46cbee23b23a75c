package config

import "testing"

func TestPolicyCheckpoints(t *testing.T) {
	aim := NewPolicy(DefaultAimConfig().Difficulty)
	whack := NewPolicy(DefaultWhackConfig().Difficulty)

	tests := []struct {
		name         string
		policy       Policy
		score        int
		wantInterval int
		wantSize     int
	}{
		{"aim start", aim, 0, 1200, 60},
		{"aim score 5", aim, 5, 1050, 50},
		{"aim size floor", aim, 18, 660, 24},
		{"aim interval floor", aim, 24, 500, 24},
		{"aim far past floor", aim, 1000, 500, 24},
		{"whack start", whack, 0, 900, 9},
		{"whack score 10", whack, 10, 600, 9},
		{"whack floor", whack, 17, 400, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.policy.At(tc.score)
			if p.IntervalMs != tc.wantInterval {
				t.Errorf("IntervalMs = %d, expected %d", p.IntervalMs, tc.wantInterval)
			}
			if p.Size != tc.wantSize {
				t.Errorf("Size = %d, expected %d", p.Size, tc.wantSize)
			}
		})
	}
}

func TestPolicyMonotonic(t *testing.T) {
	configs := map[string]DifficultyConfig{
		"aim":   DefaultAimConfig().Difficulty,
		"whack": DefaultWhackConfig().Difficulty,
		"snake": DefaultSnakeConfig().Difficulty,
		"simon": DefaultSimonConfig().Difficulty,
	}

	for name, cfg := range configs {
		for _, preset := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed} {
			c := cfg
			ApplyPreset(&c, preset)
			p := NewPolicy(c)

			prev := p.At(0)
			for score := 1; score <= 200; score++ {
				cur := p.At(score)
				if cur.IntervalMs > prev.IntervalMs || cur.Size > prev.Size || cur.DecayRate > prev.DecayRate {
					t.Fatalf("%s/%s: params increased at score %d: %+v -> %+v", name, preset, score, prev, cur)
				}
				if cur.IntervalMs < c.Interval.Floor || cur.Size < c.Size.Floor {
					t.Fatalf("%s/%s: params below floor at score %d: %+v", name, preset, score, cur)
				}
				prev = cur
			}
		}
	}
}

func TestPolicyDeterministic(t *testing.T) {
	p := NewPolicy(DefaultAimConfig().Difficulty)
	for score := 0; score < 50; score++ {
		if p.At(score) != p.At(score) {
			t.Fatalf("At(%d) is not deterministic", score)
		}
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		wantInterval int // aim interval at score 0
		progresses   bool
	}{
		{DifficultyEasy, 1200, true},
		{DifficultyNormal, 1200 - 210, true}, // 30% of the 700ms range
		{DifficultyHard, 1200 - 490, true},   // 70% of the range
		{DifficultyFixed, 1200, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultAimConfig().Difficulty
			ApplyPreset(&cfg, tc.preset)
			p := NewPolicy(cfg)

			if got := p.At(0).IntervalMs; got != tc.wantInterval {
				t.Errorf("At(0).IntervalMs = %d, expected %d", got, tc.wantInterval)
			}
			progressed := p.At(5).IntervalMs < p.At(0).IntervalMs
			if progressed != tc.progresses {
				t.Errorf("progression = %v, expected %v", progressed, tc.progresses)
			}
		})
	}
}

func TestDecayRate(t *testing.T) {
	p := NewPolicy(DefaultWhackConfig().Difficulty)
	if d := p.At(0).DecayRate; d != 1 {
		t.Errorf("DecayRate at start = %v, expected 1", d)
	}
	if d := p.At(100).DecayRate; d < 0.44 || d > 0.45 {
		t.Errorf("DecayRate at floor = %v, expected 400/900", d)
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "Normal", " hard ", "fixed"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) unexpected error: %v", s, err)
		}
	}
	if p, _ := ParsePreset(""); p != DifficultyEasy {
		t.Errorf("empty preset should default to easy, got %q", p)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestFixedPolicy(t *testing.T) {
	p := FixedPolicy(1000, 12)
	for _, score := range []int{0, 1, 50} {
		got := p.At(score)
		if got.IntervalMs != 1000 || got.Size != 12 {
			t.Errorf("FixedPolicy.At(%d) = %+v", score, got)
		}
	}
}
