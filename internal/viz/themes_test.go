package viz

import (
	"strings"
	"testing"
)

func TestGetTheme(t *testing.T) {
	if got := GetTheme("retro"); got.Name != "retro" {
		t.Errorf("expected retro theme, got %s", got.Name)
	}
	if got := GetTheme("does-not-exist"); got.Name != "cyberpunk" {
		t.Errorf("unknown name should fall back to cyberpunk, got %s", got.Name)
	}
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("cyberpunk")

	SetTheme("ocean")
	if CurrentTheme.Name != "ocean" {
		t.Errorf("expected ocean active, got %s", CurrentTheme.Name)
	}
}

func TestNextThemeCycles(t *testing.T) {
	defer SetTheme("cyberpunk")

	SetTheme("cyberpunk")
	seen := map[string]bool{CurrentTheme.Name: true}
	for i := 1; i < len(Themes); i++ {
		SetTheme(NextTheme())
		if seen[CurrentTheme.Name] {
			t.Fatalf("theme %s repeated before full cycle", CurrentTheme.Name)
		}
		seen[CurrentTheme.Name] = true
	}

	SetTheme(NextTheme())
	if CurrentTheme.Name != "cyberpunk" {
		t.Errorf("expected wrap back to cyberpunk, got %s", CurrentTheme.Name)
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(Themes) {
		t.Fatalf("expected %d names, got %d", len(Themes), len(names))
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{"cyberpunk", "retro", "minimal", "ocean", "rubidium"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing theme %s", want)
		}
	}
}

func TestProgressBarClamps(t *testing.T) {
	if got := ProgressBar(2.0, 4); !strings.Contains(got, "████") {
		t.Errorf("over-full bar should clamp to full: %q", got)
	}
	if got := ProgressBar(-1.0, 4); !strings.Contains(got, "░░░░") {
		t.Errorf("negative bar should clamp to empty: %q", got)
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("empty values: expected flat line, got %q", got)
	}

	got := SparklineChart([]float64{0, 1, 2, 3}, 4)
	if !strings.ContainsRune(got, '▁') || !strings.ContainsRune(got, '█') {
		t.Errorf("expected full ramp in %q", got)
	}
}

func TestSeparatorWidth(t *testing.T) {
	if got := Separator(20); !strings.Contains(got, "◆") {
		t.Errorf("separator should carry the diamond: %q", got)
	}
}
