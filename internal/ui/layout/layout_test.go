package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{120, 23, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Dashboard", "EN · Accounting", 100)
	for _, want := range []string{"EduCareer", "Dashboard", "EN · Accounting"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if got := lipgloss.Height(h); got != HeaderHeight {
		t.Errorf("header height = %d, want %d", got, HeaderHeight)
	}
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Enter", Description: "Select"}, {Key: "Esc", Description: "Back"}}, 100)
	if !strings.Contains(f, "Enter") || !strings.Contains(f, "Back") {
		t.Errorf("footer missing hints:\n%s", f)
	}
	if got := lipgloss.Height(f); got != FooterHeight {
		t.Errorf("footer height = %d, want %d", got, FooterHeight)
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	frame := RenderFrame(RenderHeader("x", "", 90), "body", RenderFooter(nil, 90), 90, 30)
	if got := lipgloss.Height(frame); got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
}
