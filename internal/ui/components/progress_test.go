package components

import (
	"strings"
	"testing"
)

func TestDomainBar(t *testing.T) {
	bar := DomainBar("Protection Of Information Assets", 3, 4, 60)

	if bar.Percent != 0.75 {
		t.Errorf("percent = %v, want 0.75", bar.Percent)
	}
	if !strings.HasSuffix(bar.Label, " 3/ 4") {
		t.Errorf("label = %q, want trailing tally", bar.Label)
	}
	if bar.ShowPercent {
		t.Error("domain rows carry a tally, not a percentage")
	}
}

func TestDomainBarZeroTotal(t *testing.T) {
	bar := DomainBar("Governance And Management Of It", 0, 0, 60)
	if bar.Percent != 0 {
		t.Errorf("percent = %v, want 0 for an unseen domain", bar.Percent)
	}
}
