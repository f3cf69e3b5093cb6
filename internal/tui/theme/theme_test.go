package theme

import "testing"

func TestByName(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("nope").Name; got != FlexokiDark.Name {
		t.Errorf("ByName(unknown) = %q, want %q", got, FlexokiDark.Name)
	}
}

func TestNamesAndKnown(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("len(Names()) = %d, want %d", len(names), len(All))
	}
	for _, n := range names {
		if !Known(n) {
			t.Errorf("Known(%q) = false", n)
		}
	}
	if Known("solarized") {
		t.Error("Known(solarized) = true, want false")
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Errorf("Active = %q, want terminal", Active.Name)
	}
}

func TestDerivedRoles(t *testing.T) {
	for _, th := range All {
		if th.BorderAccent != th.Accent {
			t.Errorf("%s: BorderAccent = %q, want Accent %q", th.Name, th.BorderAccent, th.Accent)
		}
		if th.Gain != th.GreenBright || th.Loss != th.Red {
			t.Errorf("%s: Gain/Loss = %q/%q, want %q/%q", th.Name, th.Gain, th.Loss, th.GreenBright, th.Red)
		}
		if th.Gain == th.Loss {
			t.Errorf("%s: gain and loss share a color", th.Name)
		}
	}
}
