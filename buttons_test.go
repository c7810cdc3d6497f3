package segapad

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{0, "none"},
		{State(Connected), "on"},
		{State(Connected | SixButton | ButtonUp | ButtonA | ButtonStart), "on 6btn up a start"},
		{State(Connected | ButtonHome | ButtonMode | ButtonZ), "on z mode home"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%#x).String() = %q, want %q", uint16(tt.s), got, tt.want)
		}
	}
}

func TestButtonByName(t *testing.T) {
	for _, bn := range buttonNames {
		b, ok := ButtonByName(bn.name)
		if !ok || b != bn.btn {
			t.Errorf("ButtonByName(%q) = %v, %v", bn.name, b, ok)
		}
		if b.String() != bn.name {
			t.Errorf("Button(%#x).String() = %q, want %q", uint16(b), b.String(), bn.name)
		}
	}
	if _, ok := ButtonByName("select"); ok {
		t.Errorf("ButtonByName accepted a button Sega pads do not have")
	}
}

func TestStateButtons(t *testing.T) {
	s := State(Connected | SixButton | ButtonB)
	if got := s.Buttons(); got != State(ButtonB) {
		t.Errorf("Buttons() = %v, want b", got)
	}
	if !s.Has(Connected | ButtonB) {
		t.Errorf("Has(on|b) = false")
	}
	if s.Has(ButtonB | ButtonC) {
		t.Errorf("Has(b|c) = true")
	}
}
