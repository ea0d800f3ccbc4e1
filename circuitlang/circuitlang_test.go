package circuitlang

import "testing"

func TestConnectives(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want func(a, b bool) bool
	}{
		{"and", "a & b", func(a, b bool) bool { return a && b }},
		{"or", "a | b", func(a, b bool) bool { return a || b }},
		{"xor", "a ^ b", func(a, b bool) bool { return a != b }},
		{"nand", "a nand b", func(a, b bool) bool { return !(a && b) }},
		{"nor", "a nor b", func(a, b bool) bool { return !(a || b) }},
		{"implies", "a -> b", func(a, b bool) bool { return !a || b }},
		{"iff", "a <-> b", func(a, b bool) bool { return a == b }},
		{"not-of-and", "!(a & b)", func(a, b bool) bool { return !(a && b) }},
		{"nested", "(a & !b) | (!a & b)", func(a, b bool) bool { return a != b }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Build("pi a\npi b\npo = " + tt.expr)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			po := m.PropOuts()[0]

			for _, a := range []bool{false, true} {
				for _, b := range []bool{false, true} {
					frames := m.Simulate([][]bool{{a, b}}, nil)
					got := frames[0][po]
					want := tt.want(a, b)
					if got != want {
						t.Errorf("a=%v b=%v: got %v, want %v", a, b, got, want)
					}
				}
			}
		})
	}
}

func TestRegisterToggle(t *testing.T) {
	m, err := Build(`
		reg r
		r.next = !r
		po = r
	`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	po := m.PropOuts()[0]

	frames := m.Simulate([][]bool{{}, {}, {}, {}}, []bool{false})
	want := []bool{false, true, false, true}
	for f, w := range want {
		if frames[f][po] != w {
			t.Errorf("frame %d: got %v, want %v", f, frames[f][po], w)
		}
	}
}

func TestMissingPropertyOutput(t *testing.T) {
	_, err := Build("pi a\ng = !a\n")
	if err == nil {
		t.Fatal("expected an error for a missing property output")
	}
}

func TestRegisterWithoutDriver(t *testing.T) {
	_, err := Build("reg r\npo = r\n")
	if err == nil {
		t.Fatal("expected an error for a register with no '.next' driver")
	}
}

func TestUndeclaredName(t *testing.T) {
	_, err := Build("pi a\npo = a & b\n")
	if err == nil {
		t.Fatal("expected an error for an undeclared name")
	}
}
