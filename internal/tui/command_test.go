package tui

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"q", Command{Name: "quit"}},
		{"  Courses ", Command{Name: "courses"}},
		{"rename   Ada Lovelace ", Command{Name: "rename", Args: "Ada Lovelace"}},
		{"logout", Command{Name: "signout"}},
		{"pr", Command{Name: "profile"}},
		{"bogus arg", Command{Name: "bogus", Args: "arg"}},
		{"", Command{}},
	}
	for _, tt := range tests {
		if got := ParseCommand(tt.in); got != tt.want {
			t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestCommandNamesAreCanonical(t *testing.T) {
	names := CommandNames()
	if len(names) == 0 {
		t.Fatal("no command names")
	}
	for i, name := range names {
		if got := ParseCommand(name).Name; got != name {
			t.Errorf("ParseCommand(%q).Name = %q, want the name itself", name, got)
		}
		if i > 0 && names[i-1] >= name {
			t.Errorf("names not sorted and unique at %d: %v", i, names)
		}
	}
	for _, alias := range []string{"q", "co", "logout"} {
		for _, name := range names {
			if name == alias {
				t.Errorf("alias %q listed as a command", alias)
			}
		}
	}
}
