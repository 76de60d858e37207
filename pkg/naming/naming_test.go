package naming

import "testing"

func TestResolveBlockName(t *testing.T) {
	tests := []struct {
		prefix    string
		blockName string
		funcName  string
		want      string
	}{
		{"turtle", "", "isPresent", "turtle_is_present"},
		{"os", "", "getID", "os_get_id"},
		{"x", "", "abcXYZdef", "x_abc_xyzdef"},
		{"turtle", "", "turnLeft", "turtle_turn_left"},
		{"turtle", "", "forward", "turtle_forward"},
		{"rs", "", "getBundledInput", "rs_get_bundled_input"},
		{"term", "", "Clear", "term_clear"},
		{"peripheral", "wrap_side", "wrap", "peripheral_wrap_side"},
		{"turtle", "detect", "", "turtle_detect"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := ResolveBlockName(tt.prefix, tt.blockName, tt.funcName)
			if got != tt.want {
				t.Errorf("ResolveBlockName(%q, %q, %q) = %q, want %q",
					tt.prefix, tt.blockName, tt.funcName, got, tt.want)
			}
		})
	}
}

func TestSnakeIdempotent(t *testing.T) {
	for _, name := range []string{"isPresent", "getID", "abcXYZdef", "setOutput"} {
		once := snake(name)
		if twice := snake(once); twice != once {
			t.Errorf("snake(%q) = %q, re-applied = %q", name, once, twice)
		}
	}
}
