package sanitize

import "testing"

func TestPlain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text unchanged", "Kaede Akamatsu", "Kaede Akamatsu"},
		{"strips tags", "<b>Kaede</b>", "Kaede"},
		{"strips script", `<script>alert("x")</script>Kaede`, "Kaede"},
		{"strips event handlers", `<img src=x onerror=alert(1)>12 Main St`, "12 Main St"},
		{"trims whitespace", "  Kaede  ", "Kaede"},
		{"keeps literal ampersand", "Smith & Sons", "Smith & Sons"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Plain(tt.input); got != tt.want {
				t.Errorf("Plain(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
