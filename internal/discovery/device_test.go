package discovery

import "testing"

func TestKeypad_String(t *testing.T) {
	keypad := &Keypad{
		Instance: "kitchen",
		Hostname: "laptop.local.",
		IP:       "192.168.4.16",
		Port:     7337,
	}

	expected := `calcpad keypad "kitchen" (laptop.local.) at 192.168.4.16:7337`
	if keypad.String() != expected {
		t.Errorf("Keypad.String() = %v, want %v", keypad.String(), expected)
	}
}

func TestKeypad_URL(t *testing.T) {
	tests := []struct {
		name     string
		keypad   *Keypad
		expected string
	}{
		{
			name:     "default path",
			keypad:   &Keypad{IP: "192.168.4.16", Port: 7337},
			expected: "ws://192.168.4.16:7337/ws",
		},
		{
			name:     "path from TXT",
			keypad:   &Keypad{IP: "10.0.0.5", Port: 8080, Metadata: map[string]string{"path": "/keys"}},
			expected: "ws://10.0.0.5:8080/keys",
		},
		{
			name:     "IPv6",
			keypad:   &Keypad{IP: "fe80::1", Port: 7337},
			expected: "ws://[fe80::1]:7337/ws",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.keypad.URL(); got != tt.expected {
				t.Errorf("Keypad.URL() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestKeypad_GetMetadata(t *testing.T) {
	var empty Keypad
	if got := empty.GetMetadata("path"); got != "" {
		t.Errorf("GetMetadata() on nil map = %q, want empty", got)
	}

	keypad := &Keypad{Metadata: map[string]string{"repeat": "noop"}}
	if got := keypad.GetMetadata("repeat"); got != "noop" {
		t.Errorf("GetMetadata(repeat) = %q, want noop", got)
	}
}
