package util

import "testing"

func TestShortHostname(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  string
	}

	tests := []testCase{
		{
			name:  "fqdn with port",
			input: "cb-node1.prod.example.com:8091",
			want:  "cb-node1",
		},
		{
			name:  "fqdn without port",
			input: "cb-node2.prod.example.com",
			want:  "cb-node2",
		},
		{
			name:  "short name with port",
			input: "cb-node3:8091",
			want:  "cb-node3",
		},
		{
			name:  "short name only",
			input: "cb-node4",
			want:  "cb-node4",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ShortHostname(tt.input)
			if got != tt.want {
				t.Fatalf("ShortHostname(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
