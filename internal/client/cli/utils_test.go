package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIndex(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		n        int
		expected int
		wantErr  bool
	}{
		{name: "first item", args: []string{"1"}, n: 3, expected: 0},
		{name: "last item", args: []string{"3"}, n: 3, expected: 2},
		{name: "missing", args: nil, n: 3, wantErr: true},
		{name: "not a number", args: []string{"abc"}, n: 3, wantErr: true},
		{name: "zero", args: []string{"0"}, n: 3, wantErr: true},
		{name: "out of range", args: []string{"4"}, n: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIndex(tt.args, tt.n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
