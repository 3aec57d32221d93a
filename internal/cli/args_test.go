package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"legacy flags", []string{"-dso", "1", "-dpy", "0"}, []string{"--delete_so", "1", "--delete_py", "0"}},
		{"legacy with value", []string{"-dso=1"}, []string{"--delete_so=1"}},
		{"long flags untouched", []string{"--delete_so", "1", "-b", "0"}, []string{"--delete_so", "1", "-b", "0"}},
		{"after terminator", []string{"-p", "a", "--", "-dso"}, []string{"-p", "a", "--", "-dso"}},
		{"similar names untouched", []string{"-dsox"}, []string{"-dsox"}},
		{"empty", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeArgs(tt.in))
		})
	}
}
