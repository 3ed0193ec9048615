package main

import (
	"errors"
	"testing"

	"github.com/textreuse/iqtibas/internal/reuse"
)

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"configuration", reuse.Errorf(reuse.KindConfiguration, "bad"), ExitConfigError},
		{"input", reuse.Errorf(reuse.KindInput, "bad"), ExitInputError},
		{"output", reuse.Errorf(reuse.KindOutput, "bad"), ExitOutputError},
		{"alignment", reuse.Errorf(reuse.KindAlignment, "bad"), ExitError},
		{"plain", errors.New("bad"), ExitError},
		{"wrapped input", reuse.WrapError(reuse.KindInput, errors.New("bad")), ExitInputError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := exitCodeFor(c.err); got != c.want {
				t.Errorf("exitCodeFor = %d, want %d", got, c.want)
			}
		})
	}
}
