package uring_test

import (
	"testing"

	"github.com/brickingsoft/uio/pkg/uring"
)

func TestRoundupPow2(t *testing.T) {
	for _, c := range []struct {
		n    uint32
		want uint32
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{31, 32},
		{32, 32},
		{33, 64},
		{1000, 1024},
	} {
		if got := uring.RoundupPow2(c.n); got != c.want {
			t.Error("round", c.n, "got", got, "want", c.want)
		}
	}
}
