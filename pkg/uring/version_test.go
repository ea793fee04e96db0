//go:build linux

package uring_test

import (
	"testing"

	"github.com/brickingsoft/uio/pkg/uring"
)

func TestGetVersion(t *testing.T) {
	v := uring.GetVersion()
	if v.Invalidate() {
		t.Fatal("kernel version not readable")
	}
	t.Log(v)
	if !v.GTE(v.Major, v.Minor, v.Patch) {
		t.Error("GTE on self must hold")
	}
	if v.LT(v.Major, v.Minor, v.Patch) {
		t.Error("LT on self must not hold")
	}
}
