//go:build linux

package uring

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

type Version struct {
	Major    int
	Minor    int
	Patch    int
	Flavor   string
	validate bool
}

func (v Version) Validate() bool {
	return v.validate
}

func (v Version) Invalidate() bool {
	return !v.validate
}

func (v Version) GTE(major, minor, patch int) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Patch >= patch
}

func (v Version) LT(major, minor, patch int) bool {
	return !v.GTE(major, minor, patch)
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d%s", v.Major, v.Minor, v.Patch, v.Flavor)
}

var (
	version     = Version{}
	versionOnce = sync.Once{}
)

func GetVersion() Version {
	versionOnce.Do(func() {
		uts := &unix.Utsname{}
		if err := unix.Uname(uts); err != nil {
			return
		}
		release := unix.ByteSliceToString(uts.Release[:])
		major, minor, patch, flavor, parseErr := parseRelease(release)
		if parseErr != nil {
			return
		}
		version = Version{
			Major:    major,
			Minor:    minor,
			Patch:    patch,
			Flavor:   flavor,
			validate: true,
		}
	})
	return version
}

func parseRelease(release string) (major int, minor int, patch int, flavor string, err error) {
	var partial string

	parsed, _ := fmt.Sscanf(release, "%d.%d%s", &major, &minor, &partial)
	if parsed < 2 {
		err = fmt.Errorf("cannot parse kernel release: %s", release)
		return
	}

	parsed, _ = fmt.Sscanf(partial, ".%d%s", &patch, &flavor)
	if parsed < 1 {
		flavor = partial
	}
	return
}
