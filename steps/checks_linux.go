package steps

import (
	"runtime"

	"golang.org/x/sys/unix"
)

func machine() string {
	var name unix.Utsname
	if err := unix.Uname(&name); err != nil {
		return runtime.GOARCH
	}
	return unix.ByteSliceToString(name.Machine[:])
}
