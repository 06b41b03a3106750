//go:build !linux

package steps

import "runtime"

var machines = map[string]string{
	"amd64": "x86_64",
	"386":   "i686",
	"arm64": "aarch64",
}

func machine() string {
	if known, ok := machines[runtime.GOARCH]; ok {
		return known
	}
	return runtime.GOARCH
}
