package validation

import "runtime"

type HostFamily int

const (
	HostUnix HostFamily = iota
	HostWindows
)

func (h HostFamily) String() string {
	if h == HostWindows {
		return "windows"
	}
	return "unix"
}

// DetectHost returns the family of the running OS
func DetectHost() HostFamily {
	return hostFamily(runtime.GOOS)
}

func hostFamily(goos string) HostFamily {
	if goos == "windows" {
		return HostWindows
	}
	return HostUnix
}
