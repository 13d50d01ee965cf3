package analytics

import (
	"os"
	"runtime"
	"strings"
)

// Version identifies this client in session user-agent strings.
const Version = "1.2.0"

// HostEnvironment is the default Environment for non-browser hosts. It
// reports the Go runtime platform and the process locale; screen
// dimensions and page path are not available and read as zero values.
type HostEnvironment struct{}

func (HostEnvironment) UserAgent() string {
	return "prime-analytics-go/" + Version + " (" + runtime.GOOS + "; " + runtime.GOARCH + ")"
}

func (HostEnvironment) Platform() string {
	return runtime.GOOS
}

func (HostEnvironment) Language() string {
	for _, key := range []string{"LC_ALL", "LANG"} {
		if v := os.Getenv(key); v != "" {
			// "en_US.UTF-8" -> "en_US"
			if i := strings.IndexByte(v, '.'); i > 0 {
				v = v[:i]
			}
			return v
		}
	}
	return ""
}

func (HostEnvironment) ScreenSize() (int, int) {
	return 0, 0
}

func (HostEnvironment) CurrentPath() string {
	return ""
}
