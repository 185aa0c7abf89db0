package launcher

import (
	"fmt"
	"strings"

	"github.com/ryanuber/go-glob"
)

type Target string

const (
	TargetLinuxX64    Target = "linux-x64"
	TargetWinX64      Target = "win-x64"
	TargetUnsupported Target = "unsupported"
)

type platformRule struct {
	Pattern string
	Target  Target
}

// Rules are matched in order against the lowercased host identifier. Rules
// mapping to TargetUnsupported name platforms that are known but have no
// build target.
var platformRules = []platformRule{
	{"linux*", TargetLinuxX64},
	{"cygwin*", TargetWinX64},
	{"msys*", TargetWinX64},
	{"mingw*", TargetWinX64},
	{"win32*", TargetWinX64},
	{"windows*", TargetWinX64},
	{"darwin*", TargetUnsupported},
	{"freebsd*", TargetUnsupported},
	{"openbsd*", TargetUnsupported},
	{"netbsd*", TargetUnsupported},
	{"dragonfly*", TargetUnsupported},
}

// ResolveTarget maps a host OS identifier such as $OSTYPE ("linux-gnu",
// "msys", "darwin19") or runtime.GOOS to the runtime identifier passed to
// the build tool.
func ResolveTarget(osIdentifier string) (Target, error) {
	id := strings.ToLower(strings.TrimSpace(osIdentifier))
	if id != "" {
		for _, rule := range platformRules {
			if !glob.Glob(rule.Pattern, id) {
				continue
			}
			if rule.Target == TargetUnsupported {
				return TargetUnsupported, fmt.Errorf("%w: %s", ErrPlatformNotImplemented, osIdentifier)
			}
			return rule.Target, nil
		}
	}
	return TargetUnsupported, fmt.Errorf("%w: %q", ErrPlatformUnknown, osIdentifier)
}
