package launcher_test

import (
	"errors"

	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/kralicky/papyrusctl/pkg/launcher"
)

var _ = DescribeTable("ResolveTarget",
	func(id string, expected launcher.Target) {
		target, err := launcher.ResolveTarget(id)
		Expect(err).NotTo(HaveOccurred())
		Expect(target).To(Equal(expected))
	},
	Entry("linux-gnu", "linux-gnu", launcher.TargetLinuxX64),
	Entry("linux-musl", "linux-musl", launcher.TargetLinuxX64),
	Entry("linux", "linux", launcher.TargetLinuxX64),
	Entry("uppercase Linux", "Linux", launcher.TargetLinuxX64),
	Entry("cygwin", "cygwin", launcher.TargetWinX64),
	Entry("msys", "msys", launcher.TargetWinX64),
	Entry("mingw64", "mingw64", launcher.TargetWinX64),
	Entry("win32", "win32", launcher.TargetWinX64),
	Entry("windows", "windows", launcher.TargetWinX64),
)

var _ = DescribeTable("ResolveTarget on unsupported hosts",
	func(id string, reason error) {
		target, err := launcher.ResolveTarget(id)
		Expect(target).To(Equal(launcher.TargetUnsupported))
		Expect(errors.Is(err, reason)).To(BeTrue())
		Expect(launcher.IsUnsupportedPlatform(err)).To(BeTrue())
	},
	Entry("darwin19", "darwin19", launcher.ErrPlatformNotImplemented),
	Entry("darwin", "darwin", launcher.ErrPlatformNotImplemented),
	Entry("freebsd12.1", "freebsd12.1", launcher.ErrPlatformNotImplemented),
	Entry("openbsd", "openbsd6.8", launcher.ErrPlatformNotImplemented),
	Entry("netbsd", "netbsd", launcher.ErrPlatformNotImplemented),
	Entry("empty", "", launcher.ErrPlatformUnknown),
	Entry("solaris", "solaris2.11", launcher.ErrPlatformUnknown),
	Entry("garbage", "not-an-os", launcher.ErrPlatformUnknown),
	Entry("substring only", "gnu-linux", launcher.ErrPlatformUnknown),
)
