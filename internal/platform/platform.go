package platform

import (
	"fmt"
	"runtime"
)

// OS identifies the operating system family a zls asset is built for.
type OS string

const (
	Mac     OS = "macos"
	Linux   OS = "linux"
	Windows OS = "windows"
)

// Arch identifies the CPU architecture family a zls asset is built for.
type Arch string

const (
	Aarch64 Arch = "aarch64"
	X86     Arch = "x86"
	X8664   Arch = "x86_64"
)

// ArchiveKind selects the extraction strategy for a downloaded asset.
type ArchiveKind string

const (
	ArchiveTarGz ArchiveKind = "tar.gz"
	ArchiveZip   ArchiveKind = "zip"
)

// Target pairs an OS and architecture. Derived once per resolution and
// treated as immutable afterwards.
type Target struct {
	OS   OS
	Arch Arch
}

// Current derives the target from the running process.
func Current() (Target, error) {
	var t Target

	switch runtime.GOOS {
	case "darwin":
		t.OS = Mac
	case "linux":
		t.OS = Linux
	case "windows":
		t.OS = Windows
	default:
		return Target{}, fmt.Errorf("unsupported operating system %q", runtime.GOOS)
	}

	switch runtime.GOARCH {
	case "arm64":
		t.Arch = Aarch64
	case "386":
		t.Arch = X86
	case "amd64":
		t.Arch = X8664
	default:
		return Target{}, fmt.Errorf("unsupported architecture %q", runtime.GOARCH)
	}

	return t, nil
}

// Token returns the "<arch>-<os>" identifier used by both zigtools services:
// it keys the select-version asset map and is embedded in release asset
// names. The token order is a compatibility contract; do not flip it.
func (t Target) Token() string {
	return string(t.Arch) + "-" + string(t.OS)
}

// ArchiveExt returns the asset archive extension for the target. Archive
// format is platform-determined, not negotiated.
func (t Target) ArchiveExt() string {
	if t.OS == Windows {
		return "zip"
	}
	return "tar.gz"
}

// Archive returns the extraction strategy matching ArchiveExt.
func (t Target) Archive() ArchiveKind {
	if t.OS == Windows {
		return ArchiveZip
	}
	return ArchiveTarGz
}

// ExeName appends the Windows executable suffix when needed.
func (t Target) ExeName(base string) string {
	if t.OS == Windows {
		return base + ".exe"
	}
	return base
}

// AssetName builds the release asset filename for a zls version,
// zls-{arch}-{os}-{version}.{ext}.
func (t Target) AssetName(version string) string {
	return fmt.Sprintf("zls-%s-%s.%s", t.Token(), version, t.ArchiveExt())
}
