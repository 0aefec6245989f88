package platform

import "testing"

func TestTokenGrid(t *testing.T) {
	cases := []struct {
		target Target
		want   string
	}{
		{Target{OS: Mac, Arch: Aarch64}, "aarch64-macos"},
		{Target{OS: Mac, Arch: X8664}, "x86_64-macos"},
		{Target{OS: Linux, Arch: Aarch64}, "aarch64-linux"},
		{Target{OS: Linux, Arch: X8664}, "x86_64-linux"},
		{Target{OS: Windows, Arch: Aarch64}, "aarch64-windows"},
		{Target{OS: Windows, Arch: X8664}, "x86_64-windows"},
	}

	for _, tc := range cases {
		if got := tc.target.Token(); got != tc.want {
			t.Fatalf("token for %s/%s: got %q, want %q", tc.target.OS, tc.target.Arch, got, tc.want)
		}
	}
}

func TestArchiveExtByOS(t *testing.T) {
	if got := (Target{OS: Linux, Arch: X8664}).ArchiveExt(); got != "tar.gz" {
		t.Fatalf("linux archive ext: got %q", got)
	}
	if got := (Target{OS: Mac, Arch: Aarch64}).Archive(); got != ArchiveTarGz {
		t.Fatalf("mac archive kind: got %q", got)
	}
	if got := (Target{OS: Windows, Arch: X8664}).ArchiveExt(); got != "zip" {
		t.Fatalf("windows archive ext: got %q", got)
	}
	if got := (Target{OS: Windows, Arch: X8664}).Archive(); got != ArchiveZip {
		t.Fatalf("windows archive kind: got %q", got)
	}
}

func TestExeName(t *testing.T) {
	if got := (Target{OS: Windows, Arch: X8664}).ExeName("zls"); got != "zls.exe" {
		t.Fatalf("windows exe name: got %q", got)
	}
	if got := (Target{OS: Linux, Arch: X8664}).ExeName("zls"); got != "zls" {
		t.Fatalf("linux exe name: got %q", got)
	}
}

func TestAssetName(t *testing.T) {
	target := Target{OS: Mac, Arch: Aarch64}
	if got := target.AssetName("0.13.0"); got != "zls-aarch64-macos-0.13.0.tar.gz" {
		t.Fatalf("asset name: got %q", got)
	}

	target = Target{OS: Windows, Arch: X8664}
	if got := target.AssetName("0.13.0"); got != "zls-x86_64-windows-0.13.0.zip" {
		t.Fatalf("windows asset name: got %q", got)
	}
}

func TestCurrentMatchesRuntime(t *testing.T) {
	target, err := Current()
	if err != nil {
		t.Skipf("unsupported test platform: %v", err)
	}
	if target.OS == "" || target.Arch == "" {
		t.Fatalf("incomplete target: %+v", target)
	}
}
