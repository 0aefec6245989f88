package zls

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"zigls/internal/platform"
)

var testTarget = platform.Target{OS: platform.Mac, Arch: platform.Aarch64}

func newTestNegotiator(t *testing.T, latestURL, selectURL, buildsBase string) *Negotiator {
	t.Helper()
	n := NewNegotiator(http.DefaultClient, "")
	if latestURL != "" {
		n.latestReleaseURL = latestURL
	}
	if selectURL != "" {
		n.selectVersionURL = selectURL
	}
	if buildsBase != "" {
		n.buildsBaseURL = buildsBase
	}
	return n
}

func TestNegotiateLatestBuildsAssetURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"tag_name":"0.13.0","prerelease":false,"assets":[{"name":"zls-aarch64-macos-0.13.0.tar.gz","browser_download_url":"x"}]}`)
	}))
	defer server.Close()

	n := newTestNegotiator(t, server.URL, "", "https://builds.example.test")
	res, err := n.Negotiate(context.Background(), "", testTarget)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if res.Version != "0.13.0" {
		t.Fatalf("version: got %q", res.Version)
	}
	want := "https://builds.example.test/zls-aarch64-macos-0.13.0.tar.gz"
	if res.DownloadURL != want {
		t.Fatalf("download url: got %q, want %q", res.DownloadURL, want)
	}
	if res.Checksum != "" {
		t.Fatalf("latest release path carries no checksum, got %q", res.Checksum)
	}
}

func TestNegotiateLatestRejectsPrerelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"tag_name":"0.14.0-dev","prerelease":true,"assets":[{"name":"a","browser_download_url":"x"}]}`)
	}))
	defer server.Close()

	n := newTestNegotiator(t, server.URL, "", "")
	if _, err := n.Negotiate(context.Background(), "", testTarget); err == nil {
		t.Fatal("expected error for pre-release")
	}
}

func TestNegotiateLatestRequiresAssets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"tag_name":"0.13.0","prerelease":false,"assets":[]}`)
	}))
	defer server.Close()

	n := newTestNegotiator(t, server.URL, "", "")
	if _, err := n.Negotiate(context.Background(), "", testTarget); err == nil {
		t.Fatal("expected error for release without assets")
	}
}

func TestNegotiateLatestUsesDiskCache(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		fmt.Fprint(w, `{"tag_name":"0.13.0","prerelease":false,"assets":[{"name":"a","browser_download_url":"x"}]}`)
	}))
	defer server.Close()

	n := NewNegotiator(http.DefaultClient, t.TempDir())
	n.latestReleaseURL = server.URL

	for i := 0; i < 2; i++ {
		if _, err := n.Negotiate(context.Background(), "", testTarget); err != nil {
			t.Fatalf("Negotiate %d: %v", i, err)
		}
	}
	if hits != 1 {
		t.Fatalf("expected 1 release query, got %d", hits)
	}
}

func TestNegotiateCompatibleTrimsAndEncodesVersion(t *testing.T) {
	var gotZig, gotCompat string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotZig = r.URL.Query().Get("zig_version")
		gotCompat = r.URL.Query().Get("compatibility")
		fmt.Fprint(w, `{"version":"0.13.0","aarch64-macos":{"tarball":"https://builds.example.test/zls-aarch64-macos-0.13.0.tar.xz","shasum":"abc123","size":"42"}}`)
	}))
	defer server.Close()

	n := newTestNegotiator(t, "", server.URL, "")
	res, err := n.Negotiate(context.Background(), "0.13.0\n", testTarget)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}

	if gotZig != "0.13.0" {
		t.Fatalf("zig_version param: got %q", gotZig)
	}
	if gotCompat != "only-runtime" {
		t.Fatalf("compatibility param: got %q", gotCompat)
	}
	if res.Version != "0.13.0" {
		t.Fatalf("version: got %q", res.Version)
	}
	if res.Checksum != "abc123" {
		t.Fatalf("checksum: got %q", res.Checksum)
	}
}

func TestNegotiateCompatibleNormalizesTarXz(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"version":"0.13.0","aarch64-macos":{"tarball":"https://builds.example.test/zls-aarch64-macos-0.13.0.tar.xz","shasum":"","size":"42"}}`)
	}))
	defer server.Close()

	n := newTestNegotiator(t, "", server.URL, "")
	res, err := n.Negotiate(context.Background(), "0.13.0", testTarget)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	want := "https://builds.example.test/zls-aarch64-macos-0.13.0.tar.gz"
	if res.DownloadURL != want {
		t.Fatalf("download url: got %q, want %q", res.DownloadURL, want)
	}
}

func TestNegotiateCompatibleMissingPlatform(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"version":"0.13.0","x86_64-linux":{"tarball":"t","shasum":"","size":"1"}}`)
	}))
	defer server.Close()

	n := newTestNegotiator(t, "", server.URL, "")
	_, err := n.Negotiate(context.Background(), "0.13.0", testTarget)
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestNegotiateCompatibleMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	n := newTestNegotiator(t, "", server.URL, "")
	if _, err := n.Negotiate(context.Background(), "0.13.0", testTarget); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNormalizeTarballURL(t *testing.T) {
	if got := normalizeTarballURL("a/b.tar.xz"); got != "a/b.tar.gz" {
		t.Fatalf("got %q", got)
	}
	if got := normalizeTarballURL("a/b.tar.gz"); got != "a/b.tar.gz" {
		t.Fatalf("got %q", got)
	}
	if got := normalizeTarballURL("a/b.zip"); got != "a/b.zip" {
		t.Fatalf("got %q", got)
	}
}
