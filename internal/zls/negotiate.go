package zls

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"zigls/internal/platform"
)

const (
	userAgent = "zigls/1.0"

	defaultLatestReleaseURL = "https://api.github.com/repos/zigtools/zls/releases/latest"
	defaultBuildsBaseURL    = "https://builds.zigtools.org"
	defaultSelectVersionURL = "https://releases.zigtools.org/v1/zls/select-version"
)

// ErrUnsupportedPlatform reports that the compatibility endpoint has no
// asset for the current platform target.
var ErrUnsupportedPlatform = errors.New("no zls asset for platform")

// Resolution is the negotiated download for one zls version. Checksum is
// empty on the latest-release path, which publishes no digest.
type Resolution struct {
	Version     string
	DownloadURL string
	Checksum    string
}

// assetInfo mirrors one per-platform descriptor in a select-version
// response.
type assetInfo struct {
	Tarball string `json:"tarball"`
	Shasum  string `json:"shasum"`
	Size    string `json:"size"`
}

// Negotiator determines which remote zls build is compatible with the local
// toolchain. With no local zig it falls back to the newest release.
type Negotiator struct {
	client *http.Client
	cache  releaseCache

	latestReleaseURL string
	buildsBaseURL    string
	selectVersionURL string
}

// NewNegotiator builds a negotiator using the default zigtools endpoints.
// cacheDir, when non-empty, enables the on-disk latest-release cache.
func NewNegotiator(client *http.Client, cacheDir string) *Negotiator {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Negotiator{
		client:           client,
		cache:            releaseCache{dir: cacheDir},
		latestReleaseURL: defaultLatestReleaseURL,
		buildsBaseURL:    defaultBuildsBaseURL,
		selectVersionURL: defaultSelectVersionURL,
	}
}

// Negotiate resolves the zls version and download URL for the given zig
// toolchain version. An empty zigVersion means no local toolchain was found
// and selects the latest-release strategy.
func (n *Negotiator) Negotiate(ctx context.Context, zigVersion string, target platform.Target) (Resolution, error) {
	zigVersion = strings.TrimSpace(zigVersion)
	if zigVersion == "" {
		return n.negotiateLatest(ctx, target)
	}
	return n.negotiateCompatible(ctx, zigVersion, target)
}

func (n *Negotiator) negotiateLatest(ctx context.Context, target platform.Target) (Resolution, error) {
	if cached, ok := n.cache.getLatest(target.Token()); ok {
		return cached, nil
	}

	release, err := fetchLatestRelease(ctx, n.client, n.latestReleaseURL)
	if err != nil {
		return Resolution{}, err
	}

	version := releaseVersion(release)
	res := Resolution{
		Version:     version,
		DownloadURL: n.buildsBaseURL + "/" + target.AssetName(version),
	}
	n.cache.putLatest(target.Token(), res)
	return res, nil
}

func (n *Negotiator) negotiateCompatible(ctx context.Context, zigVersion string, target platform.Target) (Resolution, error) {
	endpoint := fmt.Sprintf("%s?zig_version=%s&compatibility=only-runtime",
		n.selectVersionURL, url.QueryEscape(zigVersion))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Resolution{}, fmt.Errorf("create select-version request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return Resolution{}, fmt.Errorf("query select-version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Resolution{}, fmt.Errorf("select-version query failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Resolution{}, fmt.Errorf("read select-version response: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Resolution{}, fmt.Errorf("parse select-version response: %w", err)
	}

	rawVersion, ok := fields["version"]
	if !ok {
		return Resolution{}, fmt.Errorf("select-version response missing version field")
	}
	var version string
	if err := json.Unmarshal(rawVersion, &version); err != nil {
		return Resolution{}, fmt.Errorf("parse select-version version: %w", err)
	}

	rawAsset, ok := fields[target.Token()]
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, target.Token())
	}
	var asset assetInfo
	if err := json.Unmarshal(rawAsset, &asset); err != nil {
		return Resolution{}, fmt.Errorf("parse zls asset for %s: %w", target.Token(), err)
	}

	return Resolution{
		Version:     version,
		DownloadURL: normalizeTarballURL(asset.Tarball),
		Checksum:    asset.Shasum,
	}, nil
}

// normalizeTarballURL rewrites a .tar.xz asset URL to its .tar.gz sibling.
// Only the gzip form is guaranteed extractable by the fetcher, and the
// build host serves both even when it advertises only the xz name.
func normalizeTarballURL(tarball string) string {
	if strings.HasSuffix(tarball, ".tar.xz") {
		return strings.TrimSuffix(tarball, ".tar.xz") + ".tar.gz"
	}
	return tarball
}
