package zls

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type githubReleaseAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type githubRelease struct {
	TagName    string               `json:"tag_name"`
	Prerelease bool                 `json:"prerelease"`
	Assets     []githubReleaseAsset `json:"assets"`
}

// fetchLatestRelease queries the GitHub API for the newest zls release. The
// release must carry published assets and must not be a pre-release.
func fetchLatestRelease(ctx context.Context, client *http.Client, endpoint string) (githubRelease, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return githubRelease{}, fmt.Errorf("create release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return githubRelease{}, fmt.Errorf("query latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return githubRelease{}, fmt.Errorf("latest release query failed: %s", resp.Status)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return githubRelease{}, fmt.Errorf("decode latest release: %w", err)
	}

	if release.Prerelease {
		return githubRelease{}, fmt.Errorf("latest release %s is a pre-release", release.TagName)
	}
	if len(release.Assets) == 0 {
		return githubRelease{}, fmt.Errorf("latest release %s has no published assets", release.TagName)
	}
	return release, nil
}

func releaseVersion(release githubRelease) string {
	version := strings.TrimPrefix(release.TagName, "v")
	if version == "" {
		version = release.TagName
	}
	return version
}
