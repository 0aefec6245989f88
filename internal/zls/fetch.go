package zls

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"zigls/internal/platform"
)

// Fetcher downloads and installs a negotiated zls build into a version
// directory under the install root.
type Fetcher struct {
	client *http.Client
	notify Notifier
	logf   func(format string, args ...any)
}

// NewFetcher builds a fetcher. notify may be nil.
func NewFetcher(client *http.Client, notify Notifier) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	if notify == nil {
		notify = NopNotifier
	}
	return &Fetcher{client: client, notify: notify, logf: func(string, ...any) {}}
}

// SetLogf installs a destination for swallowed-error diagnostics, such as
// stale-directory cleanup failures.
func (f *Fetcher) SetLogf(logf func(format string, args ...any)) {
	if logf != nil {
		f.logf = logf
	}
}

// Fetch makes binaryPath exist and be executable. When the binary is
// already a regular file the download is skipped entirely; repeated
// resolution for the same version must not touch the network. After a fresh
// download, sibling version directories under installRoot are pruned
// best-effort.
func (f *Fetcher) Fetch(ctx context.Context, res Resolution, installRoot, versionDir, binaryPath string, target platform.Target) error {
	if info, err := os.Stat(binaryPath); err == nil && info.Mode().IsRegular() {
		return nil
	}

	f.notify.Notify(PhaseDownloading)

	if err := f.downloadAndExtract(ctx, res, versionDir, target.Archive()); err != nil {
		return fmt.Errorf("failed to download zls: %w", err)
	}

	if target.OS != platform.Windows {
		if err := os.Chmod(binaryPath, 0o755); err != nil {
			return fmt.Errorf("mark zls executable: %w", err)
		}
	}

	f.pruneStaleVersions(installRoot, filepath.Base(versionDir))
	return nil
}

func (f *Fetcher) downloadAndExtract(ctx context.Context, res Resolution, versionDir string, archive platform.ArchiveKind) error {
	if err := os.MkdirAll(versionDir, 0o755); err != nil {
		return fmt.Errorf("prepare version dir: %w", err)
	}

	archivePath, err := f.downloadArchive(ctx, res, versionDir)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(archivePath) }()

	switch archive {
	case platform.ArchiveZip:
		return extractZip(archivePath, versionDir)
	case platform.ArchiveTarGz:
		return extractTarGz(archivePath, versionDir)
	default:
		return fmt.Errorf("unsupported archive kind %q", archive)
	}
}

func (f *Fetcher) downloadArchive(ctx context.Context, res Resolution, versionDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.DownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", res.DownloadURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download %s: unexpected status %s", res.DownloadURL, resp.Status)
	}

	tmpFile, err := os.CreateTemp(versionDir, "zls-download-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write archive: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close archive: %w", err)
	}

	if res.Checksum != "" {
		match, err := verifyChecksum(tmpPath, res.Checksum)
		if err != nil {
			_ = os.Remove(tmpPath)
			return "", err
		}
		if !match {
			_ = os.Remove(tmpPath)
			return "", fmt.Errorf("checksum mismatch for %s", res.DownloadURL)
		}
	}

	return tmpPath, nil
}

// pruneStaleVersions removes sibling version directories left over from
// earlier installs. Each removal is best-effort: one failure is logged and
// does not abort the rest or fail the fetch.
func (f *Fetcher) pruneStaleVersions(installRoot, keep string) {
	entries, err := os.ReadDir(installRoot)
	if err != nil {
		f.logf("prune: read install root: %v", err)
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == keep {
			continue
		}
		if !strings.HasPrefix(entry.Name(), BinaryName+"-") {
			continue
		}
		if err := os.RemoveAll(filepath.Join(installRoot, entry.Name())); err != nil {
			f.logf("prune: remove %s: %v", entry.Name(), err)
		}
	}
}

func verifyChecksum(path, expected string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open for checksum: %w", err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return false, fmt.Errorf("hash archive: %w", err)
	}
	return strings.EqualFold(hex.EncodeToString(h.Sum(nil)), expected), nil
}

func extractZip(archivePath, dest string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		target := filepath.Join(dest, filepath.FromSlash(file.Name))
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, file.Mode()); err != nil {
				return fmt.Errorf("create dir %s: %w", target, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("prepare file %s: %w", target, err)
		}
		rc, err := file.Open()
		if err != nil {
			return fmt.Errorf("open zip entry %s: %w", file.Name, err)
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, file.Mode())
		if err != nil {
			rc.Close()
			return fmt.Errorf("create file %s: %w", target, err)
		}
		if _, err := io.Copy(out, rc); err != nil {
			rc.Close()
			out.Close()
			return fmt.Errorf("copy file %s: %w", target, err)
		}
		rc.Close()
		if err := out.Close(); err != nil {
			return fmt.Errorf("close file %s: %w", target, err)
		}
	}
	return nil
}

func extractTarGz(archivePath, dest string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("gzip reader: %w", err)
	}
	defer gz.Close()

	return untarStream(gz, dest)
}

func untarStream(r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}
		target := filepath.Join(dest, filepath.FromSlash(header.Name))
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(header.Mode)); err != nil {
				return fmt.Errorf("create dir %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("prepare file %s: %w", target, err)
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("create file %s: %w", target, err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return fmt.Errorf("write file %s: %w", target, err)
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("close file %s: %w", target, err)
			}
		default:
			// Ignore other entry types.
		}
	}
	return nil
}
