package cli

import (
	"bytes"
	"strings"
	"testing"

	"zigls/internal/zls"
)

func TestWriteResolveJSON(t *testing.T) {
	cmd := newResolveCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)

	result := zls.Result{
		Binary:  zls.Binary{Path: "/root/.local/share/zigls/bin/zls-0.13.0/zls", Args: []string{"--enable-debug-log"}},
		Source:  zls.SourceDownload,
		Version: "0.13.0",
	}
	if err := writeResolveJSON(cmd, result); err != nil {
		t.Fatalf("writeResolveJSON: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, `"source": "download"`) {
		t.Fatalf("expected source in output: %s", got)
	}
	if !strings.Contains(got, `"version": "0.13.0"`) {
		t.Fatalf("expected version in output: %s", got)
	}
}

func TestWriteResolveTable(t *testing.T) {
	cmd := newResolveCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)

	result := zls.Result{
		Binary: zls.Binary{Path: "/usr/local/bin/zls"},
		Source: zls.SourcePath,
	}
	writeResolveTable(cmd, result)

	got := buf.String()
	if !strings.Contains(got, "/usr/local/bin/zls") {
		t.Fatalf("expected path in output: %s", got)
	}
	if !strings.Contains(got, "path") {
		t.Fatalf("expected source in output: %s", got)
	}
	if strings.Contains(got, "VERSION") {
		t.Fatalf("expected no version row for a PATH binary: %s", got)
	}
}
