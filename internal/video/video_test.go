package video

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteConcatList(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "inputs.txt")

	if err := writeConcatList([]string{"s0.mp4", "/abs/s1.mp4"}, listPath); err != nil {
		t.Fatalf("writeConcatList failed: %v", err)
	}

	data, err := os.ReadFile(listPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), string(data))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "file '") || !strings.HasSuffix(line, "'") {
			t.Errorf("malformed concat entry: %q", line)
		}
	}
	if !strings.Contains(lines[1], "/abs/s1.mp4") {
		t.Errorf("absolute path lost: %q", lines[1])
	}
}

func TestWriteConcatListReportsCreateFailure(t *testing.T) {
	listPath := filepath.Join(t.TempDir(), "no_such_dir", "inputs.txt")
	if err := writeConcatList([]string{"s0.mp4"}, listPath); err == nil {
		t.Error("expected an error when the list file cannot be created")
	}
}

func TestQualityArgs(t *testing.T) {
	tests := []struct {
		encoder string
		quality int
		want    string
	}{
		{"h264_videotoolbox", 75, "7500k"},
		{"h264_nvenc", 28, "28"},
		{"libx264", 23, "23"},
	}
	for _, tt := range tests {
		args := qualityArgs(tt.encoder, tt.quality)
		if len(args) < 2 || args[1] != tt.want {
			t.Errorf("qualityArgs(%s, %d) = %v, want value %s", tt.encoder, tt.quality, args, tt.want)
		}
	}
}
