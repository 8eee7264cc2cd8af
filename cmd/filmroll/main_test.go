package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mcaimi/tmux-filmroll/internal/config"
	"github.com/mcaimi/tmux-filmroll/internal/importer"
	"github.com/mcaimi/tmux-filmroll/internal/testsupport"
)

var shotDate = time.Date(2023, 5, 14, 9, 30, 0, 0, time.Local)

type cliTestEnv struct {
	source      string
	destination string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	src := filepath.Join(base, "card")

	mtime := time.Date(2020, 1, 1, 12, 0, 0, 0, time.Local)
	testsupport.WriteBytes(t, filepath.Join(src, "DCIM", "IMG_0001.JPG"), testsupport.JPEGWithDate(shotDate))
	testsupport.WriteBytes(t, filepath.Join(src, "DCIM", "IMG_0002.jpg"), testsupport.JPEGWithDate(shotDate))
	for _, name := range []string{"a.cr2", "b.CR2", "c.Cr2"} {
		testsupport.WriteFile(t, filepath.Join(src, "RAW", name), 64)
	}
	testsupport.WriteBytes(t, filepath.Join(src, "clip.mov"), testsupport.MP4WithCreation(time.Time{}))
	testsupport.WriteFile(t, filepath.Join(src, "notes.txt"), 8)

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		testsupport.SetModTime(t, path, mtime)
		return nil
	})
	if err != nil {
		t.Fatalf("walk fixtures: %v", err)
	}

	return &cliTestEnv{source: src, destination: filepath.Join(base, "library")}
}

func (e *cliTestEnv) args(extra ...string) []string {
	return append([]string{"--source", e.source, "--destination", e.destination}, extra...)
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected %s to be absent, stat err = %v", path, err)
	}
}

func TestMissingPathsAreSyntaxErrors(t *testing.T) {
	env := setupCLITestEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no paths", args: []string{}, want: "--source and --destination are required"},
		{name: "no source", args: []string{"--destination", env.destination}, want: "--source is required"},
		{name: "no destination", args: []string{"--source", env.source, "--count"}, want: "--destination is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.HasPrefix(err.Error(), "syntax error: ") {
				t.Fatalf("unexpected error %q", err)
			}
			requireContains(t, err.Error(), tt.want)
			if !errors.Is(err, config.ErrConfig) {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
			if code := exitCode(err); code == 0 {
				t.Fatal("expected non-zero exit code")
			}
			if stdout != "" {
				t.Fatalf("expected no output before scanning, got %q", stdout)
			}
		})
	}
	requireMissing(t, env.destination)
}

func TestSameSourceAndDestinationRejected(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, "--source", env.source, "--destination", env.source)
	if !errors.Is(err, config.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestCountPrintsPendingFilesPerClass(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, env.args("--count")...)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	requireContains(t, stdout, "Need to import [2] raster files, [3] raw files and [1] video files.")
	requireContains(t, stdout, "total")
	requireMissing(t, env.destination)
}

func TestCountJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, env.args("--count", "--json")...)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	var got countJSON
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if got.Raw != 3 || got.Raster != 2 || got.Video != 1 || got.Total != 6 {
		t.Fatalf("unexpected counts %+v", got)
	}
	if got.PendingBytes <= 0 {
		t.Fatalf("expected pending bytes, got %d", got.PendingBytes)
	}
}

func TestDryRunReportsWithoutWriting(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, env.args("--dryrun")...)
	if err != nil {
		t.Fatalf("dryrun: %v", err)
	}
	requireContains(t, stdout, "Transferring from "+env.source+" to "+env.destination+"....")
	requireContains(t, stdout, "Need to create directory: "+filepath.Join(env.destination, "2023", "5", "14", "rasters"))
	requireContains(t, stdout, "Need to create directory: "+filepath.Join(env.destination, "2020", "1", "1", "raw"))
	requireContains(t, stdout, "Importing ["+filepath.Join(env.source, "clip.mov")+"] to ["+filepath.Join(env.destination, "2020", "1", "1", "video")+"]")
	requireContains(t, stdout, "Dry run: nothing was created or copied.")
	requireMissing(t, env.destination)
}

func TestDryRunLeavesJournalUncreated(t *testing.T) {
	env := setupCLITestEnv(t)
	journalPath := filepath.Join(env.destination, "meta", "journal.db")

	if _, _, err := runCLI(t, env.args("--dryrun", "--journal", journalPath)...); err != nil {
		t.Fatalf("dryrun: %v", err)
	}
	requireMissing(t, journalPath)
	requireMissing(t, env.destination)
}

func TestTransferImportsAndSecondRunSkips(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, env.args()...)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, stdout, "Need to create directory: "+env.destination)

	for _, rel := range []string{
		filepath.Join("2023", "5", "14", "rasters", "IMG_0001.JPG"),
		filepath.Join("2023", "5", "14", "rasters", "IMG_0002.jpg"),
		filepath.Join("2020", "1", "1", "raw", "a.cr2"),
		filepath.Join("2020", "1", "1", "raw", "b.CR2"),
		filepath.Join("2020", "1", "1", "raw", "c.Cr2"),
		filepath.Join("2020", "1", "1", "video", "clip.mov"),
	} {
		if _, err := os.Stat(filepath.Join(env.destination, rel)); err != nil {
			t.Fatalf("expected %s to be imported: %v", rel, err)
		}
	}
	requireMissing(t, filepath.Join(env.destination, importer.LockFileName))

	stdout, _, err = runCLI(t, env.args("--json")...)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	var summary summaryJSON
	if err := json.Unmarshal([]byte(stdout), &summary); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if summary.Copied != 0 || summary.Skipped != 6 || summary.Failed != 0 {
		t.Fatalf("unexpected second run summary %+v", summary)
	}
}

func TestTransferDoesNotOverwrite(t *testing.T) {
	env := setupCLITestEnv(t)

	existing := filepath.Join(env.destination, "2020", "1", "1", "raw", "a.cr2")
	testsupport.WriteBytes(t, existing, []byte("keep me"))

	stdout, _, err := runCLI(t, env.args("--workers", "4")...)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, stdout, "Skipping existing file "+existing)

	data, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "keep me" {
		t.Fatalf("existing file was overwritten: %q", data)
	}
}

func TestJournalAndHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	journalPath := filepath.Join(t.TempDir(), "journal.db")

	if _, _, err := runCLI(t, env.args("--journal", journalPath, "--json")...); err != nil {
		t.Fatalf("import: %v", err)
	}

	stdout, _, err := runCLI(t, "history", "--journal", journalPath, "--json")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var runs []struct {
		ID     string `json:"id"`
		Copied int    `json:"copied"`
	}
	if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if len(runs) != 1 || runs[0].Copied != 6 {
		t.Fatalf("unexpected runs %+v", runs)
	}

	stdout, _, err = runCLI(t, "history", "--journal", journalPath, "--run", runs[0].ID)
	if err != nil {
		t.Fatalf("history --run: %v", err)
	}
	requireContains(t, stdout, "clip.mov")
	requireContains(t, stdout, "copied")
}

func TestHistoryRequiresJournal(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, _, err := runCLI(t, "history")
	if err == nil || !strings.Contains(err.Error(), "no journal configured") {
		t.Fatalf("expected missing journal error, got %v", err)
	}
}

func TestConfigFileRestrictsExtensions(t *testing.T) {
	env := setupCLITestEnv(t)
	cfg := testsupport.NewConfig(t, testsupport.WithExtensions([]string{".cr2"}, []string{".jpg"}, []string{}))
	path := testsupport.WriteConfigFile(t, cfg)

	stdout, _, err := runCLI(t, env.args("--config", path, "--count", "--json")...)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	var got countJSON
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if got.Raw != 3 || got.Raster != 2 || got.Video != 0 {
		t.Fatalf("unexpected counts %+v", got)
	}
}

func TestMissingConfigFileFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.args("--config", filepath.Join(t.TempDir(), "absent.toml"), "--count")...)
	if !errors.Is(err, config.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestInvalidLogFlagsFail(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.args("--log-format", "xml", "--count")...)
	if !errors.Is(err, config.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "filmroll.toml")

	stdout, _, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, stdout, "sample configuration written to "+target)

	if _, _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected config init to refuse an existing file")
	}

	stdout, _, err = runCLI(t, "config", "show", "--config", target)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, stdout, "# loaded from "+target)
	requireContains(t, stdout, "raw_extensions")

	stdout, _, err = runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show defaults: %v", err)
	}
	requireContains(t, stdout, "# built-in defaults")
}
