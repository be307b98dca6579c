package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/catalog"
)

type noopLogger struct{}

func (noopLogger) Info(string, map[string]any)  {}
func (noopLogger) Error(string, map[string]any) {}

func TestList_MissingFile_SeedsDefaults(t *testing.T) {
	dir := t.TempDir()
	c := catalog.New(dir, noopLogger{})

	names, err := c.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(names) == 0 {
		t.Fatal("expected seeded catalog entries")
	}
	if _, err := os.Stat(filepath.Join(dir, catalog.FileName)); err != nil {
		t.Errorf("expected seeded file on disk: %v", err)
	}

	ok, err := c.Contains("mpesa-ke")
	if err != nil || !ok {
		t.Errorf("expected seeded catalog to contain mpesa-ke (ok=%v, err=%v)", ok, err)
	}
}

func TestList_SkipsBlanksAndComments(t *testing.T) {
	dir := t.TempDir()
	content := "# header\nvisa-ng\n\n  mpesa-ke  \n# trailing\n"
	if err := os.WriteFile(filepath.Join(dir, catalog.FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := catalog.New(dir, noopLogger{}).List()
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"visa-ng", "mpesa-ke"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFilter_MatchesSubstringCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	content := "visa-ng\nmastercard-ng\nmpesa-ke\n"
	if err := os.WriteFile(filepath.Join(dir, catalog.FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	c := catalog.New(dir, noopLogger{})

	got, err := c.Filter("NG")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "visa-ng" || got[1] != "mastercard-ng" {
		t.Errorf("unexpected filter result: %v", got)
	}

	all, err := c.Filter("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("empty filter should return everything, got %v", all)
	}

	none, err := c.Filter("pix")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %v", none)
	}
}
