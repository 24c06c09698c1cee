package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestLoadDataset_Embedded(t *testing.T) {
	records, err := LoadDataset("")
	if err != nil {
		t.Fatalf("embedded dataset: %v", err)
	}
	testutil.AssertEqual(t, "poi count", len(records), 25)
	testutil.AssertEqual(t, "first id", records[0].ID, "praca_tiradentes")
	testutil.AssertEqual(t, "first pos", records[0].Pos, [2]int{8935, 5691})
	if strings.Contains(records[0].Description, "\n") {
		t.Fatal("folded descriptions should not contain newlines")
	}
	if err := CheckBounds(records, FallbackMapWidth, FallbackMapHeight); err != nil {
		t.Fatalf("embedded dataset outside the stock map: %v", err)
	}
}

func TestParseDataset_Empty(t *testing.T) {
	_, err := ParseDataset([]byte("pois: []\n"))
	if !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestParseDataset_AggregatesProblems(t *testing.T) {
	data := []byte(`
pois:
  - id: good_one
    name: Good
    pos: [1, 2]
  - id: Bad-Id
    name: ""
    pos: [-1, 0]
  - id: good_one
    name: Duplicate
    pos: [3, 4]
`)
	_, err := ParseDataset(data)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	for _, want := range []string{"lowercase", "name is required", "must not be negative", "already used by poi 0"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q does not mention %q", msg, want)
		}
	}
}

func TestParseDataset_BadYAML(t *testing.T) {
	if _, err := ParseDataset([]byte("pois: [")); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestLoadDataset_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	data := "pois:\n  - id: a\n    name: A\n    pos: [10, 20]\n    image: a.png\n    description: hello\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	records, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	testutil.AssertEqual(t, "record", records[0], Record{ID: "a", Name: "A", Pos: [2]int{10, 20}, Image: "a.png", Description: "hello"})

	if _, err := LoadDataset(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestCheckBounds(t *testing.T) {
	records := []Record{{ID: "in", Pos: [2]int{99, 99}}, {ID: "out", Pos: [2]int{100, 5}}}
	err := CheckBounds(records, 100, 100)
	if err == nil || !strings.Contains(err.Error(), "out") || strings.Contains(err.Error(), "poi in ") {
		t.Fatalf("expected only 'out' to be reported, got %v", err)
	}
}
