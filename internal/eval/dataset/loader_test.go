package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeJSONL(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pages.jsonl")
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSONL(t *testing.T) {
	path := writeJSONL(t, `{"id":"p1","text":"NEWSWEEK\nOctober 15, 1984","language":"en","expected_title":"The Harvest Begins","expected_date":"1984/10/15","expected_volume_issue":"Vol. 3, No. 2"}

{"id":"p2","text":"Boletín de la reforma","language":"es","expected_title":"","expected_date":"1984/NA/NA","expected_volume_issue":""}
`)

	pages, err := NewLoader(path).Load()
	if err != nil {
		t.Fatal(err)
	}

	if len(pages) != 2 {
		t.Fatalf("loaded %d pages, want 2", len(pages))
	}
	if pages[0].ID != "p1" || pages[0].ExpectedDate != "1984/10/15" {
		t.Errorf("first page = %+v", pages[0])
	}
	if pages[1].Language != "es" || pages[1].ExpectedTitle != "" {
		t.Errorf("second page = %+v", pages[1])
	}
}

func TestLoadSampleLimitsRecords(t *testing.T) {
	path := writeJSONL(t, `{"id":"p1","text":"a"}
{"id":"p2","text":"b"}
{"id":"p3","text":"c"}
`)

	pages, err := NewLoader(path).LoadSample(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Fatalf("loaded %d pages, want 2", len(pages))
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	if _, err := NewLoader("pages.csv").Load(); err == nil {
		t.Fatal("expected an error for unsupported format")
	}
}

func TestLoadJSONLMalformedLine(t *testing.T) {
	path := writeJSONL(t, `{"id":"p1","text":"a"}
not json
`)

	if _, err := NewLoader(path).Load(); err == nil {
		t.Fatal("expected an error for malformed line")
	}
}
