package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lehigh-university-libraries/pagemeta/internal/metadata"
)

func TestNeedsFallback(t *testing.T) {
	p := &Processor{opts: Options{Threshold: 0.5}}

	tests := []struct {
		name   string
		result metadata.ExtractionResult
		want   bool
	}{
		{
			name: "confident result with all fields",
			result: metadata.ExtractionResult{
				Title:                metadata.Field{Value: "The Harvest Begins"},
				Date:                 metadata.Field{Value: "1984/10/15"},
				ExtractionConfidence: 0.8,
			},
			want: false,
		},
		{
			name: "missing title",
			result: metadata.ExtractionResult{
				Date:                 metadata.Field{Value: "1984/10/15"},
				ExtractionConfidence: 0.8,
			},
			want: true,
		},
		{
			name: "missing date",
			result: metadata.ExtractionResult{
				Title:                metadata.Field{Value: "The Harvest Begins"},
				ExtractionConfidence: 0.8,
			},
			want: true,
		},
		{
			name: "low aggregate confidence",
			result: metadata.ExtractionResult{
				Title:                metadata.Field{Value: "The Harvest Begins"},
				Date:                 metadata.Field{Value: "1984/10/15"},
				ExtractionConfidence: 0.3,
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.needsFallback(&tt.result); got != tt.want {
				t.Errorf("needsFallback() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollectDocuments(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.PDF", "notes.txt", "c.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "d.pdf"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := collectDocuments(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(paths) != 4 {
		t.Fatalf("found %d documents, want 4: %v", len(paths), paths)
	}
	for i := 1; i < len(paths); i++ {
		if paths[i-1] > paths[i] {
			t.Errorf("paths not sorted: %v", paths)
		}
	}
	for _, p := range paths {
		if filepath.Ext(p) == ".txt" {
			t.Errorf("non-PDF collected: %s", p)
		}
	}
}
