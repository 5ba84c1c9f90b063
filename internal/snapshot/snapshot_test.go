package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/HnM-Co/Yak-Tech/internal/models"
)

func sampleDrugs() []models.Drug {
	return []models.Drug{
		{
			ID:             "644100080",
			Name:           "타이레놀정500밀리그램(아세트아미노펜)",
			IngredientCode: "E01200031",
			IngredientName: "아세트아미노펜",
			Price:          51,
			Manufacturer:   "한국존슨앤드존슨판매(유)",
			Category:       "전문의약품",
		},
		{
			ID:             "644100090",
			Name:           "게보린정",
			IngredientCode: "Unknown",
			IngredientName: "복합/기타성분",
			Price:          120,
			Manufacturer:   "삼진제약(주)",
			Category:       "전문의약품",
		},
	}
}

func TestWrite_EmptyKeepsPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drugs.json")
	previous := []byte(`{"lastUpdated":"2025-08-01","totalCount":1,"drugs":[{"id":"x","name":"y","ingredientCode":"c","ingredientName":"n","price":1,"manufacturer":"m","category":"k","image":null}]}`)
	if err := os.WriteFile(path, previous, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Write(path, Build(nil)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(previous, after) {
		t.Error("empty write modified the previous snapshot")
	}
}

func TestWrite_CountMatchesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drugs.json")
	drugs := sampleDrugs()

	if err := Write(path, Build(drugs)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.TotalCount != len(drugs) {
		t.Errorf("totalCount = %d, want %d", loaded.TotalCount, len(drugs))
	}
	if len(loaded.Drugs) != len(drugs) {
		t.Errorf("drugs length = %d, want %d", len(loaded.Drugs), len(drugs))
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drugs.json")
	drugs := sampleDrugs()

	if err := Write(path, Build(drugs)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded.Drugs, drugs) {
		t.Errorf("round trip changed records:\ngot  %+v\nwant %+v", loaded.Drugs, drugs)
	}
}

func TestWrite_CompactUnescapedOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drugs.json")

	if err := Write(path, Build(sampleDrugs())); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	if strings.Contains(out, "\n") || strings.Contains(out, ": ") {
		t.Error("snapshot is not compact")
	}
	if !strings.Contains(out, "타이레놀정500밀리그램") {
		t.Error("korean text was escaped in output")
	}
	if !strings.Contains(out, `"image":null`) {
		t.Error("image field must serialize as null")
	}
}

func TestWrite_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "drugs.json")

	if err := Write(path, Build(sampleDrugs())); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("snapshot file missing: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}
