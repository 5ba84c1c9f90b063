package sheet

import (
	"reflect"
	"testing"

	"github.com/HnM-Co/Yak-Tech/internal/normalize"
)

var testCols = ColumnMap{
	FieldID:             0,
	FieldName:           1,
	FieldPrice:          2,
	FieldManufacturer:   3,
	FieldIngredientCode: 4,
	FieldIngredientName: 5,
}

func TestIngest(t *testing.T) {
	rows := [][]string{
		{"644100080", "타이레놀정500밀리그램", "51", "한국존슨앤드존슨", "E01200031", "아세트아미노펜"},
		{"", "", "", "", "", ""},                        // blank name
		{"644100090", "무가격정", "0", "제조사", "E012", "성분"}, // zero price
		{"644100100", "가나정", "1,230원", "", "", ""},      // sentinel fills
		{"644100110", "짧은행"},                            // truncated but name present
	}

	drugs, stats := Ingest(rows, testCols)

	if stats.Accepted != 2 {
		t.Fatalf("accepted = %d, want 2 (got stats %+v)", stats.Accepted, stats)
	}
	if stats.BlankName != 1 || stats.ZeroPrice != 2 {
		t.Errorf("stats = %+v, want 1 blank name and 2 zero price", stats)
	}

	first := drugs[0]
	if first.ID != "644100080" || first.Price != 51 {
		t.Errorf("first record = %+v", first)
	}
	if first.Image != nil {
		t.Error("image must be nil at ingestion time")
	}

	second := drugs[1]
	if second.Price != 1230 {
		t.Errorf("price = %d, want 1230", second.Price)
	}
	if second.Manufacturer != normalize.UnknownManufacturer {
		t.Errorf("manufacturer = %q, want sentinel", second.Manufacturer)
	}
	if second.IngredientCode != normalize.UnknownIngredientCode {
		t.Errorf("ingredientCode = %q, want %q; the sheet path must not derive a prefix fallback",
			second.IngredientCode, normalize.UnknownIngredientCode)
	}
	if second.IngredientName != normalize.UnknownIngredientName {
		t.Errorf("ingredientName = %q, want sentinel", second.IngredientName)
	}
	if second.Category != normalize.DefaultCategory {
		t.Errorf("category = %q, want default", second.Category)
	}
}

func TestIngest_RowOrderPreserved(t *testing.T) {
	rows := [][]string{
		{"C", "씨정", "30", "", "", ""},
		{"A", "에이정", "10", "", "", ""},
		{"B", "비정", "20", "", "", ""},
	}

	drugs, _ := Ingest(rows, testCols)

	got := []string{drugs[0].ID, drugs[1].ID, drugs[2].ID}
	want := []string{"C", "A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestIngest_SyntheticIDs(t *testing.T) {
	cols := ColumnMap{FieldName: 0, FieldPrice: 1}
	rows := [][]string{
		{"에이정", "10"},
		{"", "99"}, // skipped, must not consume a sequence number
		{"비정", "20"},
	}

	drugs, _ := Ingest(rows, cols)

	if len(drugs) != 2 {
		t.Fatalf("accepted = %d, want 2", len(drugs))
	}
	if drugs[0].ID != normalize.SyntheticIDPrefix+"0" {
		t.Errorf("first id = %q, want %q", drugs[0].ID, normalize.SyntheticIDPrefix+"0")
	}
	if drugs[1].ID != normalize.SyntheticIDPrefix+"1" {
		t.Errorf("second id = %q, want %q", drugs[1].ID, normalize.SyntheticIDPrefix+"1")
	}
}

func TestIngest_Idempotent(t *testing.T) {
	rows := [][]string{
		{"644100080", "타이레놀정", "51", "존슨", "E012", "아세트아미노펜"},
		{"", "nan", "0", "", "", ""},
		{"644100100", "가나정", "1,230", "", "", ""},
	}

	first, firstStats := Ingest(rows, testCols)
	second, secondStats := Ingest(rows, testCols)

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same input produced different records")
	}
	if firstStats != secondStats {
		t.Errorf("stats differ between runs: %+v vs %+v", firstStats, secondStats)
	}
}

func TestIngest_AccountingIdentity(t *testing.T) {
	rows := [][]string{
		{"1", "에이정", "10", "", "", ""},
		{"2", "", "10", "", "", ""},
		{"3", "비정", "0", "", "", ""},
		{"4", "씨정", "원", "", "", ""}, // normalizes to 0
		{"5", "디정", "40", "", "", ""},
	}

	_, stats := Ingest(rows, testCols)

	total := stats.Accepted + stats.BlankName + stats.ZeroPrice + stats.MalformedRows
	if total != len(rows) {
		t.Errorf("outcome total = %d, want %d rows", total, len(rows))
	}
	if stats.Accepted != 2 {
		t.Errorf("accepted = %d, want 2", stats.Accepted)
	}
}
