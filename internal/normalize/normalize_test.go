package normalize

import "testing"

func TestPrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"plain integer", "1234", 1234},
		{"thousands separator", "1,234", 1234},
		{"currency suffix", "5,000원", 5000},
		{"currency symbol and spaces", " ₩ 12,345 ", 12345},
		{"decimal point stripped with digits kept", "980.0", 9800},
		{"empty", "", 0},
		{"whitespace only", "   ", 0},
		{"garbage", "가격미정", 0},
		{"null marker", "nan", 0},
		{"mixed text", "상한가 1,500원/정", 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Price(tt.raw); got != tt.want {
				t.Errorf("Price(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPrice_NeverNegative(t *testing.T) {
	for _, raw := range []string{"-100", "(1,000)", "−42원"} {
		if got := Price(raw); got < 0 {
			t.Errorf("Price(%q) = %d, want >= 0", raw, got)
		}
	}
}

func TestPriceStrict(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"1234", 1234, false},
		{"1,234", 1234, false},
		{" 12,345 ", 12345, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1,234원", 0, true},
	}

	for _, tt := range tests {
		got, err := PriceStrict(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("PriceStrict(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("PriceStrict(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  타이레놀정500밀리그램  ", "타이레놀정500밀리그램"},
		{"nan", ""},
		{"NaN", ""},
		{"null", ""},
		{"-", ""},
		{"", ""},
		{"A11AB03", "A11AB03"},
	}

	for _, tt := range tests {
		if got := Text(tt.raw); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestIngredientFallback(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"644100080", "6441"},
		{"6441", "6441"},
		{"64", "64"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := IngredientFallback(tt.code); got != tt.want {
			t.Errorf("IngredientFallback(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
