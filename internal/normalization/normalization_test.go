package normalization

import (
	"reflect"
	"testing"
)

func TestParseInputString(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Fatigue ":  "fatigue",
		"fatigue":   "fatigue",
		" FATIGUE":  "fatigue",
		"  ":        "",
		"Dor Peito": "dor peito",
	}
	for in, want := range cases {
		if got := ParseInputString(in); got != want {
			t.Fatalf("ParseInputString(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSymptomNamesDedupes(t *testing.T) {
	t.Parallel()

	got := SymptomNames([]string{"Racing Heart", "racing heart ", " RACING HEART", "", "Sweating"})
	want := []string{"racing heart", "sweating"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SymptomNames = %v, want %v", got, want)
	}
}

func TestSymptomNamesEmpty(t *testing.T) {
	t.Parallel()

	if got := SymptomNames(nil); len(got) != 0 {
		t.Fatalf("SymptomNames(nil) = %v, want empty", got)
	}
}
