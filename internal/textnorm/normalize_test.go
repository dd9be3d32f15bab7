package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
		{
			name:  "accent folding",
			input: "Luminária LED",
			want:  []string{"luminaria", "led"},
		},
		{
			name:  "cedilla and tilde",
			input: "Iluminação Decoração",
			want:  []string{"iluminacao", "decoracao"},
		},
		{
			name:  "short tokens dropped",
			input: "Plafon de embutir 12W",
			want:  []string{"plafon", "embutir", "12w"},
		},
		{
			name:  "hyphen and comma separators",
			input: "spot-embutir,branco  fosco",
			want:  []string{"spot", "embutir", "branco", "fosco"},
		},
		{
			name:  "duplicates retained",
			input: "led LED Led",
			want:  []string{"led", "led", "led"},
		},
		{
			name:  "only separators",
			input: " ,- \t\n",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Luminária Pendente Dourada - Alumínio, 40W",
		"Plafon de embutir LED 12W branco",
		"ÁÉÍÓÚ àèìòù ãõ ç",
		"",
	}

	for _, input := range inputs {
		first := Normalize(input)
		second := Normalize(Join(first))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Normalize not idempotent for %q: %v then %v", input, first, second)
		}
	}
}

func TestFold(t *testing.T) {
	if got := Fold("ACRÍLICO Fosco"); got != "acrilico fosco" {
		t.Errorf("Fold() = %q, want %q", got, "acrilico fosco")
	}
	if got := Fold(""); got != "" {
		t.Errorf("Fold(\"\") = %q, want empty", got)
	}
}

func TestStripAccents_KeepsCase(t *testing.T) {
	if got := StripAccents("Luminária"); got != "Luminaria" {
		t.Errorf("StripAccents() = %q, want %q", got, "Luminaria")
	}
}
