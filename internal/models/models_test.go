package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Milk", "milk"},
		{"  Milk  ", "milk"},
		{"Whole   Milk", "whole milk"},
		{"whole milk", "whole milk"},
		{"\tGreek  Yogurt \n", "greek yogurt"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeKeyMergesVariants(t *testing.T) {
	// The dedupe property: spacing and casing variants share a key.
	variants := []string{"Olive Oil", "olive  oil", " OLIVE OIL "}
	want := NormalizeKey(variants[0])
	for _, v := range variants[1:] {
		if NormalizeKey(v) != want {
			t.Errorf("NormalizeKey(%q) != NormalizeKey(%q)", v, variants[0])
		}
	}
}

func TestItemByID(t *testing.T) {
	a := FoodItem{ID: uuid.New(), Name: "Rice"}
	b := FoodItem{ID: uuid.New(), Name: "Beans"}
	p := Place{ID: uuid.New(), Name: "Pantry", Items: []FoodItem{a, b}}

	if got := p.ItemByID(b.ID); got == nil || got.Name != "Beans" {
		t.Errorf("ItemByID(b) = %v, want Beans", got)
	}
	if got := p.ItemByID(uuid.New()); got != nil {
		t.Errorf("ItemByID(unknown) = %v, want nil", got)
	}
}

func TestIsValidSource(t *testing.T) {
	for _, s := range []ItemSource{SourceManual, SourceDepleted, SourceExpiredCleanup} {
		if !IsValidSource(s) {
			t.Errorf("IsValidSource(%q) = false", s)
		}
	}
	if IsValidSource("bought_on_a_whim") {
		t.Error("unknown source should be invalid")
	}
}
