package models

import (
	"encoding/json"
	"strings"
	"testing"
)

// Panel clients read the description field capitalized; the rest of the
// document stays lowerCamel.
func TestProductJSONFieldNames(t *testing.T) {
	out, err := json.Marshal(Product{
		ProductName: "Sourdough Loaf",
		Description: "Stone baked",
		Category:    CategoryBakery,
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	body := string(out)
	if !strings.Contains(body, `"Description":"Stone baked"`) {
		t.Fatalf("expected capitalized Description key, got %s", body)
	}
	if !strings.Contains(body, `"productName":"Sourdough Loaf"`) {
		t.Fatalf("expected lowerCamel productName key, got %s", body)
	}
}

func TestValidCategory(t *testing.T) {
	for _, category := range []string{CategoryBakery, CategorySweeteners, CategoryFoods} {
		if !ValidCategory(category) {
			t.Fatalf("expected %q to be a valid category", category)
		}
	}
	if ValidCategory("Beverages") {
		t.Fatal("expected unknown category to be rejected")
	}
}
