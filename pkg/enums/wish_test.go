package enums

import "testing"

func TestParseWishCategory(t *testing.T) {
	for _, valid := range []string{"STUDY", "HOBBY", "TRAVEL", "HEALTH", "CAREER", "OTHER"} {
		category, err := ParseWishCategory(valid)
		if err != nil {
			t.Fatalf("ParseWishCategory(%q) returned error: %v", valid, err)
		}
		if !category.IsValid() {
			t.Fatalf("parsed category %q should be valid", category)
		}
	}

	if _, err := ParseWishCategory("study"); err == nil {
		t.Fatal("lowercase category should be rejected")
	}
	if _, err := ParseWishCategory("SHOPPING"); err == nil {
		t.Fatal("unknown category should be rejected")
	}
}

func TestParseWishPriority(t *testing.T) {
	for _, valid := range []string{"HIGH", "MEDIUM", "LOW"} {
		priority, err := ParseWishPriority(valid)
		if err != nil {
			t.Fatalf("ParseWishPriority(%q) returned error: %v", valid, err)
		}
		if !priority.IsValid() {
			t.Fatalf("parsed priority %q should be valid", priority)
		}
	}

	if _, err := ParseWishPriority("URGENT"); err == nil {
		t.Fatal("unknown priority should be rejected")
	}
}

func TestWishDefaults(t *testing.T) {
	if DefaultWishCategory != WishCategoryOther {
		t.Fatalf("unexpected default category %s", DefaultWishCategory)
	}
	if DefaultWishPriority != WishPriorityMedium {
		t.Fatalf("unexpected default priority %s", DefaultWishPriority)
	}
}
