package enums

import "fmt"

// WishCategory represents the canonical wish categories.
type WishCategory string

const (
	WishCategoryStudy  WishCategory = "STUDY"
	WishCategoryHobby  WishCategory = "HOBBY"
	WishCategoryTravel WishCategory = "TRAVEL"
	WishCategoryHealth WishCategory = "HEALTH"
	WishCategoryCareer WishCategory = "CAREER"
	WishCategoryOther  WishCategory = "OTHER"
)

var validWishCategories = []WishCategory{
	WishCategoryStudy,
	WishCategoryHobby,
	WishCategoryTravel,
	WishCategoryHealth,
	WishCategoryCareer,
	WishCategoryOther,
}

// DefaultWishCategory is applied when a wish is created without a category.
const DefaultWishCategory = WishCategoryOther

// String implements fmt.Stringer.
func (c WishCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known WishCategory.
func (c WishCategory) IsValid() bool {
	for _, candidate := range validWishCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseWishCategory converts raw input into a WishCategory.
func ParseWishCategory(value string) (WishCategory, error) {
	for _, candidate := range validWishCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wish category %q", value)
}

// WishPriority represents the urgency assigned to a wish.
type WishPriority string

const (
	WishPriorityHigh   WishPriority = "HIGH"
	WishPriorityMedium WishPriority = "MEDIUM"
	WishPriorityLow    WishPriority = "LOW"
)

var validWishPriorities = []WishPriority{
	WishPriorityHigh,
	WishPriorityMedium,
	WishPriorityLow,
}

// DefaultWishPriority is applied when a wish is created without a priority.
const DefaultWishPriority = WishPriorityMedium

// String implements fmt.Stringer.
func (p WishPriority) String() string {
	return string(p)
}

// IsValid reports whether the value is a known WishPriority.
func (p WishPriority) IsValid() bool {
	for _, candidate := range validWishPriorities {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseWishPriority converts raw input into a WishPriority.
func ParseWishPriority(value string) (WishPriority, error) {
	for _, candidate := range validWishPriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wish priority %q", value)
}
