package core

import (
	"sort"
	"strings"
)

// categoryIcons maps display names to icon tags for the UI layer.
// Unknown categories fall back to the generic tag.
var categoryIcons = map[string]string{
	"Clothing":          "checkroom",
	"Education":         "school",
	"Entertainment":     "movie",
	"Food & Dining":     "restaurant",
	"Games":             "esports",
	"Groceries":         "grocery_store",
	"Health & Fitness":  "fitness_center",
	"Home":              "home",
	"Insurance":         "security",
	"Personal Care":     "face",
	"Rent":              "home",
	"Savings":           "savings",
	"Shopping":          "shopping_cart",
	"Subscriptions":     "subscriptions",
	"Taxes":             "receipt",
	"Technology":        "phone",
	"Transportation":    "car",
	"Travel":            "flight",
	"Utilities":         "wifi",
	"Gifts & Donations": "gift",

	"Movies & Series":             "tv",
	"Music & Concerts":            "music_note",
	"Sports & Outdoor Activities": "sports",
	"Pet Care":                    "pets",
	"Party & Events":              "celebration",

	// Brand-ish legacy entries kept for old records.
	"Netflix":   "subscriptions",
	"Starbucks": "cafe",
	"Upwork":    "work",
	"Paypal":    "payment",

	"Salary":                             "work",
	"Freelancing":                       "laptop",
	"Business":                          "business",
	"Rental Income":                     "apartment",
	"Other Income":                      "attach_money",
	"Investments (Stocks, Mutual Funds)": "trending_up",
}

// GenericIcon is returned for categories the catalog does not know.
const GenericIcon = "category"

// AllCategories returns the sorted, deduplicated list of known category
// names for pickers.
func AllCategories() []string {
	names := make([]string, 0, len(categoryIcons))
	for name := range categoryIcons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IconFor looks up the icon tag for a category, case-insensitively.
func IconFor(category string) string {
	for name, icon := range categoryIcons {
		if strings.EqualFold(name, category) {
			return icon
		}
	}
	return GenericIcon
}
