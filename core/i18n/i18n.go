// Package i18n is the static UI string table for the storefront.
package i18n

import "strings"

type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"

	Default = English
)

// Key names one UI string.
type Key string

const (
	BrandName             Key = "brandName"
	Cart                  Key = "cart"
	SearchPlaceholder     Key = "searchPlaceholder"
	All                   Key = "all"
	Electronics           Key = "electronics"
	Fashion               Key = "fashion"
	Home                  Key = "home"
	Books                 Key = "books"
	Sports                Key = "sports"
	Beauty                Key = "beauty"
	DiscoverProducts      Key = "discoverProducts"
	Collection            Key = "collection"
	AddToCart             Key = "addToCart"
	NoProductsFound       Key = "noProductsFound"
	NoProductsDescription Key = "noProductsDescription"
	YourCart              Key = "yourCart"
	CartEmpty             Key = "cartEmpty"
	Remove                Key = "remove"
	Total                 Key = "total"
	Checkout              Key = "checkout"
	Rating                Key = "rating"
)

var translations = map[Language]map[Key]string{
	English: {
		BrandName:             "ShopZone",
		Cart:                  "Cart",
		SearchPlaceholder:     "Search for amazing products...",
		All:                   "All",
		Electronics:           "Electronics",
		Fashion:               "Fashion",
		Home:                  "Home",
		Books:                 "Books",
		Sports:                "Sports",
		Beauty:                "Beauty",
		DiscoverProducts:      "Discover Amazing Products",
		Collection:            "Collection",
		AddToCart:             "Add to Cart",
		NoProductsFound:       "No products found",
		NoProductsDescription: "Try adjusting your search or category filter",
		YourCart:              "Your Cart",
		CartEmpty:             "Your cart is empty",
		Remove:                "Remove",
		Total:                 "Total:",
		Checkout:              "Checkout",
		Rating:                "Rating",
	},
	Arabic: {
		BrandName:             "منطقة التسوق",
		Cart:                  "السلة",
		SearchPlaceholder:     "ابحث عن منتجات رائعة...",
		All:                   "الكل",
		Electronics:           "إلكترونيات",
		Fashion:               "أزياء",
		Home:                  "منزل",
		Books:                 "كتب",
		Sports:                "رياضة",
		Beauty:                "جمال",
		DiscoverProducts:      "اكتشف منتجات رائعة",
		Collection:            "مجموعة",
		AddToCart:             "أضف إلى السلة",
		NoProductsFound:       "لم يتم العثور على منتجات",
		NoProductsDescription: "حاول تعديل البحث أو فلتر الفئة",
		YourCart:              "سلتك",
		CartEmpty:             "سلتك فارغة",
		Remove:                "إزالة",
		Total:                 "الإجمالي:",
		Checkout:              "الدفع",
		Rating:                "التقييم",
	},
}

// T looks up key for lang. Unknown languages use English; unknown keys
// return the key itself.
func T(lang Language, key Key) string {
	table, ok := translations[lang]
	if !ok {
		table = translations[Default]
	}
	if s, ok := table[key]; ok {
		return s
	}
	return string(key)
}

// Parse maps a tag such as "ar", "AR" or "ar-EG" to a supported language.
func Parse(tag string) (Language, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	lang := Language(tag)
	if _, ok := translations[lang]; ok {
		return lang, true
	}
	return Default, false
}

func IsRTL(lang Language) bool {
	return lang == Arabic
}

// Dir is the HTML dir attribute for lang.
func Dir(lang Language) string {
	if IsRTL(lang) {
		return "rtl"
	}
	return "ltr"
}

// Languages lists the supported languages, default first.
func Languages() []Language {
	return []Language{English, Arabic}
}

// Category translates a catalog category name ("Electronics", "All", ...).
func Category(lang Language, name string) string {
	return T(lang, Key(strings.ToLower(name)))
}
