package service

import "storefront/internal/model"

// Vocabulary tables for the query interpreter. Matching is done by plain
// substring membership against the lowercased query, so the tables hold data
// only; the matching algorithm lives in the interpreter and can be extended
// or tested independently of these lists.

// categoryGroup maps a set of trigger words to the catalog category they imply.
type categoryGroup struct {
	Category string
	Triggers []string
}

// ratingGroup maps a set of trigger phrases to a fixed minimum-rating
// threshold. Groups are evaluated in ascending threshold order and later
// matches overwrite earlier ones, so the strongest phrasing wins when a
// query mixes groups ("best rated" beats "decent").
type ratingGroup struct {
	Threshold float64
	Triggers  []string
}

var categoryGroups = []categoryGroup{
	{
		Category: model.CategoryMens,
		Triggers: []string{"men", "mens", "men's", "male"},
	},
	{
		Category: model.CategoryWomens,
		Triggers: []string{"women", "womens", "women's", "ladies", "female"},
	},
	{
		Category: model.CategoryJewelery,
		Triggers: []string{"jewelry", "jewelery", "jewellery", "ring", "necklace", "earring", "bracelet", "accessories"},
	},
	{
		Category: model.CategoryElectronics,
		Triggers: []string{"electronics", "electronic", "tech", "gadget", "device", "computer", "phone", "laptop", "digital"},
	},
}

var ratingGroups = []ratingGroup{
	{Threshold: 3.5, Triggers: []string{"decent", "okay", "average"}},
	{Threshold: 4.0, Triggers: []string{"good rating", "well rated", "good reviews"}},
	{Threshold: 4.2, Triggers: []string{"highly rated", "popular", "recommended"}},
	{Threshold: 4.5, Triggers: []string{"excellent", "best rated", "top rated", "5 star"}},
}

// productKeywords covers product nouns plus material/connectivity/style terms.
var productKeywords = []string{
	"shirt", "jacket", "bag", "backpack", "dress", "top", "jeans", "pants", "shoes", "sneakers",
	"watch", "ring", "necklace", "bracelet", "earring", "phone", "laptop", "tablet",
	"headphone", "speaker", "camera", "monitor", "keyboard", "mouse", "charger",
	"cotton", "leather", "gold", "silver", "wireless", "bluetooth", "casual", "formal",
}

var colorKeywords = []string{
	"black", "white", "red", "blue", "green", "yellow", "pink", "purple", "brown", "gray", "grey",
}

// sizeKeywords includes single-letter tokens ("s", "m", "l") that match as
// substrings of the whole query. They false-positive inside unrelated words;
// a known limitation carried over deliberately rather than switching to
// whole-word matching, which would change observable behavior.
var sizeKeywords = []string{
	"small", "medium", "large", "xl", "xxl", "s", "m", "l",
}
