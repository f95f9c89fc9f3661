package model

// The category vocabulary is closed and kind-specific: a record is only
// valid when its category belongs to the set for its kind.

var incomeCategories = []string{
	"급여",     // salary
	"용돈",     // allowance
	"상여",     // bonus
	"금융수입", // interest, dividends
	"기타수입", // other income
}

var expenseCategories = []string{
	"식비",      // food
	"생활",      // daily living
	"교통",      // transport
	"숙박",      // lodging
	"문화/여가", // culture, leisure
	"의료/건강", // medical, health
	"쇼핑",      // shopping
	"기타지출",  // other expense
}

// Categories returns the allowed category names for the given kind,
// in display order. The returned slice must not be mutated.
func Categories(kind Kind) []string {
	switch kind {
	case KindIncome:
		return incomeCategories
	case KindExpense:
		return expenseCategories
	}
	return nil
}

// ValidCategory reports whether name belongs to the vocabulary for kind.
func ValidCategory(kind Kind, name string) bool {
	for _, c := range Categories(kind) {
		if c == name {
			return true
		}
	}
	return false
}
