package payment

// Entry fees per race category, in rupees. The category strings double as
// the form values, so they stay human readable.
var feeTable = map[string]int{
	"5 kilometer":  250,
	"10 kilometer": 500,
	"21 kilometer": 500,
}

// categoryOrder keeps the form dropdown in distance order.
var categoryOrder = []string{"5 kilometer", "10 kilometer", "21 kilometer"}

// FeeFor resolves the entry fee for a race category.
// Unknown categories are a client error, never a default fee.
func FeeFor(category string) (int, error) {
	fee, ok := feeTable[category]
	if !ok {
		return 0, ErrInvalidCategory
	}
	return fee, nil
}

// Categories returns the supported race categories in display order.
func Categories() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}
