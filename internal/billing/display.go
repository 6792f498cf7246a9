package billing

import "fmt"

// FormatSubscriptionPrice renders an amount for admin list views. Amounts of
// 1000 and above display as INR per year, smaller ones as USD per month.
// This is a display convenience only; the stored currency field is the
// record of truth for anything financial.
func FormatSubscriptionPrice(amount float64) string {
	if amount >= 1000 {
		return fmt.Sprintf("₹%s/year", trimAmount(amount))
	}
	return fmt.Sprintf("$%s/month", trimAmount(amount))
}

func trimAmount(amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("%d", int64(amount))
	}
	return fmt.Sprintf("%.2f", amount)
}
