package service

import (
	"fmt"
	"strings"

	"github.com/CubeDr/hyuni-pay/internal/models"
)

// renderSummary builds the copyable settlement text: grand total, the
// shared pool with its item names, one line per payer with their owed
// amount and attributed items, then a footer with the bank account and a
// share link. Currency formatting lives entirely here; the engine only
// ever sees integers.
func renderSummary(payment *models.Payment, settlement models.Settlement, bankAccount, shareBaseURL string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "현이 페이 정산: ₩%s\n\n", formatWon(settlement.GrandTotal))

	if len(settlement.SharedItems) > 0 {
		fmt.Fprintf(&b, "공동: %s (1인당 ₩%s)\n\n",
			joinItemNames(settlement.SharedItems),
			formatWon(settlement.PerPersonSharedCost))
	}

	for _, share := range settlement.Shares {
		fmt.Fprintf(&b, "%s: ₩%s\n", share.Name, formatWon(share.Owed))
		if len(share.Items) > 0 {
			fmt.Fprintf(&b, "  (%s)\n", joinItemNames(share.Items))
		}
	}

	if bankAccount != "" {
		fmt.Fprintf(&b, "\n%s", bankAccount)
	}
	fmt.Fprintf(&b, "\n%s#%s\n", shareBaseURL, payment.ID)

	return b.String()
}

func joinItemNames(items []models.Item) string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return strings.Join(names, ", ")
}

// formatWon renders an amount with thousands separators (1234567 → "1,234,567").
func formatWon(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
