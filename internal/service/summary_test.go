package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CubeDr/hyuni-pay/internal/models"
)

func TestFormatWon(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-5500, "-5,500"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, formatWon(test.amount), "amount %d", test.amount)
	}
}

func TestRenderSummary(t *testing.T) {
	payment := &models.Payment{ID: "pay-1"}
	settlement := models.Settlement{
		Shares: []models.PayerShare{
			{PayerID: "a", Name: "현이", Owed: 8000, Items: []models.Item{
				{Name: "비빔밥"},
			}},
			{PayerID: "b", Name: "민수", Owed: 2000},
		},
		SharedItems:         []models.Item{{Name: "파전"}, {Name: "막걸리"}},
		PerPersonSharedCost: 2000,
		GrandTotal:          10000,
	}

	got := renderSummary(payment, settlement, "카카오뱅크 3333-01-1234567", "pay.hyuni.dev")

	want := "현이 페이 정산: ₩10,000\n\n" +
		"공동: 파전, 막걸리 (1인당 ₩2,000)\n\n" +
		"현이: ₩8,000\n" +
		"  (비빔밥)\n" +
		"민수: ₩2,000\n" +
		"\n카카오뱅크 3333-01-1234567" +
		"\npay.hyuni.dev#pay-1\n"
	assert.Equal(t, want, got)
}

func TestRenderSummaryWithoutSharedOrBank(t *testing.T) {
	payment := &models.Payment{ID: "pay-2"}
	settlement := models.Settlement{
		Shares:     []models.PayerShare{{PayerID: "a", Name: "현이", Owed: 500}},
		GrandTotal: 500,
	}

	got := renderSummary(payment, settlement, "", "pay.hyuni.dev")

	assert.NotContains(t, got, "공동")
	assert.Contains(t, got, "현이: ₩500\n")
	assert.Contains(t, got, "\npay.hyuni.dev#pay-2\n")
}
