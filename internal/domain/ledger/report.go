package ledger

// CategoryTotal is the net amount and count for one category
type CategoryTotal struct {
	Category Category
	Total    float64
	Count    int
}

// ProfitLoss summarises a set of transactions.
// Financing flows are reported apart from operating profit.
type ProfitLoss struct {
	Revenue        float64
	Expenses       float64 // positive number
	NetProfit      float64
	FinancingIn    float64
	DebtRepaid     float64 // positive number
	NetCashFlow    float64
	ByCategory     map[Category]*CategoryTotal
	TransactionCnt int
}

// Summarize builds a profit and loss report
func Summarize(transactions []*Transaction) *ProfitLoss {
	report := &ProfitLoss{ByCategory: make(map[Category]*CategoryTotal)}

	for _, tx := range transactions {
		cat := tx.Category()
		bucket, ok := report.ByCategory[cat]
		if !ok {
			bucket = &CategoryTotal{Category: cat}
			report.ByCategory[cat] = bucket
		}
		bucket.Total += tx.Amount()
		bucket.Count++
		report.TransactionCnt++
		report.NetCashFlow += tx.Amount()

		switch {
		case cat == CategoryFinancingInflows:
			report.FinancingIn += tx.Amount()
		case cat == CategoryDebtService:
			report.DebtRepaid -= tx.Amount()
		case tx.IsInflow():
			report.Revenue += tx.Amount()
		default:
			report.Expenses -= tx.Amount()
		}
	}

	report.NetProfit = report.Revenue - report.Expenses
	return report
}
