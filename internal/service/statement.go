package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vanshika/bankcore/internal/domain"
)

// StatementGenerator renders a plain-text statement for one account:
// header, newest-first history, and aggregate totals.
type StatementGenerator struct {
	ledger *Ledger
}

// NewStatementGenerator wires the generator to the ledger it reads.
func NewStatementGenerator(ledger *Ledger) *StatementGenerator {
	return &StatementGenerator{ledger: ledger}
}

// Generate builds the statement text for the given account.
func (g *StatementGenerator) Generate(account *domain.Account) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Account: %s - %s\n", account.Number(), account.Customer().Name())
	fmt.Fprintf(&b, "Account Type: %s\n", account.Type())
	fmt.Fprintf(&b, "Current Balance: %s\n", domain.FormatAmount(account.Balance()))

	entries := g.ledger.ByAccountNewestFirst(account.Number())
	if len(entries) == 0 {
		b.WriteString("\nNo transactions recorded for this account.\n")
		return b.String()
	}

	deposits := decimal.Zero
	withdrawals := decimal.Zero
	for _, tx := range entries {
		if tx.Type.Credits() {
			deposits = deposits.Add(tx.Amount)
		} else {
			withdrawals = withdrawals.Add(tx.Amount)
		}
	}

	b.WriteString("\nTRANSACTION HISTORY\n")
	fmt.Fprintf(&b, "%-8s | %-20s | %-12s | %-12s | %s\n", "TXN ID", "DATE/TIME", "TYPE", "AMOUNT", "BALANCE")
	for _, tx := range entries {
		sign := "+"
		if !tx.Type.Credits() {
			sign = "-"
		}
		fmt.Fprintf(&b, "%-8s | %-20s | %-12s | %s%-11s | %s\n",
			tx.ID,
			tx.FormattedTimestamp(),
			tx.Type,
			sign,
			domain.FormatAmount(tx.Amount),
			domain.FormatAmount(tx.BalanceAfter))
	}

	net := deposits.Sub(withdrawals)
	netSign := ""
	if net.Sign() >= 0 {
		netSign = "+"
	}
	fmt.Fprintf(&b, "\nTotal Transactions: %d\n", len(entries))
	fmt.Fprintf(&b, "Total Deposits: %s\n", domain.FormatAmount(deposits))
	fmt.Fprintf(&b, "Total Withdrawals: %s\n", domain.FormatAmount(withdrawals))
	fmt.Fprintf(&b, "Net Change: %s%s\n", netSign, domain.FormatAmount(net))

	return b.String()
}
