package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vanshika/bankcore/internal/domain"
)

const upsertAccountCypher = `
MERGE (c:Customer {customerId: $customerId})
SET c.name = $name,
    c.customerType = $customerType,
    c.feesWaived = $feesWaived
MERGE (a:Account {number: $number})
SET a.accountType = $accountType,
    a.balance = $balance,
    a.status = $status
MERGE (c)-[:OWNS]->(a)`

const upsertTransactionCypher = `
MERGE (t:Transaction {transactionId: $transactionId})
SET t.type = $type,
    t.amount = $amount,
    t.balanceAfter = $balanceAfter,
    t.transferId = $transferId,
    t.recordedAt = $recordedAt
MERGE (a:Account {number: $number})
MERGE (a)-[:POSTED]->(t)`

// Amounts travel as strings so the graph never sees a lossy float.
const linkTransferCypher = `
MATCH (out:Transaction {transferId: $transferId})
WHERE out.type = 'Transfer Out'
MATCH (in:Transaction {transferId: $transferId})
WHERE in.type = 'Transfer In'
MERGE (out)-[:TRANSFER]->(in)`

// Mirror upserts customers, accounts and ledger entries into the graph.
// Transfer halves sharing a correlation id are linked with a TRANSFER edge.
type Mirror struct {
	client Client
	logger *slog.Logger
}

// NewMirror builds a mirror over the given client. A nil logger falls back
// to slog.Default.
func NewMirror(client Client, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{client: client, logger: logger.With("component", "graph-mirror")}
}

// UpsertAccount mirrors the account and its owning customer.
func (m *Mirror) UpsertAccount(ctx context.Context, account *domain.Account) error {
	customer := account.Customer()
	params := map[string]any{
		"customerId":   customer.ID(),
		"name":         customer.Name(),
		"customerType": customer.Type().String(),
		"feesWaived":   customer.HasWaivedFees(),
		"number":       account.Number(),
		"accountType":  account.Type().String(),
		"balance":      account.Balance().String(),
		"status":       account.Status(),
	}
	if _, err := m.client.Run(ctx, upsertAccountCypher, params); err != nil {
		return fmt.Errorf("mirror account %s: %w", account.Number(), err)
	}
	return nil
}

// UpsertTransaction mirrors one ledger entry and, when the entry carries a
// transfer correlation id, links the two halves of the transfer.
func (m *Mirror) UpsertTransaction(ctx context.Context, tx domain.Transaction) error {
	params := map[string]any{
		"transactionId": tx.ID,
		"type":          tx.Type.String(),
		"amount":        tx.Amount.String(),
		"balanceAfter":  tx.BalanceAfter.String(),
		"transferId":    tx.TransferID,
		"recordedAt":    tx.FormattedTimestamp(),
		"number":        tx.AccountNumber,
	}
	if _, err := m.client.Run(ctx, upsertTransactionCypher, params); err != nil {
		return fmt.Errorf("mirror transaction %s: %w", tx.ID, err)
	}

	if tx.TransferID == "" {
		return nil
	}
	if _, err := m.client.Run(ctx, linkTransferCypher, map[string]any{"transferId": tx.TransferID}); err != nil {
		return fmt.Errorf("link transfer %s: %w", tx.TransferID, err)
	}
	return nil
}
