package graph

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/vanshika/bankcore/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUpsertAccountSendsCustomerAndAccountParams(t *testing.T) {
	client := NewMemoryClient()
	mirror := NewMirror(client, testLogger())

	customer := domain.NewCustomer(domain.NewSequence("CUST"), domain.PremiumCustomer, "Grace Singh", 37, "+1-555-0033", "3 Cedar Ln")
	account := domain.RestoreCheckingAccount("ACC009", customer, domain.MustMoney("420.50"), domain.MustMoney("1000"))

	if err := mirror.UpsertAccount(context.Background(), account); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	calls := client.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 query, got %d", len(calls))
	}
	params := calls[0].Params
	if params["number"] != "ACC009" {
		t.Errorf("expected account number ACC009, got %v", params["number"])
	}
	if params["customerId"] != "CUST001" {
		t.Errorf("expected customer id CUST001, got %v", params["customerId"])
	}
	if params["feesWaived"] != true {
		t.Errorf("expected waived fees for a premium customer, got %v", params["feesWaived"])
	}
	if params["balance"] != "420.5" {
		t.Errorf("expected balance as string, got %v", params["balance"])
	}
	if !strings.Contains(calls[0].Query, ":OWNS") {
		t.Error("expected the ownership edge in the upsert query")
	}
}

func TestUpsertTransactionWithoutTransferSkipsLink(t *testing.T) {
	client := NewMemoryClient()
	mirror := NewMirror(client, testLogger())

	tx := domain.Transaction{
		ID:            "TXN003",
		AccountNumber: "ACC001",
		Type:          domain.TypeDeposit,
		Amount:        domain.MustMoney("100"),
		BalanceAfter:  domain.MustMoney("600"),
		Timestamp:     time.Now(),
	}
	if err := mirror.UpsertTransaction(context.Background(), tx); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	calls := client.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 query for a plain deposit, got %d", len(calls))
	}
	if calls[0].Params["transactionId"] != "TXN003" {
		t.Errorf("expected transaction id TXN003, got %v", calls[0].Params["transactionId"])
	}
}

func TestUpsertTransactionLinksTransferHalves(t *testing.T) {
	client := NewMemoryClient()
	mirror := NewMirror(client, testLogger())

	tx := domain.Transaction{
		ID:            "TXN004",
		AccountNumber: "ACC001",
		Type:          domain.TypeTransferOut,
		Amount:        domain.MustMoney("50"),
		BalanceAfter:  domain.MustMoney("550"),
		TransferID:    "e1f7e9c2-0000-0000-0000-000000000000",
		Timestamp:     time.Now(),
	}
	if err := mirror.UpsertTransaction(context.Background(), tx); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	calls := client.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected upsert plus link queries, got %d", len(calls))
	}
	if !strings.Contains(calls[1].Query, ":TRANSFER") {
		t.Errorf("expected the TRANSFER edge query, got %q", calls[1].Query)
	}
	if calls[1].Params["transferId"] != tx.TransferID {
		t.Errorf("expected the link to carry the transfer id, got %v", calls[1].Params["transferId"])
	}
}

func TestMirrorWrapsClientErrors(t *testing.T) {
	cause := errors.New("connection reset")
	client := NewMemoryClient().WithError(cause)
	mirror := NewMirror(client, testLogger())

	tx := domain.Transaction{ID: "TXN005", AccountNumber: "ACC001", Type: domain.TypeDeposit, Amount: domain.MustMoney("1"), BalanceAfter: domain.MustMoney("1")}
	err := mirror.UpsertTransaction(context.Background(), tx)
	if !errors.Is(err, cause) {
		t.Errorf("expected the client error to be wrapped, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "TXN005") {
		t.Errorf("expected the error to name the transaction, got %v", err)
	}
}
