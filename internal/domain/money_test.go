package domain

import "testing"

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"2300", "$2,300.00"},
		{"1234567.891", "$1,234,567.89"},
		{"-15.5", "-$15.50"},
		{"999", "$999.00"},
		{"1000", "$1,000.00"},
	}
	for _, c := range cases {
		if got := FormatAmount(MustMoney(c.in)); got != c.want {
			t.Errorf("FormatAmount(%s): expected %s, got %s", c.in, c.want, got)
		}
	}
}

func TestMoneyTrimsWhitespace(t *testing.T) {
	d, err := Money("  42.50 ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !d.Equal(MustMoney("42.50")) {
		t.Errorf("expected 42.50, got %s", d)
	}
}

func TestMoneyRejectsGarbage(t *testing.T) {
	if _, err := Money("abc"); err == nil {
		t.Error("expected an error for a non-numeric amount")
	}
}

func TestTransactionTypeRoundTrip(t *testing.T) {
	for _, typ := range []TransactionType{TypeDeposit, TypeWithdrawal, TypeTransferIn, TypeTransferOut} {
		parsed, err := ParseTransactionType(typ.String())
		if err != nil {
			t.Fatalf("parse %q: %v", typ.String(), err)
		}
		if parsed != typ {
			t.Errorf("expected %v, got %v", typ, parsed)
		}
	}
}

func TestParseTransactionTypeIsCaseInsensitive(t *testing.T) {
	parsed, err := ParseTransactionType("  TRANSFER in ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed != TypeTransferIn {
		t.Errorf("expected TypeTransferIn, got %v", parsed)
	}

	if _, err := ParseTransactionType("refund"); err == nil {
		t.Error("expected an error for an unknown label")
	}
}

func TestTransactionTypeCredits(t *testing.T) {
	if !TypeDeposit.Credits() || !TypeTransferIn.Credits() {
		t.Error("deposits and transfers in must credit the balance")
	}
	if TypeWithdrawal.Credits() || TypeTransferOut.Credits() {
		t.Error("withdrawals and transfers out must not credit the balance")
	}
}

func TestIsKindMatchesWrappedErrors(t *testing.T) {
	err := NewAccountNotFound("ACC999")
	if !IsKind(err, KindAccountNotFound) {
		t.Error("expected IsKind to match the error's own kind")
	}
	if IsKind(err, KindInvalidAmount) {
		t.Error("expected IsKind to reject a different kind")
	}
	if IsKind(nil, KindAccountNotFound) {
		t.Error("expected IsKind to reject nil")
	}
}
