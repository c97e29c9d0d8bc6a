package pipeline

import (
	"testing"

	"orderdesk/internal"
)

func TestFindOrderDistinguishesOutcomes(t *testing.T) {
	table := []internal.OrderRecord{
		{OrderID: "1003", Email: "a@b.com", Customer: "Anna", Status: "Shipped", Eta: "2026-09-01"},
	}

	found := FindOrder(table, "1003", " A@B.COM ")
	if found.Status != internal.MatchFound || found.Record == nil || found.Record.Customer != "Anna" {
		t.Fatalf("unexpected found result: %+v", found)
	}

	mismatch := FindOrder(table, "1003", "wrong@b.com")
	if mismatch.Status != internal.MatchEmailMismatch || mismatch.Record != nil {
		t.Fatalf("unexpected mismatch result: %+v", mismatch)
	}

	notFound := FindOrder(table, "9999", "a@b.com")
	if notFound.Status != internal.MatchNotFound || notFound.Record != nil {
		t.Fatalf("unexpected not-found result: %+v", notFound)
	}
}

func TestFindOrderFirstMatchWins(t *testing.T) {
	table := []internal.OrderRecord{
		{OrderID: "1003", Email: "a@b.com", Customer: "First", Status: "Shipped"},
		{OrderID: "1003", Email: "a@b.com", Customer: "Second", Status: "Delivered"},
	}
	res := FindOrder(table, "1003", "a@b.com")
	if res.Status != internal.MatchFound || res.Record.Customer != "First" {
		t.Fatalf("expected first row to win: %+v", res)
	}
}

func TestFindOrderMismatchBeforeMatchInTableOrder(t *testing.T) {
	table := []internal.OrderRecord{
		{OrderID: "1003", Email: "other@b.com", Customer: "Other", Status: "Received"},
		{OrderID: "1003", Email: "a@b.com", Customer: "Anna", Status: "Shipped"},
	}
	res := FindOrder(table, "1003", "a@b.com")
	if res.Status != internal.MatchFound || res.Record.Customer != "Anna" {
		t.Fatalf("expected later row to match: %+v", res)
	}
}
