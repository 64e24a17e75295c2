package dataapi

import (
	"context"
	"net/http"
	"testing"
	"time"
)

const (
	// Known active wallet for testing
	testWallet = "0xa5f8d182b6086ac0713e557fc28497e591da1aff"
)

func TestFetchPositions_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client := NewClient(&http.Client{Timeout: 30 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	positions, err := client.FetchPositions(ctx, testWallet, nil)
	if err != nil {
		t.Fatalf("FetchPositions failed: %v", err)
	}

	t.Logf("Positions for wallet %s: %d", testWallet[:10]+"...", len(positions))

	open := OpenPositions(positions)
	t.Logf("Open positions: %d", len(open))

	for i, p := range open {
		if i >= 3 {
			break
		}
		t.Logf("  %s [%s]: %.1f shares @ %.2f (now %.2f)",
			p.Title, p.Outcome, p.Size, p.AvgPrice, p.CurPrice)
		if p.Redeemable {
			t.Errorf("OpenPositions returned a redeemable position: %s", p.Title)
		}
	}
}

func TestFetchPositions_EmptyWallet(t *testing.T) {
	client := NewClient(nil)
	ctx := context.Background()

	if _, err := client.FetchPositions(ctx, "", nil); err == nil {
		t.Error("Expected error for empty wallet, got nil")
	}
}

func TestOpenPositions_Filters(t *testing.T) {
	positions := []RawPosition{
		{Asset: "a", Redeemable: false},
		{Asset: "b", Redeemable: true},
		{Asset: "c", Redeemable: false},
	}

	open := OpenPositions(positions)
	if len(open) != 2 {
		t.Fatalf("Expected 2 open positions, got %d", len(open))
	}
	for _, p := range open {
		if p.Redeemable {
			t.Errorf("position %s is redeemable", p.Asset)
		}
	}
}
