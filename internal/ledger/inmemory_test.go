package ledger

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"
)

func TestInMemoryStore_CreditDebit(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	balance, err := s.Credit(ctx, "acct-1", 10_000)
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if balance != 10_000 {
		t.Fatalf("expected balance 10000, got %d", balance)
	}

	balance, err = s.Debit(ctx, "acct-1", 1_500)
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if balance != 8_500 {
		t.Fatalf("expected balance 8500, got %d", balance)
	}

	if _, err := s.Debit(ctx, "acct-1", 9_000); err != ErrInsufficientBalance {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
}

func TestInMemoryStore_UnknownAccountReadsZero(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	balance, err := s.Balance(ctx, "never-seen")
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected zero balance, got %d", balance)
	}

	usage, err := s.Usage(ctx, "never-seen")
	if err != nil {
		t.Fatalf("usage failed: %v", err)
	}
	if usage.Day != 0 || usage.Consumed != 0 {
		t.Fatalf("expected zero usage, got %+v", usage)
	}
}

func TestInMemoryStore_CreditOverflow(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	SeedBalance(s, "acct-1", math.MaxInt64)

	if _, err := s.Credit(ctx, "acct-1", 1); err != ErrBalanceOverflow {
		t.Fatalf("expected overflow error, got %v", err)
	}
}

func TestInMemoryStore_Pool(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	if _, err := s.CreditPool(ctx, 5_000); err != nil {
		t.Fatalf("credit pool failed: %v", err)
	}
	pool, err := s.DebitPool(ctx, 2_000)
	if err != nil {
		t.Fatalf("debit pool failed: %v", err)
	}
	if pool != 3_000 {
		t.Fatalf("expected pool 3000, got %d", pool)
	}

	if _, err := s.DebitPool(ctx, 4_000); err != ErrInsufficientPoolBalance {
		t.Fatalf("expected pool shortfall error, got %v", err)
	}
}

func TestInMemoryStore_PendingLifecycle(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	if _, ok, err := s.Pending(ctx, "acct-1"); err != nil || ok {
		t.Fatalf("expected no pending, got ok=%v err=%v", ok, err)
	}

	release := time.Now().Add(24 * time.Hour).UTC()
	want := Pending{Reference: "ref-1", Amount: 2_000, ReleaseAt: release}
	if err := s.PutPending(ctx, "acct-1", want); err != nil {
		t.Fatalf("put pending failed: %v", err)
	}

	got, ok, err := s.Pending(ctx, "acct-1")
	if err != nil || !ok {
		t.Fatalf("expected pending, got ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("pending mismatch: got %+v want %+v", got, want)
	}

	if err := s.DeletePending(ctx, "acct-1"); err != nil {
		t.Fatalf("delete pending failed: %v", err)
	}
	if _, ok, _ := s.Pending(ctx, "acct-1"); ok {
		t.Fatalf("expected pending cleared")
	}
}

func TestInMemoryStore_WhitelistToggle(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	if allowed, _ := s.Whitelisted(ctx, "acct-1"); allowed {
		t.Fatalf("expected account not whitelisted by default")
	}
	if err := s.SetWhitelisted(ctx, "acct-1", true); err != nil {
		t.Fatalf("set whitelisted failed: %v", err)
	}
	if allowed, _ := s.Whitelisted(ctx, "acct-1"); !allowed {
		t.Fatalf("expected account whitelisted")
	}
	if err := s.SetWhitelisted(ctx, "acct-1", false); err != nil {
		t.Fatalf("unset whitelisted failed: %v", err)
	}
	if allowed, _ := s.Whitelisted(ctx, "acct-1"); allowed {
		t.Fatalf("expected whitelist flag removed")
	}
}

func TestInMemoryStore_StateRoundTrip(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	state, err := s.State(ctx)
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state.Owner != "" || state.Paused {
		t.Fatalf("expected zero state, got %+v", state)
	}

	if err := s.PutState(ctx, State{Owner: "owner-1", Paused: true}); err != nil {
		t.Fatalf("put state failed: %v", err)
	}
	state, _ = s.State(ctx)
	if state.Owner != "owner-1" || !state.Paused {
		t.Fatalf("state mismatch: %+v", state)
	}
}

func TestInMemoryStore_ConcurrentCredits(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	const workers = 10
	const amount = int64(500)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Credit(ctx, "acct-1", amount); err != nil {
				t.Errorf("credit failed: %v", err)
			}
		}()
	}
	wg.Wait()

	balance, _ := s.Balance(ctx, "acct-1")
	if balance != workers*amount {
		t.Fatalf("expected balance %d, got %d", workers*amount, balance)
	}
}
