package pow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"

	"emberbin/internal/paste/apperr"
	"emberbin/internal/paste/store"
)

func newProtocol(t *testing.T) *Protocol {
	t.Helper()
	p, err := New(store.New(store.NewFakeClient()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func solve(t *testing.T, salt string) string {
	t.Helper()
	for n := 0; ; n++ {
		nonce := strconv.Itoa(n)
		h := sha256.Sum256([]byte(salt + nonce))
		if strings.HasPrefix(hex.EncodeToString(h[:]), strings.Repeat("0", Difficulty)) {
			return nonce
		}
	}
}

func TestIssueThenVerify_Succeeds(t *testing.T) {
	p := newProtocol(t)
	ch, err := p.Issue()
	if err != nil {
		t.Fatal(err)
	}
	nonce := solve(t, ch.Salt)

	err = p.Verify(context.Background(), Solution{
		Salt:      ch.Salt,
		Nonce:     nonce,
		Timestamp: strconv.FormatUint(ch.Timestamp, 10),
		Signature: ch.Signature,
	})
	if err != nil {
		t.Fatalf("expected verify to succeed, got %v", err)
	}
}

func TestVerify_ReplayIsRejected(t *testing.T) {
	p := newProtocol(t)
	ch, err := p.Issue()
	if err != nil {
		t.Fatal(err)
	}
	nonce := solve(t, ch.Salt)
	sol := Solution{
		Salt:      ch.Salt,
		Nonce:     nonce,
		Timestamp: strconv.FormatUint(ch.Timestamp, 10),
		Signature: ch.Signature,
	}

	if err := p.Verify(context.Background(), sol); err != nil {
		t.Fatalf("first verify should succeed: %v", err)
	}

	err = p.Verify(context.Background(), sol)
	ae, ok := err.(*apperr.Error)
	if !ok || ae.Kind != apperr.KindUnauthorized || ae.Message != "PoW salt already used" {
		t.Fatalf("expected replay to be rejected with 'PoW salt already used', got %v", err)
	}
}

func TestVerify_MissingHeadersIsBadRequest(t *testing.T) {
	p := newProtocol(t)
	err := p.Verify(context.Background(), Solution{})
	ae, ok := err.(*apperr.Error)
	if !ok || ae.Kind != apperr.KindBadRequest {
		t.Fatalf("expected BadRequest, got %v", err)
	}
}

func TestVerify_BadSignatureIsRejected(t *testing.T) {
	p := newProtocol(t)
	err := p.Verify(context.Background(), Solution{
		Salt:      "fakesalt",
		Nonce:     "123",
		Timestamp: "1234567890",
		Signature: "fakesignature",
	})
	ae, ok := err.(*apperr.Error)
	if !ok || ae.Kind != apperr.KindUnauthorized {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
}

func TestVerify_ExpiredChallengeIsRejected(t *testing.T) {
	p := newProtocol(t)
	p.now = func() time.Time { return time.Unix(1_000_000, 0) }
	ch, err := p.Issue()
	if err != nil {
		t.Fatal(err)
	}
	nonce := solve(t, ch.Salt)

	p.now = func() time.Time { return time.Unix(1_000_000+ValiditySeconds+1, 0) }
	err = p.Verify(context.Background(), Solution{
		Salt:      ch.Salt,
		Nonce:     nonce,
		Timestamp: strconv.FormatUint(ch.Timestamp, 10),
		Signature: ch.Signature,
	})
	ae, ok := err.(*apperr.Error)
	if !ok || ae.Kind != apperr.KindUnauthorized || ae.Message != "PoW challenge expired" {
		t.Fatalf("expected expired challenge rejection, got %v", err)
	}
}

func TestVerify_DifficultyNotMetIsRejected(t *testing.T) {
	p := newProtocol(t)
	ch, err := p.Issue()
	if err != nil {
		t.Fatal(err)
	}
	err = p.Verify(context.Background(), Solution{
		Salt:      ch.Salt,
		Nonce:     "0", // almost certainly does not satisfy the difficulty target
		Timestamp: strconv.FormatUint(ch.Timestamp, 10),
		Signature: ch.Signature,
	})
	ae, ok := err.(*apperr.Error)
	if !ok || ae.Kind != apperr.KindUnauthorized {
		t.Fatalf("expected Unauthorized for unmet difficulty, got %v", err)
	}
}

func TestSaturatingSub_NeverWraps(t *testing.T) {
	if got := saturatingSub(5, 10); got != 0 {
		t.Fatalf("saturatingSub(5, 10) = %d, want 0", got)
	}
	if got := saturatingSub(10, 5); got != 5 {
		t.Fatalf("saturatingSub(10, 5) = %d, want 5", got)
	}
}
