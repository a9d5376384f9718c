package core

import (
	"testing"
	"time"
)

const webhookSecret = "whsec_test_secret"

func TestVerifyStripeSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"customer.subscription.updated","data":{"object":{"customer":"cus_1","status":"active"}}}`)
	now := time.Now()

	header := SignStripePayload(payload, webhookSecret, now)
	if err := VerifyStripeSignature(payload, header, webhookSecret, now); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
}

func TestVerifyStripeSignatureMismatch(t *testing.T) {
	payload := []byte(`{"type":"x"}`)
	now := time.Now()

	header := SignStripePayload(payload, "whsec_other", now)
	if err := VerifyStripeSignature(payload, header, webhookSecret, now); err != ErrBadSignature {
		t.Errorf("expected ErrBadSignature, got %v", err)
	}

	// Tampered body
	header = SignStripePayload(payload, webhookSecret, now)
	if err := VerifyStripeSignature([]byte(`{"type":"y"}`), header, webhookSecret, now); err != ErrBadSignature {
		t.Errorf("expected ErrBadSignature for tampered body, got %v", err)
	}
}

func TestVerifyStripeSignatureStale(t *testing.T) {
	payload := []byte(`{"type":"x"}`)
	now := time.Now()

	header := SignStripePayload(payload, webhookSecret, now.Add(-10*time.Minute))
	if err := VerifyStripeSignature(payload, header, webhookSecret, now); err != ErrStaleSignature {
		t.Errorf("expected ErrStaleSignature, got %v", err)
	}
}

func TestVerifyStripeSignatureMalformed(t *testing.T) {
	payload := []byte(`{}`)
	now := time.Now()

	if err := VerifyStripeSignature(payload, "", webhookSecret, now); err != ErrNoSignature {
		t.Errorf("expected ErrNoSignature, got %v", err)
	}
	if err := VerifyStripeSignature(payload, "t=abc,v1=deadbeef", webhookSecret, now); err != ErrMalformedHeader {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}
	if err := VerifyStripeSignature(payload, "v1=deadbeef", webhookSecret, now); err != ErrMalformedHeader {
		t.Errorf("expected ErrMalformedHeader without timestamp, got %v", err)
	}
}

func TestParseStripeEvent(t *testing.T) {
	ev, err := ParseStripeEvent([]byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"customer":"cus_1"}}}`))
	if err != nil {
		t.Fatalf("ParseStripeEvent failed: %v", err)
	}
	if ev.Type != "checkout.session.completed" {
		t.Errorf("Type = %q", ev.Type)
	}

	if _, err := ParseStripeEvent([]byte(`{"data":{}}`)); err == nil {
		t.Error("expected error for event without type")
	}
}
