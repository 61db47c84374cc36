package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

const testSigningSecret = "whsec_dGVzdC1zZWNyZXQ="

func signPayload(id, timestamp string, payload []byte) string {
	secret, _ := base64.StdEncoding.DecodeString("dGVzdC1zZWNyZXQ=")
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%s.%s.%s", id, timestamp, payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newWebhookFixture() (*fakeStore, WebhookService) {
	store := newFakeStore()
	config := &utils.Config{}
	config.Webhook.SigningSecret = testSigningSecret
	return store, NewWebhookService(store.repo(), config, zap.NewNop())
}

func signedHeaders(payload []byte) WebhookHeaders {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	return WebhookHeaders{
		ID:        "msg_1",
		Timestamp: ts,
		Signature: signPayload("msg_1", ts, payload),
	}
}

func TestWebhookUserLifecycle(t *testing.T) {
	store, svc := newWebhookFixture()

	created := []byte(`{"type":"user.created","data":{"id":"user_abc","first_name":"Grace","last_name":"Hopper","email_addresses":[{"email_address":"grace@example.com"}]}}`)
	if err := svc.HandleEvent(context.Background(), signedHeaders(created), created); err != nil {
		t.Fatalf("HandleEvent(user.created): %v", err)
	}

	user := store.users["user_abc"]
	if user == nil {
		t.Fatalf("expected user provisioned")
	}
	if user.Email != "grace@example.com" || user.FirstName != "Grace" {
		t.Fatalf("unexpected user fields: %+v", user)
	}

	updated := []byte(`{"type":"user.updated","data":{"id":"user_abc","first_name":"Grace","last_name":"Hopper","email_addresses":[{"email_address":"hopper@example.com"}]}}`)
	if err := svc.HandleEvent(context.Background(), signedHeaders(updated), updated); err != nil {
		t.Fatalf("HandleEvent(user.updated): %v", err)
	}
	if store.users["user_abc"].Email != "hopper@example.com" {
		t.Fatalf("expected email updated, got %s", store.users["user_abc"].Email)
	}

	deleted := []byte(`{"type":"user.deleted","data":{"id":"user_abc"}}`)
	if err := svc.HandleEvent(context.Background(), signedHeaders(deleted), deleted); err != nil {
		t.Fatalf("HandleEvent(user.deleted): %v", err)
	}
	if store.users["user_abc"] != nil {
		t.Fatalf("expected user removed")
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	store, svc := newWebhookFixture()

	payload := []byte(`{"type":"user.created","data":{"id":"user_bad"}}`)
	headers := signedHeaders(payload)
	headers.Signature = "v1,AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

	err := svc.HandleEvent(context.Background(), headers, payload)
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
	if len(store.users) != 0 {
		t.Fatalf("expected no user provisioned from unsigned event")
	}
}

func TestWebhookRejectsTamperedPayload(t *testing.T) {
	_, svc := newWebhookFixture()

	payload := []byte(`{"type":"user.created","data":{"id":"user_x"}}`)
	headers := signedHeaders(payload)

	tampered := []byte(`{"type":"user.created","data":{"id":"user_y"}}`)
	if err := svc.HandleEvent(context.Background(), headers, tampered); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature for tampered payload, got %v", err)
	}
}

func TestWebhookRejectsStaleTimestamp(t *testing.T) {
	_, svc := newWebhookFixture()

	payload := []byte(`{"type":"user.created","data":{"id":"user_x"}}`)
	ts := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)
	headers := WebhookHeaders{
		ID:        "msg_1",
		Timestamp: ts,
		Signature: signPayload("msg_1", ts, payload),
	}

	if err := svc.HandleEvent(context.Background(), headers, payload); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature for stale timestamp, got %v", err)
	}
}

func TestWebhookIgnoresUnknownEvents(t *testing.T) {
	_, svc := newWebhookFixture()

	payload := []byte(`{"type":"session.created","data":{"id":"sess_1"}}`)
	if err := svc.HandleEvent(context.Background(), signedHeaders(payload), payload); err != nil {
		t.Fatalf("expected unknown event acknowledged, got %v", err)
	}
}
