package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

func TestVerifySignatureAcceptsValidHeader(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	header := Sign(payload, testSecret, time.Now())

	assert.NoError(t, VerifySignature(payload, header, testSecret, DefaultTolerance))
}

func TestVerifySignatureRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := Sign(payload, testSecret, time.Now())

	err := VerifySignature([]byte(`{"id":"evt_2"}`), header, testSecret, DefaultTolerance)
	assert.Error(t, err)
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := Sign(payload, "whsec_other", time.Now())

	assert.Error(t, VerifySignature(payload, header, testSecret, DefaultTolerance))
}

func TestVerifySignatureRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := Sign(payload, testSecret, time.Now().Add(-time.Hour))

	assert.Error(t, VerifySignature(payload, header, testSecret, DefaultTolerance))

	// Zero tolerance skips the freshness check entirely.
	assert.NoError(t, VerifySignature(payload, header, testSecret, 0))
}

func TestVerifySignatureRejectsMalformedHeader(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)

	assert.Error(t, VerifySignature(payload, "", testSecret, DefaultTolerance))
	assert.Error(t, VerifySignature(payload, "t=123", testSecret, DefaultTolerance))
	assert.Error(t, VerifySignature(payload, "v1=deadbeef", testSecret, DefaultTolerance))
}

func TestVerifySignatureAcceptsAnyOfMultipleSignatures(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	valid := Sign(payload, testSecret, time.Now())
	header := valid + ",v1=deadbeef"

	assert.NoError(t, VerifySignature(payload, header, testSecret, DefaultTolerance))
}

func TestConstructEventParsesVerifiedPayload(t *testing.T) {
	client := &Client{webhookSecret: testSecret}
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_123", "client_reference_id": "order-42"}}
	}`)

	event, err := client.ConstructEvent(payload, Sign(payload, testSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, "checkout.session.completed", event.Type)
	assert.Equal(t, "order-42", event.Data.Object.ClientReferenceID)

	_, err = client.ConstructEvent(payload, "t=1,v1=bad")
	assert.Error(t, err)
}
