package webhook

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func signedHeader(payload []byte, secret string, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	return fmt.Sprintf("t=%s,v1=%s", ts, ComputeStripeSignature(payload, ts, secret))
}

func TestVerifyStripeSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"customer.subscription.updated"}`)
	now := time.Unix(1767225600, 0)

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"valid", signedHeader(payload, "whsec_test", now), nil},
		{"valid among several v1", "t=" + strconv.FormatInt(now.Unix(), 10) + ",v1=deadbeef,v1=" + ComputeStripeSignature(payload, strconv.FormatInt(now.Unix(), 10), "whsec_test"), nil},
		{"missing", "", ErrMissingSignature},
		{"no v1", "t=123", ErrMalformedHeader},
		{"bad timestamp", "t=abc,v1=00", ErrMalformedHeader},
		{"stale", signedHeader(payload, "whsec_test", now.Add(-10*time.Minute)), ErrStaleTimestamp},
		{"future", signedHeader(payload, "whsec_test", now.Add(10*time.Minute)), ErrStaleTimestamp},
		{"wrong secret", signedHeader(payload, "other", now), ErrSignatureInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyStripeSignature(payload, tt.header, "whsec_test", DefaultTolerance, now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerifyStripeSignature_TamperedPayload(t *testing.T) {
	now := time.Now()
	header := signedHeader([]byte(`{"a":1}`), "whsec_test", now)

	err := VerifyStripeSignature([]byte(`{"a":2}`), header, "whsec_test", DefaultTolerance, now)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}
