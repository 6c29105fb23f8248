package bid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckFingerprint(t *testing.T) {
	b := &Bid{Fingerprint: "0xabc"}

	assert.True(t, CheckFingerprint(b, "0xabc"))
	assert.False(t, CheckFingerprint(b, "0xdef"))

	// missing on either side never invalidates
	assert.True(t, CheckFingerprint(b, ""))
	assert.True(t, CheckFingerprint(&Bid{}, "0xabc"))
	assert.True(t, CheckFingerprint(&Bid{}, ""))
}

func TestIsExpired(t *testing.T) {
	now := time.Now()

	b := &Bid{Status: StatusOpen, ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, b.IsExpired(now))

	b = &Bid{Status: StatusOpen, ExpiresAt: now.Add(time.Minute)}
	assert.False(t, b.IsExpired(now))

	// only open bids expire lazily
	b = &Bid{Status: StatusPendingPlace, ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, b.IsExpired(now))
}
