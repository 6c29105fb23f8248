package authorization

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/specieverse/goapi/domain"
)

func tuple(kind Kind) Authorization {
	return Authorization{
		Owner:         "0xaaa",
		Spender:       "0xbbb",
		TokenContract: "0xccc",
		ChainId:       1,
		Kind:          kind,
	}
}

func TestKindCovers(t *testing.T) {
	assert.True(t, KindAllowance.Covers(KindAllowance))
	assert.True(t, KindApprovalForAll.Covers(KindApprovalForAll))
	assert.True(t, KindApprovalForAll.Covers(KindAllowance))
	assert.False(t, KindAllowance.Covers(KindApprovalForAll))
	assert.False(t, KindAllowance.Covers(Kind("bogus")))
}

func TestIsAuthorized(t *testing.T) {
	candidate := tuple(KindAllowance)

	assert.False(t, IsAuthorized(candidate, nil))

	// a grant satisfies itself
	assert.True(t, IsAuthorized(candidate, []Authorization{candidate}))

	// higher grade covers lower on the same tuple
	assert.True(t, IsAuthorized(candidate, []Authorization{tuple(KindApprovalForAll)}))
	assert.False(t, IsAuthorized(tuple(KindApprovalForAll), []Authorization{tuple(KindAllowance)}))

	// any mismatched dimension breaks the match
	other := candidate
	other.Spender = "0xddd"
	assert.False(t, IsAuthorized(candidate, []Authorization{other}))

	other = candidate
	other.ChainId = domain.ChainId(137)
	assert.False(t, IsAuthorized(candidate, []Authorization{other}))

	// addresses compare case-insensitively
	mixed := candidate
	mixed.Owner = "0xAAA"
	assert.True(t, IsAuthorized(candidate, []Authorization{mixed}))
}

func TestIsAuthorizedMonotonic(t *testing.T) {
	candidate := tuple(KindAllowance)
	known := []Authorization{}
	assert.False(t, IsAuthorized(candidate, known))

	// growing known never flips true back to false
	known = append(known, tuple(KindAllowance))
	assert.True(t, IsAuthorized(candidate, known))

	unrelated := tuple(KindAllowance)
	unrelated.TokenContract = "0xeee"
	known = append(known, unrelated)
	assert.True(t, IsAuthorized(candidate, known))
}
