package mongoclient

import (
	"testing"

	"github.com/specieverse/goapi/base/ptr"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMakeBsonM(t *testing.T) {
	req := require.New(t)

	type patch struct {
		Status *string `bson:"status,omitempty"`
		Price  *string `bson:"price,omitempty"`
		Keep   string  `bson:"keep"`
	}

	m, err := MakeBsonM(patch{
		Status: ptr.String("open"),
		Keep:   "value",
	})
	req.NoError(err)
	req.Equal(bson.M{"status": "open", "keep": "value"}, m)

	m, err = MakeBsonM(&patch{Price: ptr.String("100")})
	req.NoError(err)
	req.Equal(bson.M{"price": "100"}, m)
}
