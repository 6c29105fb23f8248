package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/asset"
	"github.com/specieverse/goapi/domain/order"
)

func TestMakeQuery(t *testing.T) {
	req := require.New(t)
	im := &impl{}

	qry, _, err := im.makeQuery()
	req.NoError(err)
	req.Equal(bson.M{}, qry)

	id := asset.Id{ChainId: 1, ContractAddress: "0xABC", TokenId: "42"}
	qry, _, err = im.makeQuery(
		order.WithAssetId(id),
		order.WithSeller("0xSeller"),
		order.WithStatuses(order.StatusOpen, order.StatusPendingExecute),
		order.WithTxHash("0xHash"),
	)
	req.NoError(err)
	req.Equal(bson.M{
		"assetId.chainId":         domain.ChainId(1),
		"assetId.contractAddress": domain.Address("0xabc"),
		"assetId.tokenId":         domain.TokenId("42"),
		"seller":                  domain.Address("0xseller"),
		"status":                  bson.M{"$in": []order.Status{order.StatusOpen, order.StatusPendingExecute}},
		"txHash":                  domain.TxHash("0xhash"),
	}, qry)

	_, options, err := im.makeQuery(order.WithPagination(10, 20), order.WithSort("-createdAt"))
	req.NoError(err)
	req.Equal(int32(10), *options.Offset)
	req.Equal(int32(20), *options.Limit)
	req.Equal("-createdAt", *options.Sort)
}
