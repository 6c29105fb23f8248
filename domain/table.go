package domain

// Table is a mongo collection name
type Table string

const (
	TableAssets         Table = "assets"
	TableOrders         Table = "orders"
	TableBids           Table = "bids"
	TableAuthorizations Table = "authorizations"
	TableContracts      Table = "contracts"
	TableActivities     Table = "activities"
)
