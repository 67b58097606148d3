package cart

// MaxItems caps how many distinct products one cart may hold.
const MaxItems = 10

// Entry is one cart line: a product reference plus quantity. The cart record
// is an ordered list with at most one entry per productId.
type Entry struct {
	ProductID string `json:"productId"`
	StoreID   string `json:"storeId"`
	Quantity  int    `json:"quantity"`
}

// Result reports the outcome of a cart mutation.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
