package constant

type ProductType string

const (
	ProductTypeSIM    ProductType = "SIM"
	ProductTypeMobile ProductType = "Mobile"
	ProductTypeFiber  ProductType = "Fiber"
)

// ProductTypes is the fixed display order used by stock views.
var ProductTypes = []ProductType{ProductTypeSIM, ProductTypeMobile, ProductTypeFiber}

func (p ProductType) Valid() bool {
	for _, t := range ProductTypes {
		if t == p {
			return true
		}
	}
	return false
}

type StockTransactionKind string

const (
	StockTransactionTransfer StockTransactionKind = "transfer"
	StockTransactionReset    StockTransactionKind = "reset"
)
