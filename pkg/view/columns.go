package view

type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// Column describes how a record field is presented.
type Column struct {
	Key      string `json:"key"`
	Header   string `json:"header"`
	Sortable bool   `json:"sortable"`
	Align    Align  `json:"align"`
}

var ProductColumns = []Column{
	{Key: "name", Header: "Product Name", Sortable: true, Align: AlignLeft},
	{Key: "category", Header: "Category", Sortable: true, Align: AlignLeft},
	{Key: "price", Header: "Price", Sortable: true, Align: AlignRight},
	{Key: "stock", Header: "Stock", Align: AlignRight},
}

func SortableKeys(columns []Column) []string {
	keys := make([]string, 0, len(columns))
	for _, c := range columns {
		if c.Sortable {
			keys = append(keys, c.Key)
		}
	}
	return keys
}
