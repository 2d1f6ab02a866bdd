package render

// tableVariant tags the two mutually exclusive table layouts.
type tableVariant int

const (
	standardTable tableVariant = iota
	partialPaymentTable
)

// columnKind identifies what a table column renders.
type columnKind int

const (
	colDescription columnKind = iota
	colQuantity
	colRate
	colAmount
	colPaid
	colBalance
)

// tableColumn is one column of the line-item table. Width is a fraction of
// the printable width; fractions within a schema sum to 1.
type tableColumn struct {
	kind   columnKind
	header string
	width  float64
}

// rowSchema is the resolved table layout. It is selected once from the
// invoice status before the table stage begins.
type rowSchema struct {
	variant tableVariant
	columns []tableColumn
}

var standardSchema = rowSchema{
	variant: standardTable,
	columns: []tableColumn{
		{kind: colDescription, header: "DESCRIPTION", width: 0.44},
		{kind: colQuantity, header: "QTY", width: 0.12},
		{kind: colRate, header: "RATE", width: 0.22},
		{kind: colAmount, header: "AMOUNT", width: 0.22},
	},
}

var partialPaymentSchema = rowSchema{
	variant: partialPaymentTable,
	columns: []tableColumn{
		{kind: colDescription, header: "DESCRIPTION", width: 0.30},
		{kind: colQuantity, header: "QTY", width: 0.08},
		{kind: colRate, header: "RATE", width: 0.155},
		{kind: colAmount, header: "AMOUNT", width: 0.155},
		{kind: colPaid, header: "PAID", width: 0.155},
		{kind: colBalance, header: "BALANCE", width: 0.155},
	},
}

// resolveRowSchema picks the table layout for an invoice status.
func resolveRowSchema(status string) rowSchema {
	if status == "partial-payment" {
		return partialPaymentSchema
	}
	return standardSchema
}
