// Package export renders resolved price lists as XLSX or Parquet and uploads
// snapshots to S3.
package export

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRow is one resolved menu item at a given instant.
type PriceRow struct {
	Code           string
	Name           string
	Category       string
	BasePrice      decimal.Decimal
	EffectivePrice decimal.Decimal
	CardPrice      *decimal.Decimal
	CashPrice      *decimal.Decimal
	Orderable      bool
	Reason         string
	EventCode      string
}

// PriceList is a price list resolved for one outlet at one instant.
type PriceList struct {
	OutletName string
	At         time.Time
	Rows       []PriceRow
}
