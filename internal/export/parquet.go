package export

import (
	"fmt"
	"io"

	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// parquetRow keeps prices as decimal strings so no value is rounded by a
// float conversion.
type parquetRow struct {
	ResolvedAt     int64  `parquet:"name=resolved_at,type=INT64,convertedtype=TIMESTAMP_MILLIS"`
	Code           string `parquet:"name=code,type=BYTE_ARRAY,convertedtype=UTF8"`
	Name           string `parquet:"name=name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Category       string `parquet:"name=category,type=BYTE_ARRAY,convertedtype=UTF8"`
	BasePrice      string `parquet:"name=base_price,type=BYTE_ARRAY,convertedtype=UTF8"`
	EffectivePrice string `parquet:"name=effective_price,type=BYTE_ARRAY,convertedtype=UTF8"`
	Orderable      bool   `parquet:"name=orderable,type=BOOLEAN"`
	Reason         string `parquet:"name=reason,type=BYTE_ARRAY,convertedtype=UTF8"`
	EventCode      string `parquet:"name=event_code,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// WriteParquet writes the price list as a snappy-compressed Parquet file.
func WriteParquet(w io.Writer, list PriceList) error {
	pw, err := writer.NewParquetWriterFromWriter(w, new(parquetRow), 1)
	if err != nil {
		return fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	at := list.At.UnixMilli()
	for _, row := range list.Rows {
		rec := parquetRow{
			ResolvedAt:     at,
			Code:           row.Code,
			Name:           row.Name,
			Category:       row.Category,
			BasePrice:      row.BasePrice.StringFixed(2),
			EffectivePrice: row.EffectivePrice.StringFixed(2),
			Orderable:      row.Orderable,
			Reason:         row.Reason,
			EventCode:      row.EventCode,
		}
		if err := pw.Write(rec); err != nil {
			return fmt.Errorf("write parquet row %s: %w", row.Code, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("finish parquet: %w", err)
	}
	return nil
}
