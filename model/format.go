package model

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/hangxie/parquet-go/v2/parquet"
	"github.com/hangxie/parquet-go/v2/types"
)

// maxCellLen caps how many bytes of a single value end up in a table cell.
const maxCellLen = 200

// formatCell renders one decoded column value for display, applying
// logical/converted type conversions first.
func formatCell(val any, parquetType parquet.Type, elem *parquet.SchemaElement) string {
	if val == nil {
		return ""
	}

	var str string
	switch v := decodeValue(val, parquetType, elem).(type) {
	case string:
		str = v
	case float32:
		str = strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		str = strconv.FormatFloat(v, 'g', -1, 64)
	default:
		str = fmt.Sprintf("%v", v)
	}

	if len(str) > maxCellLen {
		return str[:maxCellLen] + "..."
	}
	return str
}

// decodeValue converts a raw reader value to its logical representation.
// Values arrive as the Go type matching the physical type, with BYTE_ARRAY
// and FIXED_LEN_BYTE_ARRAY surfaced as strings.
func decodeValue(value any, parquetType parquet.Type, elem *parquet.SchemaElement) any {
	if value == nil || elem == nil {
		return value
	}

	// INT96 is a deprecated timestamp encoding
	if parquetType == parquet.Type_INT96 {
		if strVal, ok := value.(string); ok {
			return types.INT96ToTime(strVal)
		}
		return value
	}

	if elem.ConvertedType != nil {
		switch *elem.ConvertedType {
		case parquet.ConvertedType_UTF8:
			return value
		case parquet.ConvertedType_DECIMAL:
			return types.ConvertDecimalValue(value, &parquetType, decimalPrecision(elem), decimalScale(elem))
		case parquet.ConvertedType_DATE:
			return types.ConvertDateLogicalValue(value)
		case parquet.ConvertedType_TIME_MILLIS, parquet.ConvertedType_TIME_MICROS:
			if elem.LogicalType != nil && elem.LogicalType.TIME != nil {
				return types.ConvertTimeLogicalValue(value, elem.LogicalType.GetTIME())
			}
			return value
		case parquet.ConvertedType_TIMESTAMP_MILLIS, parquet.ConvertedType_TIMESTAMP_MICROS:
			return types.ConvertTimestampValue(value, *elem.ConvertedType)
		case parquet.ConvertedType_INTERVAL:
			if strVal, ok := value.(string); ok {
				return types.IntervalToString([]byte(strVal))
			}
			return value
		case parquet.ConvertedType_BSON:
			return types.ConvertBSONLogicalValue(value)
		}
	}

	if elem.LogicalType != nil {
		switch {
		case elem.LogicalType.IsSetSTRING():
			return value
		case elem.LogicalType.IsSetDECIMAL():
			return types.ConvertDecimalValue(value, &parquetType, decimalPrecision(elem), decimalScale(elem))
		case elem.LogicalType.IsSetDATE():
			return types.ConvertDateLogicalValue(value)
		case elem.LogicalType.IsSetTIME():
			return types.ConvertTimeLogicalValue(value, elem.LogicalType.GetTIME())
		case elem.LogicalType.IsSetTIMESTAMP():
			if i64Val, ok := value.(int64); ok {
				if elem.LogicalType.TIMESTAMP.Unit.IsSetMILLIS() {
					return types.TIMESTAMP_MILLISToISO8601(i64Val, false)
				}
				if elem.LogicalType.TIMESTAMP.Unit.IsSetMICROS() {
					return types.TIMESTAMP_MICROSToISO8601(i64Val, false)
				}
				return types.TIMESTAMP_NANOSToISO8601(i64Val, false)
			}
			return value
		case elem.LogicalType.IsSetUUID():
			return types.ConvertUUIDValue(value)
		case elem.LogicalType.IsSetBSON():
			return types.ConvertBSONLogicalValue(value)
		case elem.LogicalType.IsSetFLOAT16():
			return types.ConvertFloat16LogicalValue(value)
		}
	}

	// Plain byte arrays: printable text passes through, small binary values
	// show as hex
	if parquetType == parquet.Type_BYTE_ARRAY || parquetType == parquet.Type_FIXED_LEN_BYTE_ARRAY {
		if strVal, ok := value.(string); ok && !isPrintableUTF8(strVal) {
			if len(strVal) <= 32 {
				return fmt.Sprintf("0x%X", []byte(strVal))
			}
			return fmt.Sprintf("<binary:%d bytes>", len(strVal))
		}
	}

	return value
}

func decimalPrecision(elem *parquet.SchemaElement) int {
	if elem.Precision != nil {
		return int(*elem.Precision)
	}
	return 10
}

func decimalScale(elem *parquet.SchemaElement) int {
	if elem.Scale != nil {
		return int(*elem.Scale)
	}
	return 0
}

// isPrintableUTF8 reports whether s is valid UTF-8 with at least 80%
// printable characters.
func isPrintableUTF8(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}

	printable := 0
	total := 0
	for _, r := range s {
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	return total > 0 && (printable*100/total >= 80)
}
