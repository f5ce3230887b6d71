package entity

// Field identifies a logical column of the candidate sheet.
type Field string

const (
	FieldDiscoveryDate Field = "discoveryDate"
	FieldSymbolName    Field = "symbolName"
	FieldSymbolCode    Field = "symbolCode"
	FieldProfitPercent Field = "profitPercent"
	FieldLivePrice     Field = "livePrice"
	FieldCaptureReason Field = "captureReason"
	FieldCapturePrice  Field = "capturePrice"
)

// Column binds a logical field to the header text used in the sheet.
type Column struct {
	Field    Field
	Header   string
	Required bool
}

// CandidateSchema is the ordered list of columns the sheet is expected to carry.
// Headers keep the sheet's Korean names for wire compatibility.
var CandidateSchema = []Column{
	{Field: FieldDiscoveryDate, Header: "탐색일", Required: true},
	{Field: FieldSymbolName, Header: "종목명", Required: true},
	{Field: FieldSymbolCode, Header: "코드", Required: true},
	{Field: FieldProfitPercent, Header: "수익률(%)"},
	{Field: FieldLivePrice, Header: "현재가(Live)"},
	{Field: FieldCaptureReason, Header: "포착사유"},
	{Field: FieldCapturePrice, Header: "포착가"},
}

// UnresolvedPriceSentinel is written by the upstream scanner into the live-price
// column when it could not resolve the symbol.
const UnresolvedPriceSentinel = "코드확인"

// PricePlaceholder replaces UnresolvedPriceSentinel for display.
const PricePlaceholder = "-"
