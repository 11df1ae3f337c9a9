package domain

// Currency represents a supported currency. Immutable once referenced by an account.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"` // Primary key (e.g. "TTD")
	Symbol        string `json:"symbol"`       // e.g. "$"
	Name          string `json:"name"`         // e.g. "Trinidad and Tobago Dollar"
	DecimalPlaces int32  `json:"decimalPlaces"`
	AuditFields
}
