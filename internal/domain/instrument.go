package domain

import "fmt"

// AssetClass classifies a tradable instrument.
type AssetClass string

const (
	AssetClassStock       AssetClass = "Stock"
	AssetClassFixedIncome AssetClass = "Fixed Income Bond"
	AssetClassCrypto      AssetClass = "Crypto"
	AssetClassCommodities AssetClass = "Commodities"
	AssetClassOther       AssetClass = "Other"
)

// AssetClasses lists every supported class, in display order.
func AssetClasses() []AssetClass {
	return []AssetClass{
		AssetClassStock,
		AssetClassFixedIncome,
		AssetClassCrypto,
		AssetClassCommodities,
		AssetClassOther,
	}
}

// ParseAssetClass converts a stored string into an AssetClass.
func ParseAssetClass(s string) (AssetClass, error) {
	switch AssetClass(s) {
	case AssetClassStock, AssetClassFixedIncome, AssetClassCrypto, AssetClassCommodities, AssetClassOther:
		return AssetClass(s), nil
	default:
		return "", fmt.Errorf("unknown asset class %q", s)
	}
}

// Instrument describes a tradable security, coin, or other holding.
// Instruments are shared across owners; ownership lives on the trade events.
type Instrument struct {
	ID            int64      `json:"id"`
	Symbol        string     `json:"symbol"`
	Description   string     `json:"description,omitempty"`
	AssetClass    AssetClass `json:"assetClass"`
	Currency      string     `json:"currency"`
	WalletAddress string     `json:"walletAddress,omitempty"`
}

// Validate checks the instrument invariants.
func (i Instrument) Validate() error {
	if i.Symbol == "" {
		return fmt.Errorf("instrument symbol must not be empty")
	}
	if _, err := ParseAssetClass(string(i.AssetClass)); err != nil {
		return fmt.Errorf("instrument %s: %w", i.Symbol, err)
	}
	if i.Currency == "" {
		return fmt.Errorf("instrument %s: quote currency must not be empty", i.Symbol)
	}
	return nil
}
