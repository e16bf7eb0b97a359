package models

import "strings"

// AssetType represents the kind of instrument a holding is in.
type AssetType string

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeCrypto AssetType = "crypto"
	AssetTypeCD     AssetType = "cd"
	AssetTypeBond   AssetType = "bond"
	AssetTypeCash   AssetType = "cash"
)

// AssetTypes lists every supported asset type.
var AssetTypes = []AssetType{AssetTypeStock, AssetTypeCrypto, AssetTypeCD, AssetTypeBond, AssetTypeCash}

// NormalizeAssetType trims and lower-cases raw input. The result is not
// guaranteed to be a known type; see IsKnown.
func NormalizeAssetType(raw string) AssetType {
	return AssetType(strings.ToLower(strings.TrimSpace(raw)))
}

// IsKnown reports whether t is one of the supported asset types.
func (t AssetType) IsKnown() bool {
	switch t {
	case AssetTypeStock, AssetTypeCrypto, AssetTypeCD, AssetTypeBond, AssetTypeCash:
		return true
	}
	return false
}

// Label returns the upper-case form used in user-facing messages.
func (t AssetType) Label() string {
	return strings.ToUpper(string(t))
}
