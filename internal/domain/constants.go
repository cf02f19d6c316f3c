package domain

// Payout asset identifiers
const (
	// DefaultSupportedToken is the token accepted when no list is configured
	DefaultSupportedToken = "usdc.fakes.testnet"

	// DefaultHouseBalance seeds the house ledger on first boot
	DefaultHouseBalance = "100000000000000000000000000"

	// DefaultAssetDecimals is the native asset's decimal places (yocto units)
	DefaultAssetDecimals = 24
)
