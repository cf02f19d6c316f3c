package oracle

import "time"

// SignerIDTestnet is the signer account used outside production
const SignerIDTestnet = "v1.signer-prod.testnet"

// Payload variant keys in payload_v2
const (
	payloadKeyECDSA = "Ecdsa"
	payloadKeyEdDSA = "Eddsa"
)

// Seed and key sizes
const (
	SeedLength         = 32
	compressedPointLen = 33
	scalarLen          = 32
)

// HTTP client defaults
const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
	signPath          = "/sign"
	headerSignerID    = "X-Signer-Id"
	contentTypeJSON   = "application/json"
	maxResponseBytes  = 1 << 16
)

// Log messages
const (
	LogMsgRetryingSign = "Retrying sign request"
	LogMsgSignFailed   = "Sign request failed"
	LogMsgSignerError  = "Signer returned server error, will retry"
	LogMsgSigned       = "Signature received"
)
