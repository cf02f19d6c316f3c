package handler

// Account id bounds
const (
	MinAccountIDLength = 2
	MaxAccountIDLength = 64
)

// Route parameters
const (
	URLParamSettlementID = "id"
	QueryParamTokenID    = "token_id"
	QueryParamAccount    = "account"
	QueryParamRecipient  = "recipient"
	QueryParamLimit      = "limit"
)

// MaxTransferListLimit caps the limit query parameter on the transfer list
const MaxTransferListLimit = 500

// Log messages
const (
	LogMsgSpinFailed          = "Failed to submit spin"
	LogMsgGetSettlementFailed = "Failed to get settlement"
	LogMsgGetStatsFailed      = "Failed to get ledger stats"
	LogMsgOnReceiveFailed     = "Token receive rejected"
	LogMsgGetBalanceFailed    = "Failed to get balance"
	LogMsgListTransfersFailed = "Failed to list transfers"
	LogMsgReadinessFailed     = "Readiness check failed"
)
