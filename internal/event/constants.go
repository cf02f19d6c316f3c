package event

import "time"

// EventSchemaVersion is stamped on every event this build publishes. Readers
// accept any version with the same major number.
const EventSchemaVersion = "1.0"

// MetadataKeyAsset carries the payout asset so subscribers can filter
// without decoding the payload
const MetadataKeyAsset = "asset"

// Retry defaults, used when PublisherConfig leaves a field zero
const (
	DefaultMaxRetries    = 5
	DefaultRetryDelay    = 2 * time.Second
	DefaultMaxRetryDelay = time.Minute
	RetryQueueBufferSize = 1000
)

// DeadLetterFilePermissions is the mode new dead-letter files are created with
const DeadLetterFilePermissions = 0o644

const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgEventDeadLettered     = "Event dead-lettered"

	ErrMsgHandlerFailures   = "event handlers failed"
	ErrMsgUnsupportedSchema = "unsupported event schema version"
	ErrMsgDecodePayload     = "failed to decode event payload"
)

// RetryDelay is the wait before retry number attempt (1-based): base, 2*base,
// 4*base and so on, never more than max
func RetryDelay(base, max time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max || delay <= 0 {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}
