package publisher

// Publisher pushes scraped product records to an external stream. It is an
// optional side channel: publish failures are logged by callers and never
// affect the CSV output.
type Publisher interface {
	// Publish publishes one record payload keyed by its keyword
	Publish(keyword string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
