package share

// Fields is a set of structured key/value pairs attached to a log entry.
type Fields map[string]any
