package stages

// ErrorLog accumulates human-readable messages about stage-local
// degradations. It is collected alongside results, not in place of them: a
// task can finish successfully with a non-empty log.
type ErrorLog struct {
	entries []string
}

// Append records one message.
func (l *ErrorLog) Append(message string) {
	l.entries = append(l.entries, message)
}

// Entries returns the accumulated messages in order. Never nil.
func (l *ErrorLog) Entries() []string {
	if l.entries == nil {
		return []string{}
	}
	return append([]string(nil), l.entries...)
}
