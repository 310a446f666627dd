package prediction

import "sync"

// resetDefault drops the process-wide cache so the next Default call builds a new one.
func resetDefault() {
	defaultOnce = sync.Once{}
	defaultCache = nil
}
