package buddy

// commitTracker is the lazy-commit component: a monotonic cache of the
// Host's high-water mark, so the allocator never issues a CommitUpTo call
// for an address it has already established is committed.
type commitTracker struct {
	host Host
	hwm  uintptr
}

func newCommitTracker(host Host) *commitTracker {
	return &commitTracker{host: host, hwm: host.CurrentBreak()}
}

// ensure advances the high-water mark to at least addr, committing via the
// host if needed. It never regresses hwm and leaves it untouched on
// failure.
func (c *commitTracker) ensure(addr uintptr) bool {
	if addr <= c.hwm {
		return true
	}
	if !c.host.CommitUpTo(addr) {
		return false
	}
	c.hwm = addr
	return true
}
