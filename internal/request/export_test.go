package request

// PendingCount exposes the number of requests in flight to external tests.
func (d *DispatcherImpl) PendingCount() int {
	return d.pending.size()
}
