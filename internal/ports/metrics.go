package ports

// Metrics receives operational signals from the storage core.
type Metrics interface {
	IdentifierIssued(kind string, degraded bool)
	IdentifierCollision(kind string)
	TeardownFinished(result string)
	CallbacksPurged(count int64)
	ActivityDropped()
}

type NoopMetrics struct{}

func (NoopMetrics) IdentifierIssued(string, bool) {}
func (NoopMetrics) IdentifierCollision(string)    {}
func (NoopMetrics) TeardownFinished(string)       {}
func (NoopMetrics) CallbacksPurged(int64)         {}
func (NoopMetrics) ActivityDropped()              {}
