package core

// DeletionQueue is a stack of destructor callbacks. Push appends; Flush
// invokes in reverse order so resources tear down opposite to creation.
// During normal shutdown the queue is flushed exactly once.
type DeletionQueue struct {
	deletors []func()
	flushed  bool
}

func NewDeletionQueue() *DeletionQueue {
	return &DeletionQueue{}
}

func (dq *DeletionQueue) PushDeletor(fn func()) {
	dq.deletors = append(dq.deletors, fn)
}

// Flush runs every queued deletor, last pushed first, then empties the
// queue. A second Flush is a no-op unless new deletors were pushed.
func (dq *DeletionQueue) Flush() {
	for i := len(dq.deletors) - 1; i >= 0; i-- {
		dq.deletors[i]()
	}
	dq.deletors = dq.deletors[:0]
	dq.flushed = true
}

func (dq *DeletionQueue) Len() int {
	return len(dq.deletors)
}
