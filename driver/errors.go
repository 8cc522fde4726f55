package driver

// ErrInternalInconsistency signals a broken invariant inside the driver
// itself rather than a property of the page: for example the candidate
// descriptors and live nodes going out of sync, or an elected element
// missing from the snapshot it was elected from.
type ErrInternalInconsistency struct {
	Reason string
}

func (e *ErrInternalInconsistency) Error() string {
	return "driver: internal inconsistency: " + e.Reason
}
