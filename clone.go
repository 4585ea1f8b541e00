package secid

// Cloner allows types to provide deep copy logic.
// Implementing this interface is required for use with Processor.
//
// Send serializes ids into a clone, so the caller's value keeps its internal
// ids. For types containing slices or maps of tagged strings, copy them:
//
//	func (o Order) Clone() Order {
//	    items := make([]string, len(o.ItemIDs))
//	    copy(items, o.ItemIDs)
//	    o.ItemIDs = items
//	    return o
//	}
type Cloner[T any] interface {
	Clone() T
}
