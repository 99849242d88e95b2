package engine

import (
	"github.com/google/uuid"

	"github.com/chrisuehlinger/flexscene/flexbox"
)

// BoxRecord is the registry's bookkeeping for one registered box. Content
// is a back reference to the renderable whose position the engine writes;
// the engine never owns its lifecycle. A nil Content is the unresolved
// state and simply skips measurement and position writes.
type BoxRecord struct {
	// ID is a stable identity for logs; it survives upserts.
	ID           string
	Node         *flexbox.Node
	Content      Content
	Props        PropertySet
	CenterAnchor bool

	// observer, when set, receives the box's computed layout each reflow.
	// deferPosition suppresses the discrete position write so an overlay
	// can interpolate instead.
	observer      func(x, y, w, h float64)
	deferPosition bool
}

// Registry owns the mapping from solver nodes to box records: the layout
// tree manager. Records are keyed by node identity, and iteration follows
// registration order, which must match the order nodes were attached to the
// solver tree so per-child results correlate back to the right content.
type Registry struct {
	order   []*flexbox.Node
	records map[*flexbox.Node]*BoxRecord
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[*flexbox.Node]*BoxRecord)}
}

// Register inserts or updates the record for a node. It returns true when
// the node is new — callers use that to attach the node to the parent
// solver node exactly once — and false when an existing record was updated
// in place. Pure bookkeeping: the solver tree itself is untouched.
func (r *Registry) Register(node *flexbox.Node, content Content, props PropertySet, centerAnchor bool) bool {
	if node == nil {
		return false
	}
	if rec, ok := r.records[node]; ok {
		rec.Content = content
		rec.Props = props
		rec.CenterAnchor = centerAnchor
		return false
	}
	r.records[node] = &BoxRecord{
		ID:           uuid.NewString(),
		Node:         node,
		Content:      content,
		Props:        props,
		CenterAnchor: centerAnchor,
	}
	r.order = append(r.order, node)
	return true
}

// Unregister removes the record for a node. Unknown nodes are a no-op, not
// an error: unmount ordering during teardown is not guaranteed.
func (r *Registry) Unregister(node *flexbox.Node) {
	if _, ok := r.records[node]; !ok {
		return
	}
	delete(r.records, node)
	for i, n := range r.order {
		if n == node {
			copy(r.order[i:], r.order[i+1:])
			r.order = r.order[:len(r.order)-1]
			return
		}
	}
}

// Lookup returns the record for a node, if registered.
func (r *Registry) Lookup(node *flexbox.Node) (*BoxRecord, bool) {
	rec, ok := r.records[node]
	return rec, ok
}

// Len returns the number of active records.
func (r *Registry) Len() int {
	return len(r.order)
}

// Each visits every record in registration order.
func (r *Registry) Each(fn func(*BoxRecord)) {
	for _, node := range r.order {
		fn(r.records[node])
	}
}

// SetObserver installs a per-reflow layout callback for a node's record.
// When deferPosition is true the engine stops writing the content position
// directly and leaves it to the observer's owner.
func (r *Registry) SetObserver(node *flexbox.Node, fn func(x, y, w, h float64), deferPosition bool) {
	if rec, ok := r.records[node]; ok {
		rec.observer = fn
		rec.deferPosition = deferPosition
	}
}
