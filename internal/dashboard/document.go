package dashboard

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RootID is the id of the element every render replaces.
const RootID = "root"

// ErrElementNotFound is returned when no element carries the requested id.
var ErrElementNotFound = errors.New("element not found")

// Element is a handle to a node created through a Document.
type Element struct {
	node *html.Node
}

type handler struct {
	node *html.Node
	fn   func()
}

// Document is the server-side copy of one browser page. Every operation is
// atomic; the change callback runs after the lock is released.
type Document struct {
	mu       sync.Mutex
	root     *html.Node
	handlers map[string]handler
	onChange func()

	// batch is the depth of open Batch calls; dirty records a change made
	// while one was open.
	batch int
	dirty bool
}

// NewDocument returns a document holding an empty #root element.
func NewDocument() *Document {
	return &Document{
		root: &html.Node{
			Type:     html.ElementNode,
			Data:     "div",
			DataAtom: atom.Div,
			Attr:     []html.Attribute{{Key: "id", Val: RootID}},
		},
		handlers: make(map[string]handler),
	}
}

// OnChange registers fn to be called after every mutation.
func (d *Document) OnChange(fn func()) {
	d.mu.Lock()
	d.onChange = fn
	d.mu.Unlock()
}

// SetInnerHTML replaces the content of the element with the given id.
func (d *Document) SetInnerHTML(id, markup string) error {
	d.mu.Lock()
	n := d.find(id)
	if n == nil {
		d.mu.Unlock()
		return fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	children, err := parseInto(n, markup)
	if err != nil {
		d.mu.Unlock()
		return err
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	d.prune()
	d.mu.Unlock()

	d.changed()
	return nil
}

// AppendElement creates a <tag> with the given attributes and inner markup
// and appends it to the element with id parentID.
func (d *Document) AppendElement(parentID, tag string, attrs map[string]string, innerHTML string) (*Element, error) {
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		el.Attr = append(el.Attr, html.Attribute{Key: k, Val: attrs[k]})
	}
	children, err := parseInto(el, innerHTML)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		el.AppendChild(c)
	}

	d.mu.Lock()
	parent := d.find(parentID)
	if parent == nil {
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: #%s", ErrElementNotFound, parentID)
	}
	parent.AppendChild(el)
	d.mu.Unlock()

	d.changed()
	return &Element{node: el}, nil
}

// Remove detaches el from its parent. Removing an element that a repaint
// already detached is a no-op.
func (d *Document) Remove(el *Element) {
	d.mu.Lock()
	if el == nil || el.node.Parent == nil {
		d.mu.Unlock()
		return
	}
	attached := d.attached(el.node)
	el.node.Parent.RemoveChild(el.node)
	d.prune()
	d.mu.Unlock()

	if attached {
		d.changed()
	}
}

// On attaches a click handler to el under ref. The handler lives as long as
// el stays in the document; registering the same ref again replaces it.
func (d *Document) On(el *Element, ref string, fn func()) {
	d.mu.Lock()
	setAttr(el.node, "data-ref", ref)
	d.handlers[ref] = handler{node: el.node, fn: fn}
	d.mu.Unlock()

	d.changed()
}

// Handler returns the click handler registered under ref, if its element is
// still attached.
func (d *Document) Handler(ref string) (func(), bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h, ok := d.handlers[ref]
	if !ok || !d.attached(h.node) {
		return nil, false
	}
	return h.fn, true
}

// Exists reports whether an element with the given id is in the document.
func (d *Document) Exists(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.find(id) != nil
}

// InnerHTML serializes the content of the element with the given id.
func (d *Document) InnerHTML(id string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.find(id)
	if n == nil {
		return "", fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	return renderChildren(n)
}

// HTML serializes the content of #root.
func (d *Document) HTML() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, _ := renderChildren(d.root)
	return s
}

// Batch runs fn with change notifications held back, then fires at most
// one for everything fn changed. Changes made by other goroutines while the
// batch is open are folded into the same notification.
func (d *Document) Batch(fn func() error) error {
	d.mu.Lock()
	d.batch++
	d.mu.Unlock()

	err := fn()

	d.mu.Lock()
	d.batch--
	fire := d.batch == 0 && d.dirty
	if fire {
		d.dirty = false
	}
	d.mu.Unlock()

	if fire {
		d.changed()
	}
	return err
}

func (d *Document) changed() {
	d.mu.Lock()
	if d.batch > 0 {
		d.dirty = true
		d.mu.Unlock()
		return
	}
	fn := d.onChange
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// find returns the first element in document order with the given id.
func (d *Document) find(id string) *html.Node {
	var walk func(*html.Node) *html.Node
	walk = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := walk(c); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(d.root)
}

func (d *Document) attached(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

// prune drops handlers whose elements left the document.
func (d *Document) prune() {
	for ref, h := range d.handlers {
		if !d.attached(h.node) {
			delete(d.handlers, ref)
		}
	}
}

func parseInto(parent *html.Node, markup string) ([]*html.Node, error) {
	if markup == "" {
		return nil, nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	return nodes, nil
}

func renderChildren(n *html.Node) (string, error) {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", fmt.Errorf("rendering node: %w", err)
		}
	}
	return b.String(), nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
