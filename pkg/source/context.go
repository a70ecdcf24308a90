package source

import "mercator-hq/docguard/pkg/model"

// ScanContext is the output of one scan: the elements found and the raw doc
// text attached to them. It is read-only once the analyzer returns.
type ScanContext struct {
	// Elements are in discovery order. Consumers must not rely on it.
	Elements []model.Element

	docs map[model.ElementKey]string
}

// NewScanContext creates a context. A nil docs map is allowed.
func NewScanContext(elements []model.Element, docs map[model.ElementKey]string) *ScanContext {
	if docs == nil {
		docs = make(map[model.ElementKey]string)
	}
	return &ScanContext{Elements: elements, docs: docs}
}

// Doc returns the doc text recorded for el. The boolean is false when the
// element has no doc comment at all.
func (c *ScanContext) Doc(el model.Element) (string, bool) {
	if c == nil {
		return "", false
	}
	doc, ok := c.docs[el.Key()]
	return doc, ok
}

// Len returns the number of elements.
func (c *ScanContext) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Elements)
}

// Merge appends the elements and docs of other. Elements whose key is
// already present are dropped.
func (c *ScanContext) Merge(other *ScanContext) {
	if other == nil {
		return
	}
	seen := make(map[model.ElementKey]bool, len(c.Elements))
	for _, el := range c.Elements {
		seen[el.Key()] = true
	}
	for _, el := range other.Elements {
		key := el.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		c.Elements = append(c.Elements, el)
		if doc, ok := other.docs[key]; ok {
			c.docs[key] = doc
		}
	}
}
