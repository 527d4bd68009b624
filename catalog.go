package apiwrappers

// Catalog is an ordered set of endpoints keyed by wrapper name.
//
// Iteration follows the order in which each name was first added. Adding an
// endpoint whose name is already present replaces the stored endpoint but
// keeps its position.
type Catalog struct {
	endpoints []Endpoint
	index     map[string]int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		index: make(map[string]int),
	}
}

// Add stores ep under its wrapper name. When the name was already taken the
// replaced endpoint is returned with replaced set to true.
func (c *Catalog) Add(ep Endpoint) (prev Endpoint, replaced bool) {
	name := ep.Name()
	if i, ok := c.index[name]; ok {
		prev = c.endpoints[i]
		c.endpoints[i] = ep
		return prev, true
	}
	c.index[name] = len(c.endpoints)
	c.endpoints = append(c.endpoints, ep)
	return prev, false
}

// Get returns the endpoint stored under name.
func (c *Catalog) Get(name string) (Endpoint, bool) {
	i, ok := c.index[name]
	if !ok {
		return Endpoint{}, false
	}
	return c.endpoints[i], true
}

// Len returns the number of distinct wrapper names.
func (c *Catalog) Len() int {
	return len(c.endpoints)
}

// Names returns the wrapper names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.endpoints))
	for i, ep := range c.endpoints {
		names[i] = ep.Name()
	}
	return names
}

// Endpoints returns a copy of the endpoints in catalog order.
func (c *Catalog) Endpoints() []Endpoint {
	return append([]Endpoint(nil), c.endpoints...)
}
