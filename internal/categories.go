package internal

// Categories is a name to id mapping that remembers the order names were
// first added in. Setting an existing name replaces its id in place.
// It also counts the source records that were read but could not be used.
type Categories struct {
	names   []string
	ids     map[string]string
	skipped int
}

func NewCategories(list ...Category) Categories {
	var c Categories
	for _, category := range list {
		c.Set(category.Name, category.ID)
	}
	return c
}

func (c *Categories) Set(name, id string) {
	if c.ids == nil {
		c.ids = map[string]string{}
	}
	if _, ok := c.ids[name]; !ok {
		c.names = append(c.names, name)
	}
	c.ids[name] = id
}

// Skip records a source record that was missing a name or an id
func (c *Categories) Skip() {
	c.skipped++
}

func (c Categories) Skipped() int {
	return c.skipped
}

func (c Categories) Len() int {
	return len(c.names)
}

// List returns the categories in insertion order
func (c Categories) List() []Category {
	list := make([]Category, 0, len(c.names))
	for _, name := range c.names {
		list = append(list, Category{Name: name, ID: c.ids[name]})
	}
	return list
}

// Merge adds every category of other, in order, with other winning on name collisions
func (c *Categories) Merge(other Categories) {
	for _, category := range other.List() {
		c.Set(category.Name, category.ID)
	}
	c.skipped += other.skipped
}
