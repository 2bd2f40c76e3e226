package movie

// Collection is an insertion-ordered set of movies keyed by normalized title.
// At most one record exists per normalized title. The zero value is not
// usable; call NewCollection.
type Collection struct {
	order []string
	items map[string]Movie
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{items: make(map[string]Movie)}
}

// Len returns the number of records.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Get finds a record by title, ignoring case.
func (c *Collection) Get(title string) (Movie, bool) {
	if c == nil {
		return Movie{}, false
	}
	m, ok := c.items[NormalizeTitle(title)]
	return m, ok
}

// Has reports whether a record with the normalized title exists.
func (c *Collection) Has(title string) bool {
	_, ok := c.Get(title)
	return ok
}

// Insert appends m unless a record with the same normalized title exists,
// in which case the collection is unchanged and Insert returns false.
func (c *Collection) Insert(m Movie) bool {
	key := NormalizeTitle(m.Title)
	if _, exists := c.items[key]; exists {
		return false
	}
	c.items[key] = m
	c.order = append(c.order, key)
	return true
}

// Remove deletes the record matching title and returns it.
func (c *Collection) Remove(title string) (Movie, bool) {
	key := NormalizeTitle(title)
	m, ok := c.items[key]
	if !ok {
		return Movie{}, false
	}
	delete(c.items, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return m, true
}

// SetRating replaces the rating of the record matching title. Every other
// field, including the stored title casing, is left as is.
func (c *Collection) SetRating(title string, rating float64) bool {
	key := NormalizeTitle(title)
	m, ok := c.items[key]
	if !ok {
		return false
	}
	m.Rating = rating
	c.items[key] = m
	return true
}

// Movies returns the records in insertion order. The slice is a copy.
func (c *Collection) Movies() []Movie {
	if c == nil {
		return nil
	}
	out := make([]Movie, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.items[key])
	}
	return out
}

// Titles returns the stored titles in insertion order.
func (c *Collection) Titles() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.items[key].Title)
	}
	return out
}
