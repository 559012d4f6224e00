package tips

// Browser walks one category of a catalog at a time
type Browser struct {
	catalog  *Catalog
	category int
	index    int
}

// NewBrowser starts at the first tip of the first category
func NewBrowser(c *Catalog) *Browser {
	return &Browser{catalog: c}
}

// Catalog returns the catalog being browsed
func (b *Browser) Catalog() *Catalog {
	return b.catalog
}

// Category returns the current category
func (b *Browser) Category() Category {
	return b.catalog.Categories[b.category]
}

// CategoryIndex returns the position of the current category
func (b *Browser) CategoryIndex() int {
	return b.category
}

// Index returns the position of the current tip within its category
func (b *Browser) Index() int {
	return b.index
}

// Current returns the tip on display
func (b *Browser) Current() Tip {
	return b.Category().Tips[b.index]
}

// Select switches to category id and rewinds to its first tip
func (b *Browser) Select(id string) error {
	for i, c := range b.catalog.Categories {
		if c.ID == id {
			b.SelectIndex(i)
			return nil
		}
	}
	_, err := b.catalog.Category(id)
	return err
}

// SelectIndex switches to the i-th category (wrapping) and rewinds to its first tip
func (b *Browser) SelectIndex(i int) {
	n := len(b.catalog.Categories)
	b.category = ((i % n) + n) % n
	b.index = 0
}

// NextCategory moves to the following category, wrapping around
func (b *Browser) NextCategory() {
	b.SelectIndex(b.category + 1)
}

// PrevCategory moves to the preceding category, wrapping around
func (b *Browser) PrevCategory() {
	b.SelectIndex(b.category - 1)
}

// Next shows the following tip; the last tip wraps to the first
func (b *Browser) Next() Tip {
	if b.index < len(b.Category().Tips)-1 {
		b.index++
	} else {
		b.index = 0
	}
	return b.Current()
}

// Prev shows the preceding tip; the first tip wraps to the last
func (b *Browser) Prev() Tip {
	if b.index > 0 {
		b.index--
	} else {
		b.index = len(b.Category().Tips) - 1
	}
	return b.Current()
}
