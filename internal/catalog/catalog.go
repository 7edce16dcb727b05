package catalog

// Catalog is the ordered, validated book list plus its file-name index.
// It is never modified after New returns; accessors hand out copies.
type Catalog struct {
	books  []Book
	byFile map[string]int
}

// New validates books and builds the catalog in one pass. The returned error
// is a *ValidationErrors when any invariant is broken.
func New(books []Book) (*Catalog, error) {
	if errs := Validate(books); len(errs) > 0 {
		return nil, &ValidationErrors{Errs: errs}
	}

	c := &Catalog{
		books:  make([]Book, len(books)),
		byFile: make(map[string]int, len(books)),
	}
	for i, b := range books {
		c.books[i] = b.Clone()
		c.byFile[b.FileName] = i
	}
	return c, nil
}

// Len returns the number of books.
func (c *Catalog) Len() int { return len(c.books) }

// Books returns a copy of every book in index order.
func (c *Catalog) Books() []Book {
	out := make([]Book, len(c.books))
	for i, b := range c.books {
		out[i] = b.Clone()
	}
	return out
}

// ByFile looks a book up by its file name.
func (c *Catalog) ByFile(name string) (Book, bool) {
	i, ok := c.byFile[name]
	if !ok {
		return Book{}, false
	}
	return c.books[i].Clone(), true
}

// ByIndex looks a book up by its index.
func (c *Catalog) ByIndex(index int) (Book, bool) {
	if index < 0 || index >= len(c.books) {
		return Book{}, false
	}
	return c.books[index].Clone(), true
}

// Linked returns the book a reference field of b points at. It reports false
// when the field is unset or holds NoLink.
func (c *Catalog) Linked(b Book, f RefField) (Book, bool) {
	ref := b.Ref(f)
	if ref == nil || *ref == NoLink {
		return Book{}, false
	}
	return c.ByIndex(*ref)
}
