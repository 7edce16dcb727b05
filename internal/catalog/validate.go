package catalog

import "fmt"

// Validate checks a book table for structural correctness: required fields,
// index order, unique indices and file names, and references that point at
// an existing book of the matching tier.
func Validate(books []Book) []ValidationError {
	var errs []ValidationError

	if len(books) >= NoLink {
		errs = append(errs, ValidationError{
			Category: ValCatSentinelRange,
			Position: -1,
			Err:      fmt.Errorf("%w: %d books, sentinel is %d", ErrSentinelRange, len(books), NoLink),
		})
	}

	byIndex := make(map[int]int, len(books)) // index → position
	files := make(map[string]int, len(books))

	for pos := range books {
		b := &books[pos]
		fail := func(cat ValidationCategory, field string, err error) {
			errs = append(errs, ValidationError{
				Category: cat,
				Position: pos,
				FileName: b.FileName,
				Field:    field,
				Err:      err,
			})
		}

		if b.FileName == "" {
			fail(ValCatMissingField, "file_name", fmt.Errorf("%w: file_name", ErrMissingField))
		}
		if !b.Tier.Valid() {
			fail(ValCatMissingField, "tier", fmt.Errorf("%w: tier", ErrMissingField))
		}
		if !b.Pitaka.Valid() {
			fail(ValCatMissingField, "pitaka", fmt.Errorf("%w: pitaka", ErrMissingField))
		}
		if !b.BookType.Valid() {
			fail(ValCatInvalidEnum, "book_type", fmt.Errorf("%w: book type %d", ErrInvalidEnum, int(b.BookType)))
		}

		if b.Index != pos {
			fail(ValCatIndexOrder, "index", fmt.Errorf("%w: index %d at position %d", ErrIndexOrder, b.Index, pos))
		}
		if prev, ok := byIndex[b.Index]; ok {
			fail(ValCatDuplicateIndex, "index", fmt.Errorf("%w: %d already used by %s", ErrDuplicateIndex, b.Index, books[prev].FileName))
		} else {
			byIndex[b.Index] = pos
		}

		if b.FileName != "" {
			if prev, ok := files[b.FileName]; ok {
				fail(ValCatDuplicateFile, "file_name", fmt.Errorf("%w: %q already defined at #%d", ErrDuplicateFile, b.FileName, prev))
			} else {
				files[b.FileName] = pos
			}
		}
	}

	// References are checked once every index is known.
	for pos := range books {
		b := &books[pos]
		for _, f := range RefFields {
			ref := b.Ref(f)
			if ref == nil || *ref == NoLink {
				continue
			}
			target, ok := byIndex[*ref]
			if !ok {
				errs = append(errs, ValidationError{
					Category: ValCatUnknownRef,
					Position: pos,
					FileName: b.FileName,
					Field:    f.String(),
					Err:      fmt.Errorf("%w: %s = %d", ErrUnknownRef, f, *ref),
				})
				continue
			}
			if b.Tier == f.Tier() {
				errs = append(errs, ValidationError{
					Category: ValCatTierMismatch,
					Position: pos,
					FileName: b.FileName,
					Field:    f.String(),
					Err:      fmt.Errorf("%w: %s book links to its own tier via %s", ErrTierMismatch, b.Tier, f),
				})
				continue
			}
			if got := books[target].Tier; got != f.Tier() {
				errs = append(errs, ValidationError{
					Category: ValCatTierMismatch,
					Position: pos,
					FileName: b.FileName,
					Field:    f.String(),
					Err: fmt.Errorf("%w: %s = %d is %s (%s), want %s",
						ErrTierMismatch, f, *ref, books[target].FileName, got, f.Tier()),
				})
			}
		}
	}

	return errs
}
