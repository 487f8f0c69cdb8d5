package paging

// Page is an optional pagination request. A nil *Page means the full,
// unpaginated result set; limit/offset apply only when both a page number
// and a page size were supplied by the caller.
type Page struct {
	Number int
	Size   int
}

// New returns a Page only when both number and size are present and positive.
func New(number, size *int) *Page {
	if number == nil || size == nil {
		return nil
	}
	if *number <= 0 || *size <= 0 {
		return nil
	}
	return &Page{Number: *number, Size: *size}
}

func (p *Page) Limit() int {
	return p.Size
}

func (p *Page) Offset() int {
	return (p.Number - 1) * p.Size
}
