package domain

// Scope is a named, page-bounded, single-category slice of the source
// material; the unit of scheduling and navigation. Scopes are declared
// statically and immutable after startup validation.
type Scope struct {
	ID        string
	DisplayID *string
	StartPage int
	EndPage   int
	Category  Category
}

// GroupKey returns the identifier under which the scope is grouped for
// scheduling. Two scopes sharing a DisplayID form one schedulable
// "lesson slot" and always receive the same test date.
func (s Scope) GroupKey() string {
	if s.DisplayID != nil {
		return *s.DisplayID
	}
	return s.ID
}

// ContainsPage reports whether the page falls inside the scope's
// inclusive page range.
func (s Scope) ContainsPage(page int) bool {
	return page >= s.StartPage && page <= s.EndPage
}
