package engine

// SectionNavigator is the state machine over the ordered compartments of a
// form. The state is a single index; moving never skips sections and never
// touches the answer store.
type SectionNavigator struct {
	current int
	total   int
}

func NewSectionNavigator(totalSections int) *SectionNavigator {
	if totalSections < 0 {
		totalSections = 0
	}
	return &SectionNavigator{
		current: 0,
		total:   totalSections,
	}
}

func (n *SectionNavigator) Current() int {
	return n.current
}

func (n *SectionNavigator) TotalSections() int {
	return n.total
}

// Next advances to the following section. At the last section it is a no-op
// and reports false.
func (n *SectionNavigator) Next() bool {
	if !n.HasNext() {
		return false
	}
	n.current++
	return true
}

// Previous moves one section back. At the first section it is a no-op and
// reports false.
func (n *SectionNavigator) Previous() bool {
	if !n.HasPrevious() {
		return false
	}
	n.current--
	return true
}

func (n *SectionNavigator) HasNext() bool {
	return n.current < n.total-1
}

func (n *SectionNavigator) HasPrevious() bool {
	return n.current > 0
}

// OnLastSection reports whether submission may be offered. An empty form has
// no sections and counts as being on the last section.
func (n *SectionNavigator) OnLastSection() bool {
	return n.total == 0 || n.current == n.total-1
}
