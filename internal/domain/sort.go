package domain

// SortKind orders the offer list.
type SortKind int

const (
	SortPopular SortKind = iota
	SortPriceLowToHigh
	SortPriceHighToLow
	SortTopRated
)

var sortLabels = []string{
	SortPopular:        "Popular",
	SortPriceLowToHigh: "Price: low to high",
	SortPriceHighToLow: "Price: high to low",
	SortTopRated:       "Top rated first",
}

// String returns the label shown in the sort menu.
func (k SortKind) String() string {
	if k < 0 || int(k) >= len(sortLabels) {
		return sortLabels[SortPopular]
	}
	return sortLabels[k]
}

// Next cycles to the following sort kind.
func (k SortKind) Next() SortKind {
	return SortKind((int(k) + 1) % len(sortLabels))
}

// ParseSortKind maps a label back to its kind, defaulting to SortPopular.
func ParseSortKind(label string) SortKind {
	for i, l := range sortLabels {
		if l == label {
			return SortKind(i)
		}
	}
	return SortPopular
}
