package types

import "strings"

// Region keys a set of regional card cost rates
type Region string

const (
	RegionEU         Region = "EU"
	RegionUSCredit   Region = "US_CREDIT"
	RegionUSRegDebit Region = "US_REG_DEBIT"
)

// String returns the string representation
func (r Region) String() string {
	return string(r)
}

// ParseRegion normalizes user spelling ("us-credit", "eu") to a region key.
// It does not check that a rate set exists for the key.
func ParseRegion(s string) Region {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return Region(s)
}
