package entity

// Location tags classifying the store tier.
const (
	TagMainStore = "Main Store"
	TagSubStore  = "Sub Store"
)

// Location is a facility location, possibly tagged as main store or substore.
type Location struct {
	UUID string
	Name string
	Tags []string
}

// HasTag reports whether the location carries the given tag.
func (l Location) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
