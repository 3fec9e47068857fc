// Package sortable defines the Sortable interface for user types that carry
// their own ordering, plus wrapper types for common primitives.
//
// The natural ordering in the compare package honours Sortable values: when two
// values of the same type implement LessThan and Equals, those methods decide
// their order. The comparator factory accepts Sortable map values as well:
//
//	type Priority struct {
//	    Level int
//	    Name  string
//	}
//
//	func (p Priority) Equals(other Priority) bool {
//	    return p.Level == other.Level && p.Name == other.Name
//	}
//
//	func (p Priority) LessThan(other Priority) bool {
//	    if p.Level != other.Level {
//	        return p.Level < other.Level
//	    }
//	    return p.Name < other.Name
//	}
//
//	byPriority, err := comparators.FromSortableMapValues(tasks)
//
// The wrapper types are value types and safe for concurrent use.
package sortable
