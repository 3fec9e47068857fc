// Package comparators builds comparison functions over values of one type:
// PropertyComparator orders values by a named property read through a
// property.Accessor, and the From* factories derive orderings from an
// externally supplied ranking such as a list or the values of a map.
//
// Every comparator here is a plain compare.Func at heart and can be handed to
// slices.SortFunc:
//
//	slices.SortFunc(people, comparators.ByProperty[Person]("name").Func())
package comparators
