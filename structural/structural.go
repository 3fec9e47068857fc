package structural

import "github.com/astrapi69/jobj-compare/property"

// defaultEngine backs the package-level functions.
var defaultEngine = New() //nolint:gochecknoglobals

// Equals calls Engine.Equals on the default engine.
func Equals(src, tgt any) (bool, error) {
	return defaultEngine.Equals(src, tgt)
}

// CompareTo calls Engine.CompareTo on the default engine.
func CompareTo(src, tgt any) (int, error) {
	return defaultEngine.CompareTo(src, tgt)
}

// CompareOnProperties calls Engine.CompareOnProperties on the default engine.
func CompareOnProperties(src, tgt any, names property.Names) (int, error) {
	return defaultEngine.CompareOnProperties(src, tgt, names)
}

// Compare calls Engine.Compare on the default engine.
func Compare(src, tgt any, names ...string) (int, error) {
	return defaultEngine.Compare(src, tgt, names...)
}

// CompareOnProperty calls Engine.CompareOnProperty on the default engine.
func CompareOnProperty(src, tgt any, name string) (int, error) {
	return defaultEngine.CompareOnProperty(src, tgt, name)
}

// GetCompareToResult calls Engine.GetCompareToResult on the default engine.
func GetCompareToResult(src, tgt any) (map[string]int, error) {
	return defaultEngine.GetCompareToResult(src, tgt)
}
