package config

import (
	"os"

	"github.com/astrapi69/jobj-compare/errors"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "JOBJ_COMPARE_"

// FromEnv returns a copy of c overridden by the environment:
//
//	JOBJ_COMPARE_TAG_NAME   JOBJ_COMPARE_GETTERS     JOBJ_COMPARE_DEEP
//	JOBJ_COMPARE_MAX_DEPTH  JOBJ_COMPARE_STRINGS     JOBJ_COMPARE_COLLATION
//	JOBJ_COMPARE_LOG_FORMAT JOBJ_COMPARE_LOG_LEVEL
//
// Unset variables leave the field alone. Malformed values are all reported
// together, and the result is validated.
func (c Config) FromEnv() (Config, error) {
	return c.fromLookup(os.LookupEnv)
}

func (c Config) fromLookup(lookup lookupFunc) (Config, error) {
	var problems errors.Collection

	set := func(target *string) func(string) {
		return func(value string) { *target = value }
	}

	readString(lookup, EnvPrefix+"TAG_NAME").doWithValue(set(&c.TagName))
	readString(lookup, EnvPrefix+"STRINGS").doWithValue(set(&c.Strings))
	readString(lookup, EnvPrefix+"COLLATION").doWithValue(set(&c.Collation))
	readString(lookup, EnvPrefix+"LOG_FORMAT").doWithValue(set(&c.Log.Format))
	readString(lookup, EnvPrefix+"LOG_LEVEL").doWithValue(set(&c.Log.Level))

	getters := readBool(lookup, EnvPrefix+"GETTERS")
	getters.doWithValue(func(value bool) { c.Getters = value })
	problems.Add(getters.problem())

	deep := readBool(lookup, EnvPrefix+"DEEP")
	deep.doWithValue(func(value bool) { c.Deep = value })
	problems.Add(deep.problem())

	maxDepth := readInt(lookup, EnvPrefix+"MAX_DEPTH")
	maxDepth.doWithValue(func(value int) { c.MaxDepth = value })
	problems.Add(maxDepth.problem())

	if problems.HasError() {
		return Config{}, problems.GetError()
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}
