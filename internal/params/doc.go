// Package params holds the value model shared by the expansion pipeline.
//
// A Params is an insertion-ordered mapping from parameter name to a
// cty.Value. Order matters: the combination expander and the definition
// merger must produce the same sequence of parameter sets on every run, and
// YAML mappings are the source of that order. Values are cty values so the
// schema package can check and convert them against a generator's declared
// parameter types.
package params
