// Package inventory models live cloud instance records and exposes the
// lookup capabilities the topology builder consumes: node group definitions,
// the current instance snapshot and a node-name classifier.
package inventory

// Instance is one cloud instance record from the inventory snapshot.
type Instance struct {
	Name   string `mapstructure:"name" yaml:"name"`
	Region string `mapstructure:"region" yaml:"region"`
	Zone   string `mapstructure:"zone" yaml:"zone"`

	// PhysicalHost is the provider-reported hierarchical placement path,
	// slash-delimited (e.g. "/block/rack/host"). Empty when no placement
	// policy applies to the instance.
	PhysicalHost string `mapstructure:"physical_host" yaml:"physical_host"`
}

// Match is the outcome of classifying a node name against the known groups.
type Match int

const (
	// Unmatched means the name does not belong to any known node group.
	// Foreign and controller instances are expected in the inventory, so
	// this is not an error.
	Unmatched Match = iota

	// Matched means the name belongs to a known node group.
	Matched

	// Malformed means the name claims a known group but cannot be a member
	// of it. This is escalated: a silently dropped member would yield an
	// inconsistent topology.
	Malformed
)

// Classification is the typed result of classifying a node name.
type Classification struct {
	Match  Match
	Group  string // group name, when Matched
	Reason string // human-readable cause, when Malformed
}
