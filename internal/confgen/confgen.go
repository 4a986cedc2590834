// Package confgen renders the scheduler's cloud.conf snippet: node
// definitions, node set lines and partition lines derived from the cluster
// configuration. The placement-topology counterpart lives in the topology
// package; both artifacts share the same preamble and key=value grammar.
package confgen

import (
	"fmt"
	"strings"

	"github.com/hpcops/slurmtopo/internal/config"
	"github.com/hpcops/slurmtopo/internal/hostlist"
	"github.com/hpcops/slurmtopo/internal/topology"
)

type pair struct {
	key   string
	value string
}

// confLine renders ordered key=value pairs, dropping pairs with empty values.
func confLine(pairs []pair) string {
	var parts []string
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		parts = append(parts, p.key+"="+p.value)
	}
	return strings.Join(parts, " ")
}

// nodeBlocks returns the static and dynamic hostlist expressions of a group;
// either may be empty.
func nodeBlocks(static, dynamic []string) (string, string, error) {
	staticList, err := hostlist.Compress(static)
	if err != nil {
		return "", "", err
	}
	dynamicList, err := hostlist.Compress(dynamic)
	if err != nil {
		return "", "", err
	}
	return staticList, dynamicList, nil
}

func nodesetLines(name, staticList, dynamicList string) []string {
	var lines []string
	for _, nodelist := range []string{staticList, dynamicList} {
		if nodelist == "" {
			continue
		}
		lines = append(lines, confLine([]pair{
			{"NodeName", nodelist},
			{"State", "CLOUD"},
		}))
	}

	var blocks []string
	for _, nodelist := range []string{staticList, dynamicList} {
		if nodelist != "" {
			blocks = append(blocks, nodelist)
		}
	}
	if len(blocks) > 0 {
		lines = append(lines, confLine([]pair{
			{"NodeSet", name},
			{"Nodes", strings.Join(blocks, ",")},
		}))
	}
	return lines
}

func partitionLine(p config.Partition) string {
	nodesets := append(append([]string{}, p.NodeGroups...), p.TpuNodeGroups...)
	return confLine([]pair{
		{"PartitionName", p.Name},
		{"Nodes", strings.Join(nodesets, ",")},
		{"State", "UP"},
	})
}

// Render produces the cloud.conf artifact for the configuration.
func Render(cfg *config.Config) (string, error) {
	sections := []string{strings.TrimSuffix(topology.FilePreamble, "\n")}

	for _, g := range cfg.NodeGroups {
		staticList, dynamicList, err := nodeBlocks(g.StaticNodeNames(), g.DynamicNodeNames())
		if err != nil {
			return "", fmt.Errorf("node group %q: %w", g.Name, err)
		}
		if lines := nodesetLines(g.Name, staticList, dynamicList); lines != nil {
			sections = append(sections, strings.Join(lines, "\n"))
		}
	}
	for _, g := range cfg.TpuNodeGroups {
		staticList, dynamicList, err := nodeBlocks(g.StaticNodeNames(), g.DynamicNodeNames())
		if err != nil {
			return "", fmt.Errorf("tpu node group %q: %w", g.Name, err)
		}
		if lines := nodesetLines(g.Name, staticList, dynamicList); lines != nil {
			sections = append(sections, strings.Join(lines, "\n"))
		}
	}
	for _, p := range cfg.Partitions {
		sections = append(sections, partitionLine(p))
	}

	return strings.Join(sections, "\n\n") + "\n", nil
}
