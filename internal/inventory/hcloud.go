package inventory

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// HCloudSource lists cluster servers through the Hetzner Cloud API and maps
// them to Instance records. The provider does not expose a physical host
// path, so these instances always take the synthetic padding path in the
// placement resolver.
type HCloudSource struct {
	client        *hcloud.Client
	labelSelector string
}

// NewHCloudSource builds a live inventory source for the given API token.
// labelSelector restricts the listing to the cluster's own servers.
func NewHCloudSource(token, labelSelector string) *HCloudSource {
	return &HCloudSource{
		client:        hcloud.NewClient(hcloud.WithToken(token)),
		labelSelector: labelSelector,
	}
}

// Instances lists all matching servers. Pagination is handled by the SDK.
func (s *HCloudSource) Instances(ctx context.Context) ([]Instance, error) {
	servers, err := s.client.Server.AllWithOpts(ctx, hcloud.ServerListOpts{
		ListOpts: hcloud.ListOpts{LabelSelector: s.labelSelector},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}

	instances := make([]Instance, 0, len(servers))
	for _, srv := range servers {
		inst := Instance{Name: srv.Name}
		if srv.Datacenter != nil {
			inst.Zone = srv.Datacenter.Name
			if srv.Datacenter.Location != nil {
				inst.Region = srv.Datacenter.Location.Name
			}
		}
		instances = append(instances, inst)
	}
	return instances, nil
}
