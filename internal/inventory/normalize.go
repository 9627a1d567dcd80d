package inventory

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/go-connections/nat"
	"github.com/docker/go-units"

	"dockpanel/internal/constants"
)

const (
	sentinel      = constants.Sentinel
	notApplicable = constants.NotApplicable
	statusRunning = constants.StatusRunning
)

// NormalizeContainer maps a raw container inspection object to a display record.
// Missing nested objects yield placeholders; only undecodable JSON is an error.
func NormalizeContainer(raw json.RawMessage) (ContainerRecord, error) {
	var c types.ContainerJSON
	if err := json.Unmarshal(raw, &c); err != nil {
		return ContainerRecord{}, fmt.Errorf("failed to decode container inspection: %w", err)
	}
	return FromContainerJSON(c), nil
}

// FromContainerJSON builds a record from an already decoded inspection
func FromContainerJSON(c types.ContainerJSON) ContainerRecord {
	record := ContainerRecord{
		ID:     sentinel,
		Name:   sentinel,
		Image:  sentinel,
		Status: sentinel,
		Mounts: formatMounts(c.Mounts),
		Ports:  notApplicable,
		State:  sentinel,
		Health: notApplicable,
		Host:   sentinel,
		GPU:    notApplicable,
	}

	if base := c.ContainerJSONBase; base != nil {
		record.ID = orSentinel(base.ID)
		record.Name = orSentinel(strings.TrimPrefix(base.Name, "/"))

		if base.State != nil {
			record.Status = orSentinel(base.State.Status)
			record.State = record.Status
			if base.State.Health != nil {
				record.Health = orSentinel(base.State.Health.Status)
			}
		}

		if base.HostConfig != nil && base.HostConfig.DeviceRequests != nil {
			var caps []string
			for _, req := range base.HostConfig.DeviceRequests {
				for _, group := range req.Capabilities {
					caps = append(caps, group...)
				}
			}
			record.GPU = orSentinel(strings.Join(caps, ", "))
		}
	}

	if c.Config != nil {
		record.Image = orSentinel(c.Config.Image)
		record.Host = orSentinel(c.Config.Hostname)
	}

	if c.NetworkSettings != nil && c.NetworkSettings.Ports != nil {
		record.Ports = orSentinel(FormatPorts(c.NetworkSettings.Ports))
	}

	return record
}

// NormalizeImage maps a raw image inspection object to a display record
func NormalizeImage(raw json.RawMessage) (ImageRecord, error) {
	var img types.ImageInspect
	if err := json.Unmarshal(raw, &img); err != nil {
		return ImageRecord{}, fmt.Errorf("failed to decode image inspection: %w", err)
	}

	record := ImageRecord{
		ID:        orSentinel(img.ID),
		RepoTags:  notApplicable,
		Size:      img.Size,
		SizeHuman: units.HumanSize(float64(img.Size)),
	}
	if len(img.RepoTags) > 0 {
		record.RepoTags = strings.Join(img.RepoTags, ", ")
	}
	return record, nil
}

// FormatPorts renders a port map as "hostIP:hostPort->port" per binding,
// or the bare port spec when the port is exposed but unpublished.
// Ports are ordered by number, then protocol.
func FormatPorts(ports nat.PortMap) string {
	keys := make([]nat.Port, 0, len(ports))
	for port := range ports {
		keys = append(keys, port)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Int() != keys[j].Int() {
			return keys[i].Int() < keys[j].Int()
		}
		return keys[i].Proto() < keys[j].Proto()
	})

	entries := make([]string, 0, len(keys))
	for _, port := range keys {
		bindings := ports[port]
		if len(bindings) == 0 {
			entries = append(entries, string(port))
			continue
		}
		rendered := make([]string, 0, len(bindings))
		for _, b := range bindings {
			rendered = append(rendered, fmt.Sprintf("%s:%s->%s", b.HostIP, b.HostPort, port))
		}
		entries = append(entries, strings.Join(rendered, ", "))
	}
	return strings.Join(entries, ", ")
}

func formatMounts(mounts []types.MountPoint) string {
	if len(mounts) == 0 {
		return sentinel
	}
	parts := make([]string, 0, len(mounts))
	for _, m := range mounts {
		parts = append(parts, fmt.Sprintf("%s:%s", m.Source, m.Destination))
	}
	return strings.Join(parts, ", ")
}

func orSentinel(value string) string {
	if value == "" {
		return sentinel
	}
	return value
}
