// Package inventory turns docker listings and inspection payloads into
// the display records shown by the panel.
package inventory

// ContainerRecord is one row of the running or stopped container tables.
// Every field is display text; absent values hold a placeholder.
type ContainerRecord struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Image  string `json:"image" yaml:"image"`
	Status string `json:"status" yaml:"status"`
	Mounts string `json:"mounts" yaml:"mounts"`
	Ports  string `json:"ports" yaml:"ports"`
	State  string `json:"state" yaml:"state"`
	Health string `json:"health" yaml:"health"`
	Host   string `json:"host" yaml:"host"`
	GPU    string `json:"gpu" yaml:"gpu"`
}

// IsRunning reports whether the record belongs in the running table
func (r ContainerRecord) IsRunning() bool {
	return r.Status == statusRunning
}

// ImageRecord is one row of the unused images table
type ImageRecord struct {
	ID        string `json:"id" yaml:"id"`
	RepoTags  string `json:"repo_tags" yaml:"repo_tags"`
	Size      int64  `json:"size" yaml:"size"`
	SizeHuman string `json:"size_human" yaml:"size_human"`
}

// Partition splits records into running and stopped lists, preserving input order.
// Each record lands in exactly one of the two.
func Partition(records []ContainerRecord) (running, stopped []ContainerRecord) {
	running = make([]ContainerRecord, 0, len(records))
	stopped = make([]ContainerRecord, 0, len(records))
	for _, r := range records {
		if r.IsRunning() {
			running = append(running, r)
		} else {
			stopped = append(stopped, r)
		}
	}
	return running, stopped
}
