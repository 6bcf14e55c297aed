package types

import "sort"

// ScheduleIndex maps a configuration key (the schedule name prefix shared by all schedules of one
// software update configuration) to the set of schedule names found for it.
type ScheduleIndex struct {
	Schedules map[string]map[string]struct{}
	Anomalies []string
}

func NewScheduleIndex() *ScheduleIndex {
	return &ScheduleIndex{
		Schedules: map[string]map[string]struct{}{},
		Anomalies: []string{},
	}
}

func (index *ScheduleIndex) Add(configurationKey string, scheduleName string) {
	names, ok := index.Schedules[configurationKey]
	if !ok {
		names = map[string]struct{}{}
		index.Schedules[configurationKey] = names
	}
	names[scheduleName] = struct{}{}
}

func (index *ScheduleIndex) AddAnomaly(scheduleName string) {
	index.Anomalies = append(index.Anomalies, scheduleName)
}

// ScheduleNames returns the sorted schedule names for a configuration key.
func (index *ScheduleIndex) ScheduleNames(configurationKey string) []string {
	names := make([]string, 0, len(index.Schedules[configurationKey]))
	for name := range index.Schedules[configurationKey] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (index *ScheduleIndex) ScheduleCount() int {
	count := 0
	for _, names := range index.Schedules {
		count += len(names)
	}
	return count
}

// ConfigurationRegistry maps a software update configuration id to its name. The name is also the
// configuration key used by ScheduleIndex.
type ConfigurationRegistry struct {
	Names map[string]string
}

func NewConfigurationRegistry() *ConfigurationRegistry {
	return &ConfigurationRegistry{Names: map[string]string{}}
}

// Add records id -> name and reports whether the entry was new. The first name seen wins.
func (registry *ConfigurationRegistry) Add(id string, name string) bool {
	if _, exists := registry.Names[id]; exists {
		return false
	}
	registry.Names[id] = name
	return true
}

// IDs returns the configuration ids in sorted order.
func (registry *ConfigurationRegistry) IDs() []string {
	ids := make([]string, 0, len(registry.Names))
	for id := range registry.Names {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (registry *ConfigurationRegistry) Len() int {
	return len(registry.Names)
}

type JobSchedule struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Properties JobScheduleProperties `json:"properties"`
}

type JobScheduleProperties struct {
	JobScheduleID string           `json:"jobScheduleId"`
	Runbook       NamedAssociation `json:"runbook"`
	Schedule      NamedAssociation `json:"schedule"`
}

type NamedAssociation struct {
	Name string `json:"name"`
}

type SoftwareUpdateConfiguration struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type LinkedWorkspace struct {
	ID string `json:"id"`
}

type Solution struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
}
