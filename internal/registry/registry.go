// Package registry holds the configured set of reminders and tag groups.
//
// The registry is loaded once from a TOML file and passed down explicitly to
// the components that need it (router, server, exporter). There is no
// process-wide ambient state.
package registry

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ferrylab/tagmind/internal/model"
)

// fileConfig is the on-disk TOML shape.
//
//	[[reminder]]
//	name = "Coffee Machine"
//	tag = "04:a1:b2:c3"
//	interval = 7
//	unit = "days"
//
//	[groups]
//	"kitchen-door" = ["Coffee Machine", "Dish Rack"]
type fileConfig struct {
	Reminders []reminderConfig    `toml:"reminder"`
	Groups    map[string][]string `toml:"groups"`
}

type reminderConfig struct {
	Name     string     `toml:"name"`
	Tag      string     `toml:"tag"`
	Interval int        `toml:"interval"`
	Unit     model.Unit `toml:"unit"`
}

// Registry is an immutable snapshot of the configured reminders and groups.
type Registry struct {
	reminders []*model.Reminder          // configuration order
	byKey     map[string]*model.Reminder // normalized name -> reminder
	byTag     map[string]*model.Reminder // direct tag binding -> reminder
	groups    map[string][]string        // group tag -> member names (as configured)
}

// New builds a registry from already-validated reminders and groups.
// It returns an error when a reminder fails validation or two reminders
// normalize to the same name.
func New(reminders []*model.Reminder, groups map[string]*model.Group) (*Registry, error) {
	r := &Registry{
		byKey:  make(map[string]*model.Reminder),
		byTag:  make(map[string]*model.Reminder),
		groups: make(map[string][]string),
	}
	for _, rem := range reminders {
		if err := model.ValidateReminder(rem); err != nil {
			return nil, fmt.Errorf("reminder %q: %w", rem.Name, err)
		}
		key := rem.Key()
		if _, exists := r.byKey[key]; exists {
			return nil, fmt.Errorf("duplicate reminder name %q", rem.Name)
		}
		r.byKey[key] = rem
		r.reminders = append(r.reminders, rem)
		// First binding wins when two reminders share a tag; groups are the
		// supported way to fan one tag out to several reminders.
		if _, bound := r.byTag[rem.Tag]; !bound {
			r.byTag[rem.Tag] = rem
		}
	}
	for tag, g := range groups {
		r.groups[tag] = g.Members
	}
	return r, nil
}

// Load reads and validates the reminders file at path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reminders file: %w", err)
	}
	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse reminders file %s: %w", path, err)
	}

	reminders := make([]*model.Reminder, 0, len(cfg.Reminders))
	for _, rc := range cfg.Reminders {
		rem := &model.Reminder{
			Name:     rc.Name,
			Tag:      rc.Tag,
			Interval: rc.Interval,
			Unit:     rc.Unit,
		}
		if rem.Interval == 0 {
			rem.Interval = model.DefaultInterval
		}
		if rem.Unit == "" {
			rem.Unit = model.DefaultUnit
		}
		reminders = append(reminders, rem)
	}

	groups := make(map[string]*model.Group, len(cfg.Groups))
	for tag, members := range cfg.Groups {
		groups[tag] = &model.Group{Tag: tag, Members: members}
	}

	reg, err := New(reminders, groups)
	if err != nil {
		return nil, fmt.Errorf("reminders file %s: %w", path, err)
	}
	return reg, nil
}

// Reminders returns all configured reminders in configuration order.
func (r *Registry) Reminders() []*model.Reminder {
	return r.reminders
}

// ByKey returns the reminder with the given normalized name.
func (r *Registry) ByKey(key string) (*model.Reminder, bool) {
	rem, ok := r.byKey[key]
	return rem, ok
}

// ByTag returns the reminder directly bound to the given tag identifier.
func (r *Registry) ByTag(tag string) (*model.Reminder, bool) {
	rem, ok := r.byTag[tag]
	return rem, ok
}

// Group returns the member names of the group keyed by the given tag
// identifier, in configuration order.
func (r *Registry) Group(tag string) ([]string, bool) {
	members, ok := r.groups[tag]
	return members, ok
}

// Len returns the number of configured reminders.
func (r *Registry) Len() int {
	return len(r.reminders)
}
