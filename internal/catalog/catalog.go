// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"maps"
	"slices"

	"github.com/invowk/grouprun/internal/unit"
	"github.com/invowk/grouprun/pkg/types"
)

type (
	// Group is a discovered namespace directory.
	Group struct {
		Name GroupName
		// Dir is the absolute path of the group directory.
		Dir string
	}

	// GroupSet is the result of discovery, keyed by group name.
	GroupSet map[GroupName]Group

	// Command is one invocable command of a group. Commands are values and
	// never change after the catalog that holds them is built.
	Command struct {
		Name        CommandName
		Group       GroupName
		Path        string
		Description types.DescriptionText
		Unit        unit.Unit
	}

	// Catalog maps every discovered group to its commands. A Catalog is
	// immutable once built; rebuilding produces a new value.
	Catalog struct {
		groups map[GroupName]*groupEntry
	}

	groupEntry struct {
		group    Group
		commands map[CommandName]Command
	}
)

// Names returns the group names in sorted order.
func (s GroupSet) Names() []GroupName {
	return slices.Sorted(maps.Keys(s))
}

// Empty returns a catalog with no groups.
func Empty() *Catalog {
	return &Catalog{groups: make(map[GroupName]*groupEntry)}
}

// newCatalog seeds a catalog with every group of the set, each with no commands.
func newCatalog(groups GroupSet) *Catalog {
	c := Empty()
	for name, g := range groups {
		c.groups[name] = &groupEntry{group: g, commands: make(map[CommandName]Command)}
	}
	return c
}

// New builds a catalog from explicit groups and commands. Commands whose
// group is not in groups are ignored. It exists for embedders and tests that
// assemble a catalog without a filesystem.
func New(groups GroupSet, commands ...Command) *Catalog {
	c := newCatalog(groups)
	for _, cmd := range commands {
		if e, ok := c.groups[cmd.Group]; ok {
			e.commands[cmd.Name] = cmd
		}
	}
	return c
}

// Groups returns all groups sorted by name, including groups with no commands.
func (c *Catalog) Groups() []Group {
	out := make([]Group, 0, len(c.groups))
	for _, name := range c.GroupNames() {
		out = append(out, c.groups[name].group)
	}
	return out
}

// GroupNames returns all group names in sorted order.
func (c *Catalog) GroupNames() []GroupName {
	return slices.Sorted(maps.Keys(c.groups))
}

// HasGroup reports whether the group is part of the catalog.
func (c *Catalog) HasGroup(name GroupName) bool {
	_, ok := c.groups[name]
	return ok
}

// Commands returns the commands of a group sorted by name.
func (c *Catalog) Commands(group GroupName) []Command {
	e, ok := c.groups[group]
	if !ok {
		return nil
	}
	out := make([]Command, 0, len(e.commands))
	for _, name := range slices.Sorted(maps.Keys(e.commands)) {
		out = append(out, e.commands[name])
	}
	return out
}

// Lookup returns the command called name in group.
func (c *Catalog) Lookup(group GroupName, name CommandName) (Command, bool) {
	e, ok := c.groups[group]
	if !ok {
		return Command{}, false
	}
	cmd, ok := e.commands[name]
	return cmd, ok
}

// Matches returns the sorted names of every group that has a command called name.
func (c *Catalog) Matches(name CommandName) []GroupName {
	var out []GroupName
	for _, g := range c.GroupNames() {
		if _, ok := c.groups[g].commands[name]; ok {
			out = append(out, g)
		}
	}
	return out
}

// Len returns the total number of commands across all groups.
func (c *Catalog) Len() int {
	n := 0
	for _, e := range c.groups {
		n += len(e.commands)
	}
	return n
}

// Descriptions returns a snapshot of group -> command -> description.
func (c *Catalog) Descriptions() map[GroupName]map[CommandName]types.DescriptionText {
	out := make(map[GroupName]map[CommandName]types.DescriptionText, len(c.groups))
	for name, e := range c.groups {
		cmds := make(map[CommandName]types.DescriptionText, len(e.commands))
		for cname, cmd := range e.commands {
			cmds[cname] = cmd.Description
		}
		out[name] = cmds
	}
	return out
}

// Equal reports whether both catalogs have the same groups, command names and
// descriptions. Units and paths are not compared.
func (c *Catalog) Equal(other *Catalog) bool {
	if other == nil {
		return false
	}
	return maps.EqualFunc(c.Descriptions(), other.Descriptions(),
		func(a, b map[CommandName]types.DescriptionText) bool { return maps.Equal(a, b) })
}
