// SPDX-License-Identifier: MPL-2.0

package catalog

import "github.com/invowk/grouprun/pkg/types"

// DescriptionSource provides descriptions keyed by group and command name.
type DescriptionSource interface {
	Describe(group, command string) (string, bool)
}

// AttachDescriptions returns a copy of c where every command carries the
// description found in src, or types.NoDescription when src has no entry
// (or src is nil). c itself is not modified.
func AttachDescriptions(c *Catalog, src DescriptionSource) *Catalog {
	out := Empty()
	for name, e := range c.groups {
		cmds := make(map[CommandName]Command, len(e.commands))
		for cname, cmd := range e.commands {
			cmd.Description = types.NoDescription
			if src != nil {
				if desc, ok := src.Describe(string(name), string(cname)); ok && desc != "" {
					cmd.Description = types.DescriptionText(desc)
				}
			}
			cmds[cname] = cmd
		}
		out.groups[name] = &groupEntry{group: e.group, commands: cmds}
	}
	return out
}
