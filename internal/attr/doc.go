// Package attr collects the attributes attached to schema items and members.
//
// Attributes come from three places: doc comments, structured entries (YAML
// mappings) and attribute text written in the tag grammar used by Go struct
// tags and //argspec: directives:
//
//	short=d,long=debug,help='Activate debug mode',parse(try_from_str=parseHex)
//
// Collect merges the sources into one ordered List. A non-empty doc comment
// contributes the first entry (about for items, help for members) so that an
// explicit entry with the same key overrides it: lookups are last-write-wins.
package attr
