package schema

import (
	"fmt"

	"argspec-generator/internal/diagnostic"
)

// Validate checks the structural shape of a Set: names, root and member
// layout. It does not classify types or resolve attributes; that happens
// during compilation.
func Validate(set *Set) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if set == nil {
		res.AddError("set_is_nil", "schema set is nil", diagnostic.Location{})
		return res
	}

	if len(set.Items) == 0 {
		res.AddError("empty_schema", "schema has no items", diagnostic.Location{})
		return res
	}

	seen := make(map[string]struct{}, len(set.Items))

	for _, it := range set.Items {
		loc := diagnostic.Location{Item: it.Name, Pos: it.Pos}

		if it.Name == "" {
			res.AddError("missing_item_name", "item has no name", loc)
			continue
		}

		if _, ok := seen[it.Name]; ok {
			res.AddError("duplicate_item", fmt.Sprintf("duplicate item %q", it.Name), loc)
			continue
		}

		seen[it.Name] = struct{}{}

		validateMembers(res, it)
	}

	if set.Root == "" {
		res.AddError("missing_root", "schema has no root item", diagnostic.Location{})
	} else if set.RootItem() == nil {
		res.AddError("root_not_found", fmt.Sprintf("root item %q not found", set.Root), diagnostic.Location{})
	}

	return res
}

func validateMembers(res *diagnostic.Diagnostics, it *Item) {
	names := make(map[string]struct{}, len(it.Members))

	for _, m := range it.Members {
		loc := diagnostic.Location{Item: it.Name, Member: m.Name, Pos: m.Pos}

		if m.Name == "" {
			res.AddError("missing_member_name", "member has no name", loc)
			continue
		}

		if _, ok := names[m.Name]; ok {
			res.AddError("duplicate_member", fmt.Sprintf("duplicate member %q", m.Name), loc)
		}

		names[m.Name] = struct{}{}

		switch it.Kind {
		case KindOptions:
			if len(m.Fields) > 0 {
				res.AddError("fields_on_field", "only command variants carry inline fields", loc)
			}

			if m.Type.IsZero() {
				res.AddError("missing_type", "field has no type", loc)
			}
		case KindCommands:
			if len(m.Fields) > 0 && !m.Type.IsZero() {
				res.AddError("ambiguous_variant",
					fmt.Sprintf("variant has both a payload type %s and inline fields", m.Type), loc)
			}

			validateMembers(res, &Item{Name: it.Name + "." + m.Name, Kind: KindOptions, Members: m.Fields})
		}
	}
}
