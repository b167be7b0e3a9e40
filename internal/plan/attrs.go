package plan

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"argspec-generator/internal/attr"
	"argspec-generator/internal/diagnostic"
	"argspec-generator/internal/match"
)

// Control keys steer compilation and never become setters.
const (
	keyName       = "name"
	keyParse      = "parse"
	keySubcommand = "subcommand"
	keyFlatten    = "flatten"
	keyOptional   = "optional"
	keySkip       = "skip"

	keyVersion = "version"
	keyAuthor  = "author"
	keyAbout   = "about"

	keyShort          = "short"
	keyLong           = "long"
	keyDefaultValue   = "default_value"
	keyPossibleValues = "possible_values"

	rawSuffix = "_raw"
)

var memberControlKeys = []string{keyName, keyParse, keySubcommand, keyFlatten, keyOptional, keySkip}

var commandMetaKeys = []string{keyName, keyVersion, keyAuthor, keyAbout}

// KnownArgKeys are the argument setters the builder understands.
var KnownArgKeys = []string{
	"help", "long_help", keyShort, keyLong, "takes_value", "multiple", "required",
	keyDefaultValue, keyPossibleValues, "validator", "aliases", "alias", "visible_alias",
	"visible_aliases", "value_name", "value_names", "env", "hidden", "global",
	"conflicts_with", "requires", "required_unless", "number_of_values", "min_values",
	"max_values", "use_delimiter", "value_delimiter", "index", "group", "display_order",
	"case_insensitive", "last", "allow_hyphen_values", "require_equals",
}

// KnownCommandKeys are the command setters the builder understands.
var KnownCommandKeys = []string{
	keyName, keyVersion, keyAuthor, keyAbout, "long_about", "alias", "aliases",
	"visible_alias", "visible_aliases", "after_help", "before_help", "bin_name",
	"display_order", "hidden", "setting", "settings", "global_setting", "long_version",
	"usage", "template", "max_term_width",
}

// checkKeys reports attribute keys outside known. Unknown keys still reach
// the builder through its generic setter unless strict is set.
func (r *Resolver) checkKeys(entries attr.Entries, known []string, loc diagnostic.Location) error {
	for _, e := range entries {
		key := strings.TrimSuffix(e.Key, rawSuffix)
		if slices.Contains(known, key) {
			continue
		}

		msg := fmt.Sprintf("unknown attribute %q", e.Key)

		if r.config.StrictAttributes {
			return &CompileError{Kind: KindAttributeParse, Item: loc.Item, Member: loc.Member, Pos: e.Pos, Msg: msg}
		}

		var suggestions []string
		if s, ok := match.Suggest(key, known); ok {
			suggestions = append(suggestions, s)
		}

		pos := e.Pos
		if !pos.IsValid() {
			pos = loc.Pos
		}

		r.diags.AddWarning("unknown_attribute", msg,
			diagnostic.Location{Item: loc.Item, Member: loc.Member, Pos: pos}, suggestions...)
	}

	return nil
}

// argSettings turns member attributes into the setter list of an argument.
// Bare short and long default from the argument name.
func argSettings(entries attr.Entries, name string) (attr.Entries, error) {
	out := make(attr.Entries, 0, len(entries))

	for _, e := range entries.Effective().Without(memberControlKeys...) {
		switch e.Key {
		case keyShort, keyLong:
			if e.Value.Kind == attr.KindBool {
				if e.Value.Text != "true" {
					continue
				}

				e.Value = attr.String(defaultSwitch(e.Key, name))
			}

			if e.Key == keyShort && utf8.RuneCountInString(e.Value.AsString()) != 1 {
				return nil, &CompileError{
					Kind: KindAttributeParse,
					Pos:  e.Pos,
					Msg:  fmt.Sprintf("short must be a single character, got %q", e.Value.AsString()),
				}
			}

		case keyPossibleValues:
			if e.Value.Kind != attr.KindList {
				e.Value = attr.List(e.Value.AsList("|")...)
			}
		}

		out = append(out, e)
	}

	return out, nil
}

func defaultSwitch(key, name string) string {
	if key == keyLong {
		return name
	}

	r, _ := utf8.DecodeRuneInString(name)

	return string(r)
}

// flag reads a boolean control attribute. A missing key is false.
func flag(entries attr.Entries, key string) (bool, error) {
	e, ok := entries.Lookup(key)
	if !ok {
		return false, nil
	}

	b, err := e.Value.AsBool()
	if err != nil {
		return false, &CompileError{Kind: KindAttributeParse, Pos: e.Pos, Msg: key + ": " + err.Error()}
	}

	return b, nil
}
