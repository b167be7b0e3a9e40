package gen

type param int

const (
	paramString param = iota
	paramBool
	paramList
)

type method struct {
	Name  string
	Param param
}

// commandMethods maps item-level attribute keys to argbuilder.Command methods.
var commandMethods = map[string]method{
	"version":    {"Version", paramString},
	"author":     {"Author", paramString},
	"about":      {"About", paramString},
	"long_about": {"LongAbout", paramString},
	"aliases":    {"Aliases", paramList},
	"hidden":     {"Hidden", paramBool},
}

// argMethods maps member-level attribute keys to argbuilder.Arg methods.
var argMethods = map[string]method{
	"short":           {"Short", paramString},
	"long":            {"Long", paramString},
	"help":            {"Help", paramString},
	"long_help":       {"LongHelp", paramString},
	"takes_value":     {"TakesValue", paramBool},
	"multiple":        {"Multiple", paramBool},
	"required":        {"Required", paramBool},
	"default_value":   {"DefaultValue", paramString},
	"possible_values": {"PossibleValues", paramList},
	"aliases":         {"Aliases", paramList},
	"value_name":      {"ValueName", paramString},
	"env":             {"Env", paramString},
	"hidden":          {"Hidden", paramBool},
	"global":          {"Global", paramBool},
}

// variadic reports whether a method takes ...string.
func variadic(name string) bool {
	return name == "Aliases" || name == "PossibleValues"
}
