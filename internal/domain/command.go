package domain

// CommandType classifies what the user wants to do.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandHelp
	CommandQuit
	CommandListPresets
	CommandSelectPreset
	CommandSearchPresets
	CommandSetMode
	CommandSetFlour
	CommandSetDough
	CommandSetBatch
	CommandSetHydration
	CommandSetSalt
	CommandSetStarter
	CommandSetStarterHydration
	CommandCalculate
	CommandSetLevainRatio
	CommandTemperature
	CommandShow
	CommandHistory
	CommandReset
)

// String returns a snake_case command name.
func (c CommandType) String() string {
	for name, t := range commandNames {
		if t == c {
			return name
		}
	}
	return "unknown"
}

// Command represents a parsed user action.
type Command struct {
	Type CommandType
	Args []string // positional arguments, e.g. the grams for set_flour
}

// Arg returns the i-th argument or "" when absent.
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// commandNames maps snake_case names to CommandType values.
var commandNames = map[string]CommandType{
	"help":                  CommandHelp,
	"quit":                  CommandQuit,
	"list_presets":          CommandListPresets,
	"select_preset":         CommandSelectPreset,
	"search_presets":        CommandSearchPresets,
	"set_mode":              CommandSetMode,
	"set_flour":             CommandSetFlour,
	"set_dough":             CommandSetDough,
	"set_batch":             CommandSetBatch,
	"set_hydration":         CommandSetHydration,
	"set_salt":              CommandSetSalt,
	"set_starter":           CommandSetStarter,
	"set_starter_hydration": CommandSetStarterHydration,
	"calculate":             CommandCalculate,
	"set_levain_ratio":      CommandSetLevainRatio,
	"temperature":           CommandTemperature,
	"show":                  CommandShow,
	"history":               CommandHistory,
	"reset":                 CommandReset,
	"unknown":               CommandUnknown,
}

// CommandFromString converts a snake_case command name to a CommandType.
// Returns CommandUnknown for unrecognized names.
func CommandFromString(name string) CommandType {
	if t, ok := commandNames[name]; ok {
		return t
	}
	return CommandUnknown
}
