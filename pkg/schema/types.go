package schema

// Definition is the document form of a machine: the full catalog plus the
// transition table, without behaviors.
type Definition struct {
	Name        string          `yaml:"name"`
	States      []StateDef      `yaml:"states"`
	Inputs      []InputDef      `yaml:"inputs"`
	Outputs     []string        `yaml:"outputs"`
	Transitions []TransitionDef `yaml:"transitions"`
}

// StateDef declares one state.
type StateDef struct {
	Name       string `yaml:"name"`
	Doc        string `yaml:"doc,omitempty"`
	Initial    bool   `yaml:"initial,omitempty"`
	Serialized string `yaml:"serialized,omitempty"`
}

// InputDef declares one input and its ordered parameter names.
type InputDef struct {
	Name   string   `yaml:"name"`
	Params []string `yaml:"params,omitempty"`
}

// TransitionDef declares one transition.
type TransitionDef struct {
	From    string   `yaml:"from"`
	Input   string   `yaml:"input"`
	Outputs []string `yaml:"outputs,omitempty"`
	To      string   `yaml:"to"`
}
