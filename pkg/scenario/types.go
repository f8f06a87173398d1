// Package scenario replays scripted drag interactions against a manager on
// the test backend and records what every step did.
package scenario

// Action names a scenario step.
type Action string

const (
	ActionBeginDrag    Action = "begin_drag"
	ActionPublish      Action = "publish"
	ActionHover        Action = "hover"
	ActionDrop         Action = "drop"
	ActionEndDrag      Action = "end_drag"
	ActionAddSource    Action = "add_source"
	ActionAddTarget    Action = "add_target"
	ActionRemoveSource Action = "remove_source"
	ActionRemoveTarget Action = "remove_target"
)

// Scenario is a set of named handlers and the steps to run against them.
type Scenario struct {
	Name        string       `yaml:"name,omitempty" toml:"name,omitempty" mapstructure:"name" jsonschema:"description=Scenario name shown in reports"`
	Description string       `yaml:"description,omitempty" toml:"description,omitempty" mapstructure:"description" jsonschema:"description=Free-form description"`
	Sources     []SourceSpec `yaml:"sources,omitempty" toml:"sources,omitempty" mapstructure:"sources" jsonschema:"description=Drag sources available to the steps"`
	Targets     []TargetSpec `yaml:"targets,omitempty" toml:"targets,omitempty" mapstructure:"targets" jsonschema:"description=Drop targets available to the steps"`
	Steps       []Step       `yaml:"steps" toml:"steps" mapstructure:"steps" jsonschema:"description=Ordered steps"`
}

// SourceSpec declares a drag source.
type SourceSpec struct {
	Name string `yaml:"name" toml:"name" mapstructure:"name" jsonschema:"description=Name used by steps"`
	Type string `yaml:"type" toml:"type" mapstructure:"type" jsonschema:"description=Item type the source produces"`
	// Item is returned from BeginDrag. Leaving it out makes the source
	// decline every drag.
	Item     interface{} `yaml:"item,omitempty" toml:"item,omitempty" mapstructure:"item" jsonschema:"description=Item produced when the drag begins; omit to decline"`
	CanDrag  *bool       `yaml:"can_drag,omitempty" toml:"can_drag,omitempty" mapstructure:"can_drag" jsonschema:"description=Whether the source may be dragged (default: true)"`
	Deferred bool        `yaml:"deferred,omitempty" toml:"deferred,omitempty" mapstructure:"deferred" jsonschema:"description=Register only when an add_source step names it"`
}

// TargetSpec declares a drop target.
type TargetSpec struct {
	Name       string      `yaml:"name" toml:"name" mapstructure:"name" jsonschema:"description=Name used by steps"`
	Types      []string    `yaml:"types" toml:"types" mapstructure:"types" jsonschema:"minItems=1,description=Item types the target accepts"`
	CanDrop    *bool       `yaml:"can_drop,omitempty" toml:"can_drop,omitempty" mapstructure:"can_drop" jsonschema:"description=Whether the target accepts drops (default: true)"`
	DropResult interface{} `yaml:"drop_result,omitempty" toml:"drop_result,omitempty" mapstructure:"drop_result" jsonschema:"description=Result returned from Drop; omit to defer to outer targets"`
	Deferred   bool        `yaml:"deferred,omitempty" toml:"deferred,omitempty" mapstructure:"deferred" jsonschema:"description=Register only when an add_target step names it"`
}

// Step is one action. Which fields apply depends on Action.
type Step struct {
	Action Action `yaml:"action" toml:"action" mapstructure:"action" jsonschema:"enum=begin_drag,enum=publish,enum=hover,enum=drop,enum=end_drag,enum=add_source,enum=add_target,enum=remove_source,enum=remove_target"`
	// Sources are the begin_drag candidates, in priority order.
	Sources []string `yaml:"sources,omitempty" toml:"sources,omitempty" mapstructure:"sources" jsonschema:"description=begin_drag candidates in priority order"`
	// Targets are the hovered targets, innermost first.
	Targets      []string `yaml:"targets,omitempty" toml:"targets,omitempty" mapstructure:"targets" jsonschema:"description=Hovered targets, innermost first"`
	Name         string   `yaml:"name,omitempty" toml:"name,omitempty" mapstructure:"name" jsonschema:"description=Handler added or removed by add_*/remove_* steps"`
	Publish      *bool    `yaml:"publish,omitempty" toml:"publish,omitempty" mapstructure:"publish" jsonschema:"description=Publish the source on begin_drag (default: true)"`
	ClientOffset *Offset  `yaml:"client_offset,omitempty" toml:"client_offset,omitempty" mapstructure:"client_offset" jsonschema:"description=Pointer position for begin_drag and hover"`
	ExpectError  string   `yaml:"expect_error,omitempty" toml:"expect_error,omitempty" mapstructure:"expect_error" jsonschema:"description=Error code the step must fail with"`
}

// Offset is a pointer position.
type Offset struct {
	X float64 `yaml:"x" toml:"x" mapstructure:"x"`
	Y float64 `yaml:"y" toml:"y" mapstructure:"y"`
}
