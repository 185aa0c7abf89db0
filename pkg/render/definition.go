package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	yamlv2 "gopkg.in/yaml.v2"
	"sigs.k8s.io/yaml"

	"github.com/kralicky/papyrusctl/pkg/markers"
	"github.com/kralicky/papyrusctl/pkg/remote"
	"github.com/kralicky/papyrusctl/pkg/webhook"
)

// Definition describes one map: where the world lives, where the render goes
// and what happens after rendering.
type Definition struct {
	Name           string               `json:"name,omitempty"`
	World          string               `json:"world"`
	Dest           string               `json:"dest"`
	DefaultOptions Options              `json:"defaultoptions,omitempty"`
	Tasks          []Options            `json:"tasks,omitempty"`
	Spreadsheet    *markers.SheetSpec   `json:"spreadsheet,omitempty"`
	Remote         *remote.RsyncSpec    `json:"remote,omitempty"`
	Webhook        *webhook.DiscordSpec `json:"webhook,omitempty"`

	// File is the path the definition was loaded from.
	File string `json:"-"`
}

func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	def.File = path
	return def, nil
}

// definitionOrder holds the parts of a definition whose mapping order
// matters. The JSON conversion done by sigs.k8s.io/yaml does not keep it.
type definitionOrder struct {
	DefaultOptions Options   `yaml:"defaultoptions"`
	Tasks          []Options `yaml:"tasks"`
	Spreadsheet    struct {
		Dimensions yamlv2.MapSlice `yaml:"dimensions"`
	} `yaml:"spreadsheet"`
}

func ParseDefinition(data []byte) (*Definition, error) {
	def := &Definition{}
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	var order definitionOrder
	if err := yamlv2.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	def.DefaultOptions = order.DefaultOptions
	def.Tasks = order.Tasks
	if def.Spreadsheet != nil {
		def.Spreadsheet.Order = nil
		for _, item := range order.Spreadsheet.Dimensions {
			def.Spreadsheet.Order = append(def.Spreadsheet.Order, fmt.Sprint(item.Key))
		}
	}
	return def, nil
}

// Validate reports every problem with the definition at once.
func (d *Definition) Validate() error {
	var result *multierror.Error
	if d.World == "" {
		result = multierror.Append(result, fmt.Errorf("%w: world", ErrMissingField))
	}
	if d.Dest == "" {
		result = multierror.Append(result, fmt.Errorf("%w: dest", ErrMissingField))
	}
	if s := d.Spreadsheet; s != nil {
		if s.Type != markers.TypeGoogleSheet {
			result = multierror.Append(result, fmt.Errorf("spreadsheet: %w %q", ErrUnknownType, s.Type))
		} else if s.ID == "" {
			result = multierror.Append(result, fmt.Errorf("%w: spreadsheet.id", ErrMissingField))
		}
	}
	if r := d.Remote; r != nil {
		if r.Type != remote.TypeRsync {
			result = multierror.Append(result, fmt.Errorf("remote: %w %q", ErrUnknownType, r.Type))
		} else if err := r.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("remote: %w", err))
		}
	}
	if w := d.Webhook; w != nil {
		if w.Type != webhook.TypeDiscord {
			result = multierror.Append(result, fmt.Errorf("webhook: %w %q", ErrUnknownType, w.Type))
		} else if w.URL == "" {
			result = multierror.Append(result, fmt.Errorf("%w: webhook.url", ErrMissingField))
		}
	}
	return result.ErrorOrNil()
}

// Commands returns the PapyrusCs arguments for each task.
func (d *Definition) Commands() [][]string {
	commands := make([][]string, 0, len(d.Tasks))
	for _, task := range d.Tasks {
		cmd := []string{"--world", d.World, "--output", d.Dest}
		cmd = append(cmd, d.DefaultOptions...)
		cmd = append(cmd, task...)
		commands = append(commands, cmd)
	}
	return commands
}

func (d *Definition) DisplayName() string {
	file := filepath.Base(d.File)
	if d.Name == "" {
		return file
	}
	return fmt.Sprintf("%s (%s)", d.Name, file)
}
