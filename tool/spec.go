package tool

import (
	"cmp"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/alphadose/haxmap"
	"github.com/casualjim/rxagent/pkg/slogx"
	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/tidwall/gjson"
)

//go:embed data/*.json
var defaultCatalogFS embed.FS

// DefaultCatalogFiles lists the catalog files embedded in the binary, in load order.
var DefaultCatalogFiles = []string{
	"data/fda_drug_labeling_tools.json",
	"data/special_tools.json",
}

// Fields tells a label-backed executor where to search and what to return.
type Fields struct {
	SearchFields []string `json:"search_fields,omitempty"`
	ReturnFields []string `json:"return_fields,omitempty"`
}

// Spec is one entry of the tool catalog.
type Spec struct {
	Name        string             `json:"name,omitempty"`
	ToolName    string             `json:"tool_name,omitempty"`
	ID          string             `json:"id,omitempty"`
	Description string             `json:"description,omitempty"`
	Type        string             `json:"type,omitempty"`
	Parameter   *jsonschema.Schema `json:"parameter,omitempty"`
	Fields      Fields             `json:"fields"`
}

// CanonicalName is the first of name, tool_name and id that is set.
func (s Spec) CanonicalName() string {
	return cmp.Or(s.Name, s.ToolName, s.ID)
}

// RequiredArguments lists the arguments the spec's schema marks as required.
func (s Spec) RequiredArguments() []string {
	if s.Parameter == nil {
		return nil
	}
	return slices.Clone(s.Parameter.Required)
}

// ErrMissingArgument is returned for arguments that lack a required value.
var ErrMissingArgument = errors.New("missing required argument")

// CheckArguments verifies that args carries every required argument. A blank
// string counts as missing.
func (s Spec) CheckArguments(args Arguments) error {
	for _, name := range s.RequiredArguments() {
		v, ok := args[name]
		if str, isString := v.(string); isString {
			ok = strings.TrimSpace(str) != ""
		}
		if !ok || v == nil {
			return fmt.Errorf("%s: %w %q", s.CanonicalName(), ErrMissingArgument, name)
		}
	}
	return nil
}

// Catalog is a name-indexed set of tool specs. It is read-only once loaded.
type Catalog struct {
	specs *haxmap.Map[string, Spec]
}

// NewCatalog builds a catalog from specs. Later specs replace earlier ones
// with the same name; specs without a name are dropped.
func NewCatalog(specs ...Spec) *Catalog {
	c := &Catalog{specs: haxmap.New[string, Spec]()}
	for _, s := range specs {
		c.add(s)
	}
	return c
}

func (c *Catalog) add(s Spec) bool {
	name := s.CanonicalName()
	if name == "" {
		return false
	}
	c.specs.Set(name, s)
	return true
}

// Lookup returns the spec registered under name.
func (c *Catalog) Lookup(name string) (Spec, bool) {
	return c.specs.Get(name)
}

// Len returns the number of registered tools.
func (c *Catalog) Len() int {
	return int(c.specs.Len())
}

// Names returns the registered tool names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, c.specs.Len())
	c.specs.ForEach(func(name string, _ Spec) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// DefaultCatalog loads the catalog files embedded in the binary.
func DefaultCatalog() *Catalog {
	return LoadCatalog(defaultCatalogFS, DefaultCatalogFiles...)
}

// LoadCatalog reads the given files from fsys and merges them into one catalog.
// A file may hold a JSON array of specs or a JSON object whose values are specs.
// Files that cannot be read or parsed are logged and skipped; a partial catalog
// is still a valid catalog.
func LoadCatalog(fsys fs.FS, files ...string) *Catalog {
	c := NewCatalog()
	c.Load(fsys, files...)
	return c
}

// Load merges files from fsys into c with the same rules as LoadCatalog.
// Entries replace existing tools of the same name.
func (c *Catalog) Load(fsys fs.FS, files ...string) {
	log := slog.With(slogx.LoggerName("tool.catalog"))

	for _, file := range files {
		n, err := c.loadFile(fsys, file)
		if err != nil {
			log.Warn("failed to read tool catalog file", slog.String("file", file), slogx.Error(err))
			continue
		}
		log.Debug("loaded tool catalog file", slog.String("file", path.Base(file)), slog.Int("tools", n))
	}
}

func (c *Catalog) loadFile(fsys fs.FS, file string) (int, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return 0, err
	}
	if !gjson.ValidBytes(data) {
		return 0, fmt.Errorf("invalid json in %s", file)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsArray() && !doc.IsObject() {
		return 0, fmt.Errorf("%s: expected a list or an object of tool specs", file)
	}

	var loaded int
	doc.ForEach(func(_, entry gjson.Result) bool {
		if !entry.IsObject() {
			return true
		}
		var s Spec
		if err := json.Unmarshal([]byte(entry.Raw), &s); err != nil {
			slog.Warn("skipping malformed tool spec", slog.String("file", file), slogx.Error(err))
			return true
		}
		if c.add(s) {
			loaded++
		}
		return true
	})
	return loaded, nil
}
