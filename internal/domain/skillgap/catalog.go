package skillgap

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

type DimensionSpec struct {
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

type ProfileSpec struct {
	Name   string `json:"name" yaml:"name"`
	Levels []int  `json:"levels" yaml:"levels"`
}

type ResourceSpec struct {
	Skill string `json:"skill" yaml:"skill"`
	Name  string `json:"name" yaml:"name"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Level string `json:"level" yaml:"level"`
}

// CatalogSpec is the declarative form of a catalog. Slice order is the
// declared order used for every tie-break.
type CatalogSpec struct {
	Dimensions             []DimensionSpec `json:"dimensions" yaml:"dimensions"`
	Profiles               []ProfileSpec   `json:"profiles" yaml:"profiles"`
	DefaultProfile         string          `json:"default_profile,omitempty" yaml:"default_profile,omitempty"`
	Resources              []ResourceSpec  `json:"resources,omitempty" yaml:"resources,omitempty"`
	GenericRecommendations []string        `json:"generic_recommendations,omitempty" yaml:"generic_recommendations,omitempty"`
}

// Catalog is immutable once built and safe for concurrent readers.
type Catalog struct {
	spec CatalogSpec

	dimensions []Dimension
	lookup     map[string]int

	profiles       []RoleProfile
	profileLookup  map[string]int
	defaultProfile int

	resources [][]Resource
	generic   []string

	mean   []float64
	scale  []float64
	scaled [][]float64

	fingerprint string
}

func NewCatalog(spec CatalogSpec) (*Catalog, error) {
	spec = cloneSpec(spec)

	if len(spec.Dimensions) == 0 {
		return nil, invalid("dimensions", "at least one dimension is required")
	}

	c := &Catalog{
		spec:          spec,
		dimensions:    make([]Dimension, 0, len(spec.Dimensions)),
		lookup:        make(map[string]int),
		profiles:      make([]RoleProfile, 0, len(spec.Profiles)),
		profileLookup: make(map[string]int),
		resources:     make([][]Resource, len(spec.Dimensions)),
	}

	for i, d := range spec.Dimensions {
		field := "dimensions[" + strconv.Itoa(i) + "]"
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, invalid(field+".name", "must not be empty")
		}
		if err := c.addKey(field+".name", name, i); err != nil {
			return nil, err
		}

		aliases := make([]string, 0, len(d.Aliases))
		for j, a := range d.Aliases {
			a = strings.TrimSpace(a)
			af := field + ".aliases[" + strconv.Itoa(j) + "]"
			if a == "" {
				return nil, invalid(af, "must not be empty")
			}
			if err := c.addKey(af, a, i); err != nil {
				return nil, err
			}
			aliases = append(aliases, a)
		}

		c.dimensions = append(c.dimensions, Dimension{Index: i, Name: name, Aliases: aliases})
	}

	n := len(c.dimensions)
	if len(spec.Profiles) == 0 {
		return nil, invalid("profiles", "at least one role profile is required")
	}
	for i, p := range spec.Profiles {
		field := "profiles[" + strconv.Itoa(i) + "]"
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, invalid(field+".name", "must not be empty")
		}
		key := NormalizeName(name)
		if prev, ok := c.profileLookup[key]; ok {
			return nil, invalid(field+".name", "duplicates profile %q", c.profiles[prev].Name)
		}
		if len(p.Levels) != n {
			return nil, invalid(field+".levels", "expected %d levels, got %d", n, len(p.Levels))
		}
		for j, lvl := range p.Levels {
			if lvl < 0 || lvl > 100 {
				return nil, invalid(field+".levels["+strconv.Itoa(j)+"]", "level %d out of range [0,100]", lvl)
			}
		}
		c.profileLookup[key] = i
		c.profiles = append(c.profiles, RoleProfile{Name: name, Levels: append([]int(nil), p.Levels...)})
	}

	if def := strings.TrimSpace(spec.DefaultProfile); def != "" {
		idx, ok := c.profileLookup[NormalizeName(def)]
		if !ok {
			return nil, invalid("default_profile", "unknown profile %q", def)
		}
		c.defaultProfile = idx
	}

	for i, r := range spec.Resources {
		field := "resources[" + strconv.Itoa(i) + "]"
		dim, ok := c.lookup[NormalizeName(r.Skill)]
		if !ok {
			return nil, invalid(field+".skill", "unknown skill %q", r.Skill)
		}
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, invalid(field+".name", "must not be empty")
		}
		level, ok := NormalizeLevel(r.Level)
		if !ok {
			return nil, invalid(field+".level", "unknown level %q", r.Level)
		}
		c.resources[dim] = append(c.resources[dim], Resource{
			Skill: c.dimensions[dim].Name,
			Name:  name,
			URL:   strings.TrimSpace(r.URL),
			Level: level,
		})
	}

	for i, g := range spec.GenericRecommendations {
		g = strings.TrimSpace(g)
		if g == "" {
			return nil, invalid("generic_recommendations["+strconv.Itoa(i)+"]", "must not be empty")
		}
		c.generic = append(c.generic, g)
	}

	c.mean, c.scale, c.scaled = standardize(c.profiles, n)

	b, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(b)
	c.fingerprint = hex.EncodeToString(sum[:])

	return c, nil
}

func (c *Catalog) addKey(field, raw string, dim int) error {
	key := NormalizeName(raw)
	if prev, ok := c.lookup[key]; ok {
		return invalid(field, "%q already maps to %q", raw, strings.TrimSpace(c.spec.Dimensions[prev].Name))
	}
	c.lookup[key] = dim
	return nil
}

func (c *Catalog) Len() int {
	return len(c.dimensions)
}

func (c *Catalog) Dimensions() []Dimension {
	out := make([]Dimension, 0, len(c.dimensions))
	for _, d := range c.dimensions {
		d.Aliases = append([]string(nil), d.Aliases...)
		out = append(out, d)
	}
	return out
}

// Lookup resolves a canonical name or alias, ignoring case and surrounding
// whitespace.
func (c *Catalog) Lookup(name string) (Dimension, bool) {
	idx, ok := c.lookup[NormalizeName(name)]
	if !ok {
		return Dimension{}, false
	}
	d := c.dimensions[idx]
	d.Aliases = append([]string(nil), d.Aliases...)
	return d, true
}

func (c *Catalog) Profiles() []RoleProfile {
	out := make([]RoleProfile, 0, len(c.profiles))
	for i := range c.profiles {
		out = append(out, c.profile(i))
	}
	return out
}

func (c *Catalog) Profile(name string) (RoleProfile, bool) {
	idx, ok := c.profileLookup[NormalizeName(name)]
	if !ok {
		return RoleProfile{}, false
	}
	return c.profile(idx), true
}

func (c *Catalog) DefaultProfile() RoleProfile {
	return c.profile(c.defaultProfile)
}

func (c *Catalog) profile(i int) RoleProfile {
	p := c.profiles[i]
	return RoleProfile{Name: p.Name, Levels: append([]int(nil), p.Levels...)}
}

// Resources returns the resources declared for a dimension, in declared order.
func (c *Catalog) Resources(dimension int) []Resource {
	if dimension < 0 || dimension >= len(c.resources) {
		return nil
	}
	return append([]Resource(nil), c.resources[dimension]...)
}

func (c *Catalog) GenericRecommendations() []string {
	return append([]string(nil), c.generic...)
}

func (c *Catalog) Spec() CatalogSpec {
	return cloneSpec(c.spec)
}

// Fingerprint identifies the catalog content; equal specs share a fingerprint.
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

// NormalizeName folds case, trims and collapses inner whitespace.
func NormalizeName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

func NormalizeLevel(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case LevelBeginner:
		return LevelBeginner, true
	case LevelIntermediate:
		return LevelIntermediate, true
	case LevelAdvanced:
		return LevelAdvanced, true
	default:
		return "", false
	}
}

func standardize(profiles []RoleProfile, n int) ([]float64, []float64, [][]float64) {
	mean := make([]float64, n)
	scale := make([]float64, n)
	if len(profiles) == 0 {
		return mean, scale, nil
	}

	count := float64(len(profiles))
	for _, p := range profiles {
		for j := 0; j < n; j++ {
			mean[j] += float64(p.Levels[j])
		}
	}
	for j := range mean {
		mean[j] /= count
	}

	for _, p := range profiles {
		for j := 0; j < n; j++ {
			d := float64(p.Levels[j]) - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		scale[j] = math.Sqrt(scale[j] / count)
		if scale[j] == 0 {
			scale[j] = 1
		}
	}

	scaled := make([][]float64, 0, len(profiles))
	for _, p := range profiles {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = (float64(p.Levels[j]) - mean[j]) / scale[j]
		}
		scaled = append(scaled, row)
	}
	return mean, scale, scaled
}

func (c *Catalog) transform(vector []int) []float64 {
	out := make([]float64, len(c.mean))
	for j := range out {
		v := 0.0
		if j < len(vector) {
			v = float64(vector[j])
		}
		out[j] = (v - c.mean[j]) / c.scale[j]
	}
	return out
}

func cloneSpec(s CatalogSpec) CatalogSpec {
	out := CatalogSpec{DefaultProfile: s.DefaultProfile}
	if s.Dimensions != nil {
		out.Dimensions = make([]DimensionSpec, 0, len(s.Dimensions))
		for _, d := range s.Dimensions {
			out.Dimensions = append(out.Dimensions, DimensionSpec{Name: d.Name, Aliases: append([]string(nil), d.Aliases...)})
		}
	}
	if s.Profiles != nil {
		out.Profiles = make([]ProfileSpec, 0, len(s.Profiles))
		for _, p := range s.Profiles {
			out.Profiles = append(out.Profiles, ProfileSpec{Name: p.Name, Levels: append([]int(nil), p.Levels...)})
		}
	}
	out.Resources = append([]ResourceSpec(nil), s.Resources...)
	out.GenericRecommendations = append([]string(nil), s.GenericRecommendations...)
	return out
}
