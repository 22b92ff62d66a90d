package skillgap

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultHighPriorityThreshold = 20
	DefaultMaxRecommendations    = 3
)

type Options struct {
	// HighPriorityThreshold separates High (gap > threshold) from Medium gaps.
	HighPriorityThreshold int
	MaxRecommendations    int
	DefaultLevel          string
}

func DefaultOptions() Options {
	return Options{
		HighPriorityThreshold: DefaultHighPriorityThreshold,
		MaxRecommendations:    DefaultMaxRecommendations,
		DefaultLevel:          LevelIntermediate,
	}
}

// Request is one scoring call. Build it with NewRequest so malformed input is
// rejected before any scoring happens.
type Request struct {
	Skills       []StudentSkill
	TargetRole   string
	MatchNearest bool
	Level        string
}

func NewRequest(skills []StudentSkill, targetRole string, matchNearest bool, level string) (Request, error) {
	r := Request{
		Skills:       append([]StudentSkill(nil), skills...),
		TargetRole:   strings.TrimSpace(targetRole),
		MatchNearest: matchNearest,
		Level:        level,
	}
	if err := r.Validate(); err != nil {
		return Request{}, err
	}
	if r.Level != "" {
		r.Level, _ = NormalizeLevel(r.Level)
	}
	return r, nil
}

func (r Request) Validate() error {
	for i, s := range r.Skills {
		field := "skills[" + strconv.Itoa(i) + "]"
		if strings.TrimSpace(s.SkillName) == "" {
			return invalid(field+".skill_name", "must not be empty")
		}
		if s.Proficiency < 0 || s.Proficiency > 100 {
			return invalid(field+".proficiency", "proficiency %d out of range [0,100]", s.Proficiency)
		}
	}
	if strings.TrimSpace(r.Level) != "" {
		if _, ok := NormalizeLevel(r.Level); !ok {
			return invalid("student_level", "unknown level %q", r.Level)
		}
	}
	return nil
}

// Scorer is a pure function of its catalog and options; one instance can be
// shared by every request.
type Scorer struct {
	catalog *Catalog
	opts    Options
}

func NewScorer(catalog *Catalog, opts Options) (*Scorer, error) {
	if catalog == nil {
		return nil, errors.New("nil catalog")
	}
	if opts.HighPriorityThreshold < 0 {
		return nil, invalid("high_priority_threshold", "must not be negative")
	}
	if opts.MaxRecommendations < 0 {
		return nil, invalid("max_recommendations", "must not be negative")
	}
	if strings.TrimSpace(opts.DefaultLevel) == "" {
		opts.DefaultLevel = LevelIntermediate
	}
	lvl, ok := NormalizeLevel(opts.DefaultLevel)
	if !ok {
		return nil, invalid("default_level", "unknown level %q", opts.DefaultLevel)
	}
	opts.DefaultLevel = lvl

	return &Scorer{catalog: catalog, opts: opts}, nil
}

func (s *Scorer) Catalog() *Catalog {
	return s.catalog
}

func (s *Scorer) Options() Options {
	return s.opts
}

func (s *Scorer) Analyze(req Request) (Report, error) {
	if err := req.Validate(); err != nil {
		return Report{}, err
	}

	vector := s.ResolveStudentVector(req.Skills)
	profile, match, err := s.SelectProfile(req.TargetRole, vector, req.MatchNearest)
	if err != nil {
		return Report{}, err
	}

	level := s.opts.DefaultLevel
	if req.Level != "" {
		level, _ = NormalizeLevel(req.Level)
	}

	gaps := s.ComputeGaps(vector, profile)
	return Report{
		Role:            profile.Name,
		Match:           match,
		Gaps:            gaps,
		Recommendations: s.Recommend(gaps, level, s.opts.MaxRecommendations),
	}, nil
}

// ResolveStudentVector maps free-text skills onto the catalog dimensions.
// Unknown names are dropped and the last entry for a dimension wins.
func (s *Scorer) ResolveStudentVector(skills []StudentSkill) []int {
	vector := make([]int, s.catalog.Len())
	for _, sk := range skills {
		idx, ok := s.catalog.lookup[NormalizeName(sk.SkillName)]
		if !ok {
			continue
		}
		vector[idx] = sk.Proficiency
	}
	return vector
}

func (s *Scorer) SelectProfile(role string, vector []int, matchNearest bool) (RoleProfile, MatchKind, error) {
	role = strings.TrimSpace(role)
	if role != "" {
		if p, ok := s.catalog.Profile(role); ok {
			return p, MatchDirect, nil
		}
		if !matchNearest {
			return RoleProfile{}, "", &UnknownRoleError{Role: role}
		}
	}

	if matchNearest {
		p, _ := s.NearestProfile(vector)
		return p, MatchNearest, nil
	}
	return s.catalog.DefaultProfile(), MatchDefault, nil
}

// NearestProfile compares the student vector with every profile in
// standardized space. Equal distances keep the earliest declared profile.
func (s *Scorer) NearestProfile(vector []int) (RoleProfile, float64) {
	x := s.catalog.transform(vector)

	best := 0
	bestDist := math.Inf(1)
	for i, row := range s.catalog.scaled {
		d := 0.0
		for j := range row {
			diff := x[j] - row[j]
			d += diff * diff
		}
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return s.catalog.profile(best), math.Sqrt(bestDist)
}

func (s *Scorer) ComputeGaps(vector []int, profile RoleProfile) []Gap {
	out := make([]Gap, 0)
	for i, d := range s.catalog.dimensions {
		if i >= len(profile.Levels) {
			break
		}
		student := 0
		if i < len(vector) {
			student = vector[i]
		}
		reference := profile.Levels[i]
		gap := reference - student
		if gap <= 0 {
			continue
		}
		out = append(out, Gap{
			Skill:            d.Name,
			StudentLevel:     student,
			IndustryStandard: reference,
			Gap:              gap,
			Priority:         s.priority(gap),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Gap > out[j].Gap
	})
	return out
}

func (s *Scorer) priority(gap int) Priority {
	if gap > s.opts.HighPriorityThreshold {
		return PriorityHigh
	}
	return PriorityMedium
}

// Recommend turns the largest gaps into course recommendations and tops the
// result up with generic advice until maxCount is reached or the pool runs out.
func (s *Scorer) Recommend(gaps []Gap, level string, maxCount int) []Recommendation {
	out := make([]Recommendation, 0, maxCount)
	if maxCount <= 0 {
		return out
	}

	lvl, ok := NormalizeLevel(level)
	if !ok {
		lvl = s.opts.DefaultLevel
	}

	considered := gaps
	if len(considered) > maxCount {
		considered = considered[:maxCount]
	}

	for _, g := range considered {
		dim, ok := s.catalog.lookup[NormalizeName(g.Skill)]
		if !ok {
			continue
		}
		for _, res := range s.catalog.resources[dim] {
			if res.Level != lvl {
				continue
			}
			out = append(out, Recommendation{
				Type:         RecommendationCourse,
				Skill:        res.Skill,
				Gap:          g.Gap,
				Text:         "Take '" + res.Name + "' to improve " + res.Skill,
				ResourceName: res.Name,
				ResourceURL:  res.URL,
				Priority:     g.Priority,
			})
			break
		}
	}

	for _, text := range s.catalog.generic {
		if len(out) >= maxCount {
			break
		}
		out = append(out, Recommendation{
			Type:     RecommendationGeneral,
			Text:     text,
			Priority: PriorityMedium,
		})
	}
	return out
}
