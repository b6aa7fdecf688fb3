package snapshot

// Library is a named, versioned bundle of risk-modeling content.
type Library struct {
	Ref      string `json:"ref" yaml:"ref" validate:"required"`
	UUID     string `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Revision string `json:"revision" yaml:"revision"`
	Name     string `json:"name" yaml:"name"`
	Desc     string `json:"desc" yaml:"desc"`
	Filename string `json:"filename" yaml:"filename"`
	Enabled  string `json:"enabled" yaml:"enabled"`

	ComponentDefinitions map[string]*ComponentDefinition `json:"componentDefinitions,omitempty" yaml:"componentDefinitions,omitempty" validate:"dive,required"`
	RiskPatterns         map[string]*RiskPattern         `json:"riskPatterns,omitempty" yaml:"riskPatterns,omitempty" validate:"dive,required"`
	SupportedStandards   map[string]*SupportedStandard   `json:"supportedStandards,omitempty" yaml:"supportedStandards,omitempty" validate:"dive,required"`
	Standards            []Standard                      `json:"standards,omitempty" yaml:"standards,omitempty"`
	Rules                []*Rule                         `json:"rules,omitempty" yaml:"rules,omitempty" validate:"dive,required"`
	Relations            map[string]*Relation            `json:"relations,omitempty" yaml:"relations,omitempty" validate:"dive,required"`
}

// NewLibrary returns a Library with the given scalar metadata and empty collections.
func NewLibrary(ref, name, revision string) *Library {
	lib := &Library{
		Ref:      ref,
		Name:     name,
		Revision: revision,
		Enabled:  "true",
	}
	lib.normalize()
	return lib
}

func (l *Library) normalize() {
	if l.ComponentDefinitions == nil {
		l.ComponentDefinitions = make(map[string]*ComponentDefinition)
	}
	if l.RiskPatterns == nil {
		l.RiskPatterns = make(map[string]*RiskPattern)
	}
	if l.SupportedStandards == nil {
		l.SupportedStandards = make(map[string]*SupportedStandard)
	}
	if l.Relations == nil {
		l.Relations = make(map[string]*Relation)
	}
	for k, c := range l.ComponentDefinitions {
		if c == nil {
			continue
		}
		if c.Ref == "" {
			c.Ref = k
		}
	}
	for k, rp := range l.RiskPatterns {
		if rp == nil {
			continue
		}
		if rp.Ref == "" {
			rp.Ref = k
		}
	}
	for k, s := range l.SupportedStandards {
		if s == nil {
			continue
		}
		if s.Ref == "" {
			s.Ref = k
		}
	}
	for k, r := range l.Relations {
		if r == nil {
			continue
		}
		if r.ID == "" {
			r.ID = k
		}
	}
}

// ComponentDefinition is a reusable component type and the risk patterns it carries.
type ComponentDefinition struct {
	Ref             string   `json:"ref" yaml:"ref"`
	Name            string   `json:"name" yaml:"name"`
	Desc            string   `json:"desc" yaml:"desc"`
	CategoryRef     string   `json:"categoryRef" yaml:"categoryRef"`
	Visible         string   `json:"visible" yaml:"visible"`
	RiskPatternRefs []string `json:"riskPatternRefs,omitempty" yaml:"riskPatternRefs,omitempty"`
}

// Category groups component definitions. Categories live in the version tables.
type Category struct {
	Ref  string `json:"ref" yaml:"ref"`
	Name string `json:"name" yaml:"name"`
}

// RiskPattern models one architectural risk scenario.
type RiskPattern struct {
	Ref  string `json:"ref" yaml:"ref"`
	UUID string `json:"uuid" yaml:"uuid"`
	Name string `json:"name" yaml:"name"`
	Desc string `json:"desc" yaml:"desc"`
}

// SupportedStandard is a compliance standard a library can map controls to.
type SupportedStandard struct {
	Ref  string `json:"ref" yaml:"ref"`
	Name string `json:"name" yaml:"name"`
}

// Standard links a standard section to a supported standard. No single field
// is unique; identity is the (StandardRef, SupportedStandardRef) pair.
type Standard struct {
	SupportedStandardRef string `json:"supportedStandardRef" yaml:"supportedStandardRef"`
	StandardRef          string `json:"standardRef" yaml:"standardRef"`
}

// Key returns the display name of the link. Distinct links may share a Key;
// compare links by ID.
func (s Standard) Key() string {
	return s.SupportedStandardRef + "-" + s.StandardRef
}

// ID returns the composite identity of the link. The separator cannot occur
// in a ref.
func (s Standard) ID() string {
	return s.SupportedStandardRef + "\x00" + s.StandardRef
}

// Rule is a named rules-engine rule. Rule identifiers are not stable across
// exports, so rules are matched by name.
type Rule struct {
	Name       string          `json:"name" yaml:"name"`
	Module     string          `json:"module" yaml:"module"`
	GUI        string          `json:"gui" yaml:"gui"`
	Conditions []RuleCondition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Actions    []RuleAction    `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// RuleCondition is one predicate of a rule.
type RuleCondition struct {
	Name  string `json:"name" yaml:"name"`
	Field string `json:"field" yaml:"field"`
	Value string `json:"value" yaml:"value"`
}

// RuleAction is one effect of a rule.
type RuleAction struct {
	Name    string `json:"name" yaml:"name"`
	Value   string `json:"value" yaml:"value"`
	Project string `json:"project" yaml:"project"`
}

// Relation records which control mitigates which weakness or threat within
// which usecase of which risk pattern. An empty Weakness with a non-empty
// Control marks an orphaned control attached directly to the threat.
type Relation struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	RiskPattern string `json:"riskPattern" yaml:"riskPattern"`
	UseCase     string `json:"usecase" yaml:"usecase"`
	Threat      string `json:"threat,omitempty" yaml:"threat,omitempty"`
	Weakness    string `json:"weakness,omitempty" yaml:"weakness,omitempty"`
	Control     string `json:"control,omitempty" yaml:"control,omitempty"`
	Mitigation  string `json:"mitigation,omitempty" yaml:"mitigation,omitempty"`
}

// IsOrphanedControl reports whether the relation attaches a control to a
// threat without an intermediate weakness.
func (r *Relation) IsOrphanedControl() bool {
	return r.Weakness == "" && r.Control != ""
}
