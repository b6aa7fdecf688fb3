package snapshot

// UseCase is a version-global usecase.
type UseCase struct {
	Ref  string `json:"ref" yaml:"ref"`
	Name string `json:"name" yaml:"name"`
	Desc string `json:"desc" yaml:"desc"`
}

// RiskRating holds the CIA and ease-of-exploitation ratings of a threat.
type RiskRating struct {
	Confidentiality    string `json:"confidentiality" yaml:"confidentiality"`
	Integrity          string `json:"integrity" yaml:"integrity"`
	Availability       string `json:"availability" yaml:"availability"`
	EaseOfExploitation string `json:"easeOfExploitation" yaml:"easeOfExploitation"`
}

// Threat is a version-global threat.
type Threat struct {
	Ref        string     `json:"ref" yaml:"ref"`
	Name       string     `json:"name" yaml:"name"`
	Desc       string     `json:"desc" yaml:"desc"`
	RiskRating RiskRating `json:"riskRating" yaml:"riskRating"`
	Mitre      []string   `json:"mitre,omitempty" yaml:"mitre,omitempty"`
	Stride     []string   `json:"stride,omitempty" yaml:"stride,omitempty"`

	// References holds refs into Version.References.
	References []string `json:"references,omitempty" yaml:"references,omitempty"`
}

// Test describes how a weakness or control is verified.
type Test struct {
	Steps string `json:"steps" yaml:"steps"`

	// References holds refs into Version.References.
	References []string `json:"references,omitempty" yaml:"references,omitempty"`
}

// Weakness is a version-global weakness.
type Weakness struct {
	Ref    string `json:"ref" yaml:"ref"`
	Name   string `json:"name" yaml:"name"`
	Desc   string `json:"desc" yaml:"desc"`
	Impact string `json:"impact" yaml:"impact"`
	Test   Test   `json:"test" yaml:"test"`
}

// Control is a version-global countermeasure.
type Control struct {
	Ref                 string     `json:"ref" yaml:"ref"`
	Name                string     `json:"name" yaml:"name"`
	Desc                string     `json:"desc" yaml:"desc"`
	State               string     `json:"state" yaml:"state"`
	Cost                string     `json:"cost" yaml:"cost"`
	Test                Test       `json:"test" yaml:"test"`
	BaseStandard        []string   `json:"baseStandard,omitempty" yaml:"baseStandard,omitempty"`
	BaseStandardSection []string   `json:"baseStandardSection,omitempty" yaml:"baseStandardSection,omitempty"`
	Scope               []string   `json:"scope,omitempty" yaml:"scope,omitempty"`
	Mitre               []string   `json:"mitre,omitempty" yaml:"mitre,omitempty"`
	Standards           []Standard `json:"standards,omitempty" yaml:"standards,omitempty"`
	Implementations     []string   `json:"implementations,omitempty" yaml:"implementations,omitempty"`

	// References holds refs into Version.References.
	References []string `json:"references,omitempty" yaml:"references,omitempty"`
}

// Reference is an external link. References are matched by display name
// across versions because their refs are regenerated on export.
type Reference struct {
	Ref  string `json:"ref" yaml:"ref"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}
