package prettyprinter

import (
	"gopkg.in/yaml.v3"

	"github.com/funvibe/funrelay/internal/classify"
	"github.com/funvibe/funrelay/internal/relay"
	"github.com/funvibe/funrelay/internal/typesystem"
)

// ClassifyDoc is the YAML shape of a classification.
type ClassifyDoc struct {
	Source    string `yaml:"source"`
	Category  string `yaml:"category"`
	Reference bool   `yaml:"reference"`
	Base      string `yaml:"base"`
}

// PlanDoc is the YAML shape of one plan.
type PlanDoc struct {
	Source     string `yaml:"source"`
	Category   string `yaml:"category"`
	Reference  bool   `yaml:"reference"`
	Forwarding string `yaml:"forwarding"`
	Target     string `yaml:"target"`
	Conversion string `yaml:"conversion"`
}

// SignatureDoc is the YAML shape of a per-parameter plan report.
type SignatureDoc struct {
	Source string    `yaml:"source"`
	Params []PlanDoc `yaml:"params"`
}

// SelectionDoc is the YAML shape of an nth result. Result is omitted
// when the position is absent.
type SelectionDoc struct {
	Source string `yaml:"source"`
	N      int    `yaml:"n"`
	Result string `yaml:"result,omitempty"`
	Absent bool   `yaml:"absent,omitempty"`
}

func NewPlanDoc(plan relay.Plan) PlanDoc {
	return PlanDoc{
		Source:     plan.Source.String(),
		Category:   plan.Desc.Category.String(),
		Reference:  plan.Desc.IsReference,
		Forwarding: plan.Forwarding.String(),
		Target:     plan.Target.String(),
		Conversion: plan.Conversion.String(),
	}
}

func MarshalClassification(source typesystem.Type, d classify.Descriptor) (string, error) {
	doc := ClassifyDoc{
		Source:    source.String(),
		Category:  d.Category.String(),
		Reference: d.IsReference,
		Base:      d.Base.String(),
	}
	out, err := yaml.Marshal(doc)
	return string(out), err
}

func MarshalPlan(plan relay.Plan) (string, error) {
	out, err := yaml.Marshal(NewPlanDoc(plan))
	return string(out), err
}

func MarshalSignature(source typesystem.Type, plans []relay.Plan) (string, error) {
	doc := SignatureDoc{Source: source.String()}
	for _, plan := range plans {
		doc.Params = append(doc.Params, NewPlanDoc(plan))
	}
	out, err := yaml.Marshal(doc)
	return string(out), err
}

func MarshalSelection(source typesystem.Type, n int, result typesystem.Type, ok bool) (string, error) {
	doc := SelectionDoc{Source: source.String(), N: n, Absent: !ok}
	if ok {
		doc.Result = result.String()
	}
	out, err := yaml.Marshal(doc)
	return string(out), err
}
