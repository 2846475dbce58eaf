// Package prettyprinter renders classifications, relay plans and
// parameter selections for the terminal, with optional YAML output
// for scripted consumers.
package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/funvibe/funrelay/internal/classify"
	"github.com/funvibe/funrelay/internal/relay"
	"github.com/funvibe/funrelay/internal/typesystem"
)

// PlanPrinter accumulates report text. Color defaults to what the
// terminal supports; NewPlainPrinter forces it off.
type PlanPrinter struct {
	buf   bytes.Buffer
	color bool
}

func NewPlanPrinter() *PlanPrinter {
	return &PlanPrinter{color: ColorEnabled()}
}

func NewPlainPrinter() *PlanPrinter {
	return &PlanPrinter{}
}

func (p *PlanPrinter) String() string {
	return p.buf.String()
}

func (p *PlanPrinter) PrintClassification(source typesystem.Type, d classify.Descriptor) {
	p.header(source)
	p.field(2, "category", d.Category.String())
	p.field(2, "reference", strconv.FormatBool(d.IsReference))
	p.field(2, "base", d.Base.String())
}

func (p *PlanPrinter) PrintPlan(plan relay.Plan) {
	p.header(plan.Source)
	p.field(2, "category", plan.Desc.Category.String())
	p.planFields(2, plan)
}

// PrintSignature reports one plan per parameter.
func (p *PlanPrinter) PrintSignature(source typesystem.Type, plans []relay.Plan) {
	p.header(source)
	if len(plans) == 0 {
		p.buf.WriteString("  no parameters\n")
		return
	}
	for i, plan := range plans {
		fmt.Fprintf(&p.buf, "  param %d: %s\n", i, accent(p.color, plan.Source.String()))
		p.planFields(4, plan)
	}
}

// PrintSelection reports the result of selecting parameter n.
func (p *PlanPrinter) PrintSelection(source typesystem.Type, n int, result typesystem.Type, ok bool) {
	p.header(source)
	if !ok {
		fmt.Fprintf(&p.buf, "  param %d: %s\n", n, dim(p.color, "absent"))
		return
	}
	fmt.Fprintf(&p.buf, "  param %d: %s\n", n, accent(p.color, result.String()))
}

func (p *PlanPrinter) planFields(indent int, plan relay.Plan) {
	p.field(indent, "forwarding", plan.Forwarding.String())
	p.field(indent, "target", plan.Target.String())
	p.field(indent, "conversion", plan.Conversion.String())
}

func (p *PlanPrinter) header(source typesystem.Type) {
	p.buf.WriteString(accent(p.color, source.String()))
	p.buf.WriteByte('\n')
}

func (p *PlanPrinter) field(indent int, label, value string) {
	for i := 0; i < indent; i++ {
		p.buf.WriteByte(' ')
	}
	// Pad the label so values line up; "forwarding:" is the widest.
	fmt.Fprintf(&p.buf, "%s%s\n", dim(p.color, fmt.Sprintf("%-12s", label+":")), value)
}
