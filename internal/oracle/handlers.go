package oracle

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"

	"github.com/funvibe/funrelay/internal/classify"
	"github.com/funvibe/funrelay/internal/parser"
	"github.com/funvibe/funrelay/internal/relay"
	"github.com/funvibe/funrelay/internal/typelist"
	"github.com/funvibe/funrelay/internal/typesystem"
)

// handleUnary decodes the request into a dynamic message, dispatches on
// the method name and encodes the response the same way.
func (o *Oracle) handleUnary(ctx context.Context, md *desc.MethodDescriptor, dec func(interface{}) error) (interface{}, error) {
	in := dynamic.NewMessage(md.GetInputType())
	if err := dec(in); err != nil {
		return nil, err
	}

	out := dynamic.NewMessage(md.GetOutputType())
	var err error
	switch md.GetName() {
	case "Classify":
		err = o.classify(in, out)
	case "Plan":
		err = o.plan(in, out)
	case "PlanSignature":
		err = o.planSignature(in, out)
	case "Nth":
		err = o.nth(in, out)
	default:
		err = fmt.Errorf("method %s not implemented", md.GetName())
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *Oracle) classify(in, out *dynamic.Message) error {
	t, err := o.parseExpr(in)
	if err != nil {
		return err
	}
	d := classify.Classify(t)
	return setAll(out,
		field{"source", t.String()},
		field{"category", d.Category.String()},
		field{"is_reference", d.IsReference},
		field{"base", d.Base.String()},
	)
}

func (o *Oracle) plan(in, out *dynamic.Message) error {
	t, err := o.parseExpr(in)
	if err != nil {
		return err
	}
	row, err := o.planRow(relay.PlanWith(t, o.opts))
	if err != nil {
		return err
	}
	return setAll(out, field{"plan", row})
}

func (o *Oracle) planSignature(in, out *dynamic.Message) error {
	t, err := o.parseExpr(in)
	if err != nil {
		return err
	}
	plans, ok := relay.SignaturePlans(t, o.opts)
	if !ok {
		return fmt.Errorf("not a function signature: %s", t)
	}
	rows := make([]interface{}, 0, len(plans))
	for _, p := range plans {
		row, err := o.planRow(p)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return setAll(out,
		field{"source", t.String()},
		field{"plans", rows},
	)
}

func (o *Oracle) nth(in, out *dynamic.Message) error {
	t, err := o.parseExpr(in)
	if err != nil {
		return err
	}
	idx, err := getInt32(in, "index")
	if err != nil {
		return err
	}

	result := ""
	param, ok := typelist.SelectParam(int(idx), t)
	if ok {
		result = param.String()
	}
	return setAll(out,
		field{"source", t.String()},
		field{"index", idx},
		field{"result", result},
		field{"absent", !ok},
	)
}

// parseExpr reads the request's expr field and parses it against a
// private copy of the daemon's symbol table. The first diagnostic wins.
func (o *Oracle) parseExpr(in *dynamic.Message) (typesystem.Type, error) {
	expr, err := getString(in, "expr")
	if err != nil {
		return nil, err
	}
	t, errs := parser.ParseString(expr, "request", o.table.Clone())
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s", errs[0])
	}
	return t, nil
}

// planRow renders one plan into a fresh PlanRow message.
func (o *Oracle) planRow(p relay.Plan) (*dynamic.Message, error) {
	md := o.svc.GetFile().FindMessage(protoPackage + ".PlanRow")
	if md == nil {
		return nil, fmt.Errorf("schema: message PlanRow missing")
	}
	row := dynamic.NewMessage(md)
	err := setAll(row,
		field{"source", p.Source.String()},
		field{"category", p.Desc.Category.String()},
		field{"forwarding", p.Forwarding.String()},
		field{"target", p.Target.String()},
		field{"conversion", p.Conversion.String()},
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

type field struct {
	name  string
	value interface{}
}

// setAll writes response fields through the descriptor so a schema
// drift surfaces as an error instead of a silent default.
func setAll(msg *dynamic.Message, fields ...field) error {
	for _, f := range fields {
		if err := msg.TrySetFieldByName(f.name, f.value); err != nil {
			return fmt.Errorf("field %s: %w", f.name, err)
		}
	}
	return nil
}

func getString(msg *dynamic.Message, name string) (string, error) {
	v, err := msg.TryGetFieldByName(name)
	if err != nil {
		return "", fmt.Errorf("field %s: %w", name, err)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %s: expected string, got %T", name, v)
	}
	return s, nil
}

func getInt32(msg *dynamic.Message, name string) (int32, error) {
	v, err := msg.TryGetFieldByName(name)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	n, ok := v.(int32)
	if !ok {
		return 0, fmt.Errorf("field %s: expected int32, got %T", name, v)
	}
	return n, nil
}
