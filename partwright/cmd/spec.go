package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/partwright/examples/primitives"
	"github.com/sarchlab/partwright/param"
)

// buildSpecification starts from the defaults of the designer, replaces
// parameters with design rules, and then assigns values.
func buildSpecification(
	ctx context.Context,
	s *session,
	designer string,
	rules, values []string,
) (*param.Container, error) {
	spec, err := primitives.DefaultSpecification(designer)
	if err != nil {
		spec = param.NewContainer()
	}

	for _, r := range rules {
		key, idStr, err := splitAssignment(r)
		if err != nil {
			return nil, err
		}

		if err := mustHaveRules(s); err != nil {
			return nil, err
		}

		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, fmt.Errorf("design rule of %s: %w", key, err)
		}

		p, err := param.FromConstraint(ctx, s.rules, param.ConstraintID(id), param.Millimetre)
		if err != nil {
			return nil, err
		}

		spec.Set(param.Key(key), p)
	}

	for _, v := range values {
		key, valueStr, err := splitAssignment(v)
		if err != nil {
			return nil, err
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("value of %s: %w", key, err)
		}

		if p, err := spec.Get(param.Key(key)); err == nil {
			if err := p.AssignValue(value); err != nil {
				return nil, err
			}

			continue
		}

		p, err := param.MakeBuilder().
			WithName(key).
			WithSymbol(key).
			WithUnit(param.Millimetre).
			WithValue(value).
			Build()
		if err != nil {
			return nil, err
		}

		spec.Set(param.Key(key), p)
	}

	return spec, nil
}

func splitAssignment(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", s)
	}

	return strings.TrimSpace(key), strings.TrimSpace(value), nil
}
