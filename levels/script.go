package levels

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const (
	scriptTimeout   = 2 * time.Second
	scriptMaxAllocs = 1 << 20
	scriptMaxBodies = 4096
)

// RunScript executes a tengo level script and returns the bodies it adds.
// Scripts see the level bounds as min_x, min_y, max_x, max_y and call
// box(x, y, hx, hy, angle, kind) and ball(x, y, r, kind), where kind is
// "static" or "dynamic".
func RunScript(src []byte, spec Spec) ([]BodySpec, error) {
	var bodies []BodySpec
	add := func(b BodySpec) (tengo.Object, error) {
		if len(bodies) >= scriptMaxBodies {
			return nil, fmt.Errorf("script adds more than %d bodies", scriptMaxBodies)
		}
		bodies = append(bodies, b)
		return tengo.TrueValue, nil
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math", "rand", "fmt"))
	script.SetMaxAllocs(scriptMaxAllocs)

	var bounds BoundsSpec
	if spec.Bounds != nil {
		bounds = *spec.Bounds
	}
	for name, v := range map[string]float64{
		"min_x": bounds.Min.X,
		"min_y": bounds.Min.Y,
		"max_x": bounds.Max.X,
		"max_y": bounds.Max.Y,
	} {
		if err := script.Add(name, v); err != nil {
			return nil, err
		}
	}

	if err := script.Add("box", &tengo.UserFunction{Name: "box", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 4 || len(args) > 6 {
			return nil, tengo.ErrWrongNumArguments
		}
		nums, err := floatArgs("box", args[:4])
		if err != nil {
			return nil, err
		}
		b := BodySpec{
			Position: Vec2{X: nums[0], Y: nums[1]},
			Shape:    ShapeSpec{Type: "cuboid", HalfExtents: Vec2{X: nums[2], Y: nums[3]}},
		}
		if len(args) > 4 {
			angle, ok := tengo.ToFloat64(args[4])
			if !ok {
				return nil, argError("box", "angle", "float", args[4])
			}
			b.Angle = angle
		}
		if len(args) > 5 {
			kind, ok := tengo.ToString(args[5])
			if !ok {
				return nil, argError("box", "kind", "string", args[5])
			}
			b.Kind = kind
		}
		return add(b)
	}}); err != nil {
		return nil, err
	}

	if err := script.Add("ball", &tengo.UserFunction{Name: "ball", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 || len(args) > 4 {
			return nil, tengo.ErrWrongNumArguments
		}
		nums, err := floatArgs("ball", args[:3])
		if err != nil {
			return nil, err
		}
		b := BodySpec{
			Position: Vec2{X: nums[0], Y: nums[1]},
			Shape:    ShapeSpec{Type: "ball", Radius: nums[2]},
		}
		if len(args) > 3 {
			kind, ok := tengo.ToString(args[3])
			if !ok {
				return nil, argError("ball", "kind", "string", args[3])
			}
			b.Kind = kind
		}
		return add(b)
	}}); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if _, err := script.RunContext(ctx); err != nil {
		return nil, err
	}

	for i, b := range bodies {
		if _, err := b.Shape.Shape(); err != nil {
			return nil, fmt.Errorf("script body %d: %w", i, err)
		}
	}
	return bodies, nil
}

func floatArgs(fn string, args []tengo.Object) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, ok := tengo.ToFloat64(a)
		if !ok {
			return nil, argError(fn, fmt.Sprintf("#%d", i+1), "float", a)
		}
		out[i] = v
	}
	return out, nil
}

func argError(fn, name, expected string, got tengo.Object) error {
	return tengo.ErrInvalidArgumentType{
		Name:     fmt.Sprintf("%s %s", fn, name),
		Expected: expected,
		Found:    got.TypeName(),
	}
}
