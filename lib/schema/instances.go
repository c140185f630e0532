package schema

import (
	"fmt"

	"github.com/kpaschen/tspaa/lib/paa"
	"github.com/rs/zerolog/log"
	"github.com/sjwhitworth/golearn/base"
)

// LayoutOf describes the attributes of a golearn dataset.
func LayoutOf(in base.FixedDataGrid) Layout {
	attrs := in.AllAttributes()
	classAttrs := in.AllClassAttributes()
	ret := Layout{
		Attributes: make([]Attribute, len(attrs)),
		ClassIndex: NO_CLASS_ATTRIBUTE,
	}
	for i, a := range attrs {
		ret.Attributes[i] = Attribute{Name: a.GetName()}
		if c, ok := a.(*base.CategoricalAttribute); ok {
			ret.Attributes[i].Values = append([]string{}, c.GetValues()...)
		}
		if len(classAttrs) > 0 && a.Equals(classAttrs[0]) {
			ret.ClassIndex = i
		}
	}
	return ret
}

func copyClassAttribute(a base.Attribute) (base.Attribute, error) {
	switch attr := a.(type) {
	case *base.CategoricalAttribute:
		c := base.NewCategoricalAttribute()
		c.SetName(attr.GetName())
		// Registering the values in order keeps the system values identical,
		// so class values can be copied as raw bytes.
		for _, v := range attr.GetValues() {
			c.GetSysValFromString(v)
		}
		return c, nil
	case *base.FloatAttribute:
		return base.NewFloatAttribute(attr.GetName()), nil
	case *base.BinaryAttribute:
		return base.NewBinaryAttribute(attr.GetName()), nil
	default:
		return nil, fmt.Errorf("unsupported class attribute type %T", a)
	}
}

func outputInstances(in base.FixedDataGrid, numIntervals int) (*base.DenseInstances, []base.AttributeSpec, base.Attribute, error) {
	if numIntervals < 1 {
		return nil, nil, nil, fmt.Errorf("%w: number of intervals must be at least 1, got %d",
			paa.ErrInvalidConfiguration, numIntervals)
	}
	classAttrs := in.AllClassAttributes()
	if len(classAttrs) > 1 {
		return nil, nil, nil, fmt.Errorf("%w: expected at most one class attribute, got %d",
			paa.ErrInvalidInput, len(classAttrs))
	}

	out := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, numIntervals)
	for i := range specs {
		specs[i] = out.AddAttribute(base.NewFloatAttribute(IntervalName(i)))
	}

	var outClass base.Attribute
	if len(classAttrs) == 1 {
		var err error
		outClass, err = copyClassAttribute(classAttrs[0])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: %v", paa.ErrInvalidInput, err)
		}
		out.AddAttribute(outClass)
		if err := out.AddClassAttribute(outClass); err != nil {
			return nil, nil, nil, err
		}
	}
	return out, specs, outClass, nil
}

// OutputFormat returns an empty dataset with the attributes the transform
// produces for in.
func OutputFormat(in base.FixedDataGrid, numIntervals int) (*base.DenseInstances, error) {
	out, _, _, err := outputInstances(in, numIntervals)
	return out, err
}

// TransformInstances reduces every row of in. All non-class attributes must
// be numeric. The class value of each row is copied unchanged.
func TransformInstances(t *paa.Transformer, in base.FixedDataGrid) (*base.DenseInstances, error) {
	out, specs, outClass, err := outputInstances(in, t.NumIntervals())
	if err != nil {
		return nil, err
	}

	inputAttrs := base.NonClassAttributes(in)
	if len(inputAttrs) == 0 {
		return nil, fmt.Errorf("%w: dataset has no value attributes", paa.ErrInvalidInput)
	}
	for _, a := range inputAttrs {
		if _, ok := a.(*base.FloatAttribute); !ok {
			return nil, fmt.Errorf("%w: attribute %s is not numeric", paa.ErrInvalidInput, a.GetName())
		}
	}
	inputSpecs := base.ResolveAttributes(in, inputAttrs)

	_, rows := in.Size()
	if err := out.Extend(rows); err != nil {
		return nil, err
	}

	values := make([]float64, len(inputSpecs))
	err = in.MapOverRows(inputSpecs, func(row [][]byte, i int) (bool, error) {
		for j, b := range row {
			values[j] = base.UnpackBytesToFloat(b)
		}
		intervals, err := t.Transform(values)
		if err != nil {
			return false, fmt.Errorf("row %d: %w", i, err)
		}
		for j, v := range intervals {
			out.Set(specs[j], i, base.PackFloatToBytes(v))
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if outClass != nil {
		inClassSpec, err := in.GetAttribute(in.AllClassAttributes()[0])
		if err != nil {
			return nil, err
		}
		outClassSpec, err := out.GetAttribute(outClass)
		if err != nil {
			return nil, err
		}
		for i := 0; i < rows; i++ {
			out.Set(outClassSpec, i, in.Get(inClassSpec, i))
		}
	}
	log.Debug().Int("rows", rows).Int("numIntervals", t.NumIntervals()).Msg("transformed instances")
	return out, nil
}
