package chart

import (
	"fmt"

	"datalens/domain/table"
)

// Select picks the chart family and encoding for the chosen columns.
//
// The decision is driven entirely by the columns' semantic buckets:
//
//	numeric x numeric      -> scatter (size/color optional from extras)
//	categorical x numeric  -> box, category on x
//	numeric x categorical  -> box flipped, category stays on one axis
//	categorical x categorical -> frequency bar on x with an advisory note
//	temporal x numeric     -> line
//	single numeric         -> histogram with box marginal
//	single categorical     -> frequency bar
//	single temporal        -> frequency bar over the rendered dates
//
// Picking the same column for both axes is legal and goes through the same
// table. Unknown columns are the only error.
func Select(cls table.Classification, x, y, extra string) (Spec, error) {
	if x == "" {
		return Spec{}, fmt.Errorf("no x column selected")
	}
	if _, ok := cls.Types[x]; !ok {
		return Spec{}, fmt.Errorf("unknown column %q", x)
	}
	if y == "" {
		return selectSingle(cls, x), nil
	}
	if _, ok := cls.Types[y]; !ok {
		return Spec{}, fmt.Errorf("unknown column %q", y)
	}
	return selectPair(cls, x, y, extra), nil
}

func selectSingle(cls table.Classification, x string) Spec {
	switch cls.TypeOf(x) {
	case table.Numeric:
		return Spec{Family: FamilyHistogram, X: x, BoxMarginal: true}
	default:
		// Temporal single columns render as value frequencies too.
		return Spec{Family: FamilyBar, X: x}
	}
}

func selectPair(cls table.Classification, x, y, extra string) Spec {
	xt := cls.TypeOf(x)
	yt := cls.TypeOf(y)

	// Temporal columns act as the time axis against numbers and as plain
	// categories everywhere else.
	if xt == table.Temporal && yt == table.Numeric {
		return Spec{Family: FamilyLine, X: x, Y: y, Color: extra}
	}
	xt = demoteTemporal(xt)
	yt = demoteTemporal(yt)

	switch {
	case xt == table.Numeric && yt == table.Numeric:
		spec := Spec{Family: FamilyScatter, X: x, Y: y}
		if extra != "" {
			if cls.TypeOf(extra) == table.Numeric {
				spec.Size = extra
			} else {
				spec.Color = extra
			}
		}
		return spec
	case xt == table.Categorical && yt == table.Numeric:
		return Spec{Family: FamilyBox, X: x, Y: y}
	case xt == table.Numeric && yt == table.Categorical:
		return Spec{Family: FamilyBox, X: y, Y: x, Horizontal: true}
	default:
		return Spec{
			Family: FamilyBar,
			X:      x,
			Note:   fmt.Sprintf("%s and %s are both categorical; showing value frequencies of %s instead", x, y, x),
		}
	}
}

func demoteTemporal(ct table.ColumnType) table.ColumnType {
	if ct == table.Temporal {
		return table.Categorical
	}
	return ct
}
