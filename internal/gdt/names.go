package gdt

import (
	"strings"

	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

var dimensionTypeNames = map[xcaf.DimensionType]string{
	xcaf.DimLocationCurvedDistance:              "curved distance",
	xcaf.DimLocationLinearDistance:              "linear distance",
	xcaf.DimLocationLinearDistanceCenterToOuter: "linear distance centre outer",
	xcaf.DimLocationLinearDistanceCenterToInner: "linear distance centre inner",
	xcaf.DimLocationLinearDistanceOuterToCenter: "linear distance outer centre",
	xcaf.DimLocationLinearDistanceOuterToOuter:  "linear distance outer outer",
	xcaf.DimLocationLinearDistanceOuterToInner:  "linear distance outer inner",
	xcaf.DimLocationLinearDistanceInnerToCenter: "linear distance inner centre",
	xcaf.DimLocationLinearDistanceInnerToOuter:  "linear distance inner outer",
	xcaf.DimLocationLinearDistanceInnerToInner:  "linear distance inner inner",
	xcaf.DimSizeCurveLength:                     "curve length",
	xcaf.DimSizeDiameter:                        "diameter",
	xcaf.DimSizeSphericalDiameter:               "spherical diameter",
	xcaf.DimSizeRadius:                          "radius",
	xcaf.DimSizeSphericalRadius:                 "spherical radius",
	xcaf.DimSizeToroidalMinorDiameter:           "toroidal minor diameter",
	xcaf.DimSizeToroidalMajorDiameter:           "toroidal major diameter",
	xcaf.DimSizeToroidalMinorRadius:             "toroidal minor radius",
	xcaf.DimSizeToroidalMajorRadius:             "toroidal major radius",
	xcaf.DimSizeToroidalHighMajorDiameter:       "toroidal high major diameter",
	xcaf.DimSizeToroidalLowMajorDiameter:        "toroidal low major diameter",
	xcaf.DimSizeToroidalHighMajorRadius:         "toroidal high major radius",
	xcaf.DimSizeToroidalLowMajorRadius:          "toroidal low major radius",
	xcaf.DimSizeThickness:                       "thickness",
}

var qualifierNames = map[xcaf.DimensionQualifier]string{
	xcaf.QualifierMin: "minimum",
	xcaf.QualifierMax: "maximum",
	xcaf.QualifierAvg: "average",
}

var dimensionModifierNames = map[xcaf.DimensionModifier]string{
	xcaf.DimModControlledRadius:                 "controlled radius",
	xcaf.DimModSquare:                           "square",
	xcaf.DimModStatisticalTolerance:             "statistical",
	xcaf.DimModContinuousFeature:                "continuous feature",
	xcaf.DimModTwoPointSize:                     "two point size",
	xcaf.DimModLocalSizeDefinedBySphere:         "local size defined by a sphere",
	xcaf.DimModLeastSquaresAssociationCriterion: "least squares association criteria",
	xcaf.DimModMaximumInscribedAssociation:      "maximum inscribed association criteria",
	xcaf.DimModMinimumCircumscribedAssociation:  "minimum circumscribed association criteria",
	xcaf.DimModCircumferenceDiameter:            "circumference diameter calculated size",
	xcaf.DimModAreaDiameter:                     "area diameter calculated size",
	xcaf.DimModVolumeDiameter:                   "volume diameter calculated size",
	xcaf.DimModMaximumSize:                      "maximum size",
	xcaf.DimModMinimumSize:                      "minimum size",
	xcaf.DimModAverageSize:                      "average size",
	xcaf.DimModMedianSize:                       "median size",
	xcaf.DimModMidRangeSize:                     "mid range size",
	xcaf.DimModRangeOfSizes:                     "range of sizes",
	xcaf.DimModAnyRestrictedPortionOfFeature:    "any restricted portion of feature",
	xcaf.DimModAnyCrossSection:                  "any cross section",
	xcaf.DimModSpecificFixedCrossSection:        "specific fixed cross section",
	xcaf.DimModCommonTolerance:                  "common tolerance",
	xcaf.DimModFreeStateCondition:               "free state condition",
}

// toleranceKinds maps tolerance types to the kind written for them.
var toleranceKinds = map[xcaf.ToleranceType]m.Kind{
	xcaf.TolAngularity:       m.AngularityTolerance,
	xcaf.TolCircularRunout:   m.CircularRunoutTolerance,
	xcaf.TolCircularity:      m.RoundnessTolerance,
	xcaf.TolCoaxiality:       m.CoaxialityTolerance,
	xcaf.TolConcentricity:    m.ConcentricityTolerance,
	xcaf.TolCylindricity:     m.CylindricityTolerance,
	xcaf.TolFlatness:         m.FlatnessTolerance,
	xcaf.TolParallelism:      m.ParallelismTolerance,
	xcaf.TolPerpendicularity: m.PerpendicularityTolerance,
	xcaf.TolPosition:         m.PositionTolerance,
	xcaf.TolProfileOfLine:    m.LineProfileTolerance,
	xcaf.TolProfileOfSurface: m.SurfaceProfileTolerance,
	xcaf.TolStraightness:     m.StraightnessTolerance,
	xcaf.TolSymmetry:         m.SymmetryTolerance,
	xcaf.TolTotalRunout:      m.TotalRunoutTolerance,
}

var zoneFormNames = map[xcaf.ToleranceValueType]string{
	xcaf.ValueDiameter:          "cylindrical or circular",
	xcaf.ValueSphericalDiameter: "spherical",
}

var datumValueModifiers = map[xcaf.DatumValueModifier]m.Enum{
	xcaf.DatumValueCircularOrCylindrical: "CIRCULAR_OR_CYLINDRICAL",
	xcaf.DatumValueDistance:              "DISTANCE",
	xcaf.DatumValueProjected:             "PROJECTED",
	xcaf.DatumValueSpherical:             "SPHERICAL",
}

// enumOf writes a snake_case name as an enumeration literal.
func enumOf(s string) m.Enum { return m.Enum(strings.ToUpper(s)) }

func angleSelection(q xcaf.DimensionQualifier) m.Enum {
	switch q {
	case xcaf.QualifierMin:
		return "SMALL"
	case xcaf.QualifierMax:
		return "LARGE"
	default:
		return "EQUAL"
	}
}
