package xcaf

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapstep/pkg/topo"
)

type enumNames []string

func (n enumNames) name(i int, kind string) string {
	if i < 0 || i >= len(n) {
		return fmt.Sprintf("%s(%d)", kind, i)
	}
	return n[i]
}

func (n enumNames) parse(s, kind string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, v := range n {
		if v == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

// DimensionType classifies a dimension.
type DimensionType int

// Dimension types. Location types measure between two shape aspects,
// size types measure one.
const (
	DimLocationNone DimensionType = iota
	DimLocationCurvedDistance
	DimLocationLinearDistance
	DimLocationLinearDistanceCenterToOuter
	DimLocationLinearDistanceCenterToInner
	DimLocationLinearDistanceOuterToCenter
	DimLocationLinearDistanceOuterToOuter
	DimLocationLinearDistanceOuterToInner
	DimLocationLinearDistanceInnerToCenter
	DimLocationLinearDistanceInnerToOuter
	DimLocationLinearDistanceInnerToInner
	DimLocationAngular
	DimLocationOriented
	DimLocationWithPath
	DimSizeCurveLength
	DimSizeDiameter
	DimSizeSphericalDiameter
	DimSizeRadius
	DimSizeSphericalRadius
	DimSizeToroidalMinorDiameter
	DimSizeToroidalMajorDiameter
	DimSizeToroidalMinorRadius
	DimSizeToroidalMajorRadius
	DimSizeToroidalHighMajorDiameter
	DimSizeToroidalLowMajorDiameter
	DimSizeToroidalHighMajorRadius
	DimSizeToroidalLowMajorRadius
	DimSizeThickness
	DimSizeAngular
	DimSizeWithPath
	DimCommonLabel
	DimPresentation
)

var dimensionTypeNames = enumNames{
	"location_none", "location_curved_distance", "location_linear_distance",
	"location_linear_distance_center_outer", "location_linear_distance_center_inner",
	"location_linear_distance_outer_center", "location_linear_distance_outer_outer",
	"location_linear_distance_outer_inner", "location_linear_distance_inner_center",
	"location_linear_distance_inner_outer", "location_linear_distance_inner_inner",
	"location_angular", "location_oriented", "location_with_path",
	"size_curve_length", "size_diameter", "size_spherical_diameter", "size_radius",
	"size_spherical_radius", "size_toroidal_minor_diameter", "size_toroidal_major_diameter",
	"size_toroidal_minor_radius", "size_toroidal_major_radius",
	"size_toroidal_high_major_diameter", "size_toroidal_low_major_diameter",
	"size_toroidal_high_major_radius", "size_toroidal_low_major_radius",
	"size_thickness", "size_angular", "size_with_path", "common_label", "dimension_presentation",
}

func (t DimensionType) String() string { return dimensionTypeNames.name(int(t), "dimensiontype") }

// ParseDimensionType parses a snake_case dimension type name.
func ParseDimensionType(s string) (DimensionType, error) {
	i, err := dimensionTypeNames.parse(s, "dimension type")
	return DimensionType(i), err
}

// IsLocation reports whether the type is a plain linear location.
func (t DimensionType) IsLocation() bool {
	return (t >= DimLocationNone && t <= DimLocationLinearDistanceInnerToInner) || t == DimLocationOriented
}

// IsSize reports whether the type is a plain size.
func (t DimensionType) IsSize() bool { return t >= DimSizeCurveLength && t <= DimSizeThickness }

// IsAngular reports whether the dimension measures an angle.
func (t DimensionType) IsAngular() bool { return t == DimLocationAngular || t == DimSizeAngular }

// DimensionQualifier marks a nominal value as a bound or an average.
type DimensionQualifier int

// Qualifiers.
const (
	QualifierNone DimensionQualifier = iota
	QualifierMin
	QualifierMax
	QualifierAvg
)

var qualifierNames = enumNames{"none", "min", "max", "avg"}

func (q DimensionQualifier) String() string { return qualifierNames.name(int(q), "qualifier") }

// ParseQualifier parses "min", "max" or "avg".
func ParseQualifier(s string) (DimensionQualifier, error) {
	i, err := qualifierNames.parse(s, "qualifier")
	return DimensionQualifier(i), err
}

// DimensionModifier is a descriptive size modifier.
type DimensionModifier int

// Dimension modifiers.
const (
	DimModControlledRadius DimensionModifier = iota
	DimModSquare
	DimModStatisticalTolerance
	DimModContinuousFeature
	DimModTwoPointSize
	DimModLocalSizeDefinedBySphere
	DimModLeastSquaresAssociationCriterion
	DimModMaximumInscribedAssociation
	DimModMinimumCircumscribedAssociation
	DimModCircumferenceDiameter
	DimModAreaDiameter
	DimModVolumeDiameter
	DimModMaximumSize
	DimModMinimumSize
	DimModAverageSize
	DimModMedianSize
	DimModMidRangeSize
	DimModRangeOfSizes
	DimModAnyRestrictedPortionOfFeature
	DimModAnyCrossSection
	DimModSpecificFixedCrossSection
	DimModCommonTolerance
	DimModFreeStateCondition
)

var dimensionModifierNames = enumNames{
	"controlled_radius", "square", "statistical_tolerance", "continuous_feature",
	"two_point_size", "local_size_defined_by_sphere", "least_squares_association_criterion",
	"maximum_inscribed_association", "minimum_circumscribed_association",
	"circumference_diameter", "area_diameter", "volume_diameter", "maximum_size",
	"minimum_size", "average_size", "median_size", "mid_range_size", "range_of_sizes",
	"any_restricted_portion_of_feature", "any_cross_section", "specific_fixed_cross_section",
	"common_tolerance", "free_state_condition",
}

func (m DimensionModifier) String() string {
	return dimensionModifierNames.name(int(m), "dimensionmodifier")
}

// ParseDimensionModifier parses a snake_case modifier name.
func ParseDimensionModifier(s string) (DimensionModifier, error) {
	i, err := dimensionModifierNames.parse(s, "dimension modifier")
	return DimensionModifier(i), err
}

// DatumTargetType is the auxiliary geometry of a datum target.
type DatumTargetType int

// Datum target types.
const (
	TargetPoint DatumTargetType = iota
	TargetLine
	TargetRectangle
	TargetCircle
	TargetArea
)

var targetNames = enumNames{"point", "line", "rectangle", "circle", "area"}

func (t DatumTargetType) String() string { return targetNames.name(int(t), "targettype") }

// ParseDatumTargetType parses a target type name.
func ParseDatumTargetType(s string) (DatumTargetType, error) {
	i, err := targetNames.parse(s, "datum target type")
	return DatumTargetType(i), err
}

// DatumModifier is a simple datum reference modifier.
type DatumModifier int

// Datum reference modifiers.
const (
	DatumModAnyCrossSection DatumModifier = iota
	DatumModAnyLongitudinalSection
	DatumModBasic
	DatumModContactingFeature
	DatumModDOFConstraintU
	DatumModDOFConstraintV
	DatumModDOFConstraintW
	DatumModDOFConstraintX
	DatumModDOFConstraintY
	DatumModDOFConstraintZ
	DatumModDistanceVariable
	DatumModFreeState
	DatumModLeastMaterialRequirement
	DatumModLine
	DatumModMajorDiameter
	DatumModMaximumMaterialRequirement
	DatumModMinorDiameter
	DatumModOrientation
	DatumModPitchDiameter
	DatumModPlane
	DatumModPoint
	DatumModTranslation
)

var datumModifierNames = enumNames{
	"any_cross_section", "any_longitudinal_section", "basic", "contacting_feature",
	"degree_of_freedom_constraint_u", "degree_of_freedom_constraint_v",
	"degree_of_freedom_constraint_w", "degree_of_freedom_constraint_x",
	"degree_of_freedom_constraint_y", "degree_of_freedom_constraint_z",
	"distance_variable", "free_state", "least_material_requirement", "line",
	"major_diameter", "maximum_material_requirement", "minor_diameter", "orientation",
	"pitch_diameter", "plane", "point", "translation",
}

func (m DatumModifier) String() string { return datumModifierNames.name(int(m), "datummodifier") }

// ParseDatumModifier parses a snake_case modifier name.
func ParseDatumModifier(s string) (DatumModifier, error) {
	i, err := datumModifierNames.parse(s, "datum modifier")
	return DatumModifier(i), err
}

// DatumValueModifier is a datum reference modifier carrying a length.
type DatumValueModifier int

// Valued datum modifiers.
const (
	DatumValueNone DatumValueModifier = iota
	DatumValueCircularOrCylindrical
	DatumValueDistance
	DatumValueProjected
	DatumValueSpherical
)

var datumValueNames = enumNames{"none", "circular_or_cylindrical", "distance", "projected", "spherical"}

func (m DatumValueModifier) String() string { return datumValueNames.name(int(m), "datumvaluemodifier") }

// ParseDatumValueModifier parses a valued modifier name.
func ParseDatumValueModifier(s string) (DatumValueModifier, error) {
	i, err := datumValueNames.parse(s, "datum value modifier")
	return DatumValueModifier(i), err
}

// ToleranceType is the characteristic controlled by a geometric tolerance.
type ToleranceType int

// Tolerance types.
const (
	TolNone ToleranceType = iota
	TolAngularity
	TolCircularRunout
	TolCircularity
	TolCoaxiality
	TolConcentricity
	TolCylindricity
	TolFlatness
	TolParallelism
	TolPerpendicularity
	TolPosition
	TolProfileOfLine
	TolProfileOfSurface
	TolStraightness
	TolSymmetry
	TolTotalRunout
)

var toleranceTypeNames = enumNames{
	"none", "angularity", "circular_runout", "circularity", "coaxiality", "concentricity",
	"cylindricity", "flatness", "parallelism", "perpendicularity", "position",
	"profile_of_line", "profile_of_surface", "straightness", "symmetry", "total_runout",
}

func (t ToleranceType) String() string { return toleranceTypeNames.name(int(t), "tolerancetype") }

// ParseToleranceType parses a tolerance type name.
func ParseToleranceType(s string) (ToleranceType, error) {
	i, err := toleranceTypeNames.parse(s, "tolerance type")
	return ToleranceType(i), err
}

// ToleranceValueType is the shape of the tolerance zone implied by the value.
type ToleranceValueType int

// Value types.
const (
	ValueNone ToleranceValueType = iota
	ValueDiameter
	ValueSphericalDiameter
)

var valueTypeNames = enumNames{"none", "diameter", "spherical_diameter"}

func (t ToleranceValueType) String() string { return valueTypeNames.name(int(t), "valuetype") }

// ParseToleranceValueType parses a value type name.
func ParseToleranceValueType(s string) (ToleranceValueType, error) {
	i, err := valueTypeNames.parse(s, "tolerance value type")
	return ToleranceValueType(i), err
}

// MaterialModifier is the material requirement of a tolerance.
type MaterialModifier int

// Material requirements.
const (
	MaterialNone MaterialModifier = iota
	MaterialMaximum
	MaterialLeast
)

var materialModifierNames = enumNames{"none", "maximum", "least"}

func (m MaterialModifier) String() string { return materialModifierNames.name(int(m), "materialmodifier") }

// ParseMaterialModifier parses "maximum" or "least".
func ParseMaterialModifier(s string) (MaterialModifier, error) {
	i, err := materialModifierNames.parse(s, "material modifier")
	return MaterialModifier(i), err
}

// ZoneModifier changes the interpretation of the tolerance zone.
type ZoneModifier int

// Zone modifiers.
const (
	ZoneNone ZoneModifier = iota
	ZoneProjected
	ZoneRunout
	ZoneNonUniform
)

var zoneModifierNames = enumNames{"none", "projected", "runout", "non_uniform"}

func (m ZoneModifier) String() string { return zoneModifierNames.name(int(m), "zonemodifier") }

// ParseZoneModifier parses a zone modifier name.
func ParseZoneModifier(s string) (ZoneModifier, error) {
	i, err := zoneModifierNames.parse(s, "zone modifier")
	return ZoneModifier(i), err
}

// ToleranceModifier is a geometric tolerance modifier.
type ToleranceModifier int

// Tolerance modifiers. AllAround and AllOver are presentation-only.
const (
	TolModAnyCrossSection ToleranceModifier = iota
	TolModCommonZone
	TolModEachRadialElement
	TolModFreeState
	TolModLeastMaterialRequirement
	TolModLineElement
	TolModMajorDiameter
	TolModMaximumMaterialRequirement
	TolModMinorDiameter
	TolModNotConvex
	TolModPitchDiameter
	TolModReciprocityRequirement
	TolModSeparateRequirement
	TolModStatisticalTolerance
	TolModTangentPlane
	TolModAllAround
	TolModAllOver
)

var toleranceModifierNames = enumNames{
	"any_cross_section", "common_zone", "each_radial_element", "free_state",
	"least_material_requirement", "line_element", "major_diameter",
	"maximum_material_requirement", "minor_diameter", "not_convex", "pitch_diameter",
	"reciprocity_requirement", "separate_requirement", "statistical_tolerance",
	"tangent_plane", "all_around", "all_over",
}

func (m ToleranceModifier) String() string {
	return toleranceModifierNames.name(int(m), "tolerancemodifier")
}

// ParseToleranceModifier parses a snake_case modifier name.
func ParseToleranceModifier(s string) (ToleranceModifier, error) {
	i, err := toleranceModifierNames.parse(s, "tolerance modifier")
	return ToleranceModifier(i), err
}

// Presentation is the tessellated visual of an annotation on its plane.
type Presentation struct {
	Shape        topo.Shape
	Plane        topo.Axis
	TextPosition topo.Point
}

// DatumObject describes a datum or one datum target. Name, Description
// and Identification are also used by the legacy kind-coded export.
type DatumObject struct {
	Name           string
	Description    string
	Identification string
	Position       int

	Modifiers     []DatumModifier
	ValueModifier DatumValueModifier
	ModifierValue float64

	IsTarget     bool
	TargetType   DatumTargetType
	TargetNumber int
	TargetShape  topo.Shape
	TargetAxis   topo.Axis
	TargetLength float64
	TargetWidth  float64

	Presentation *Presentation
}

// Bounds is a pair of values.
type Bounds struct {
	Lower, Upper float64
}

// ClassOfTolerance is an ISO limits-and-fits designation, e.g. hole H7.
type ClassOfTolerance struct {
	Hole         bool
	FormVariance string
	Grade        string
}

// Description is a named free-text note on a dimension.
type Description struct {
	Name string
	Text string
}

// DimensionObject describes a dimension.
type DimensionObject struct {
	Type      DimensionType
	Value     float64
	Qualifier DimensionQualifier

	LeftDigits, RightDigits int

	Range            *Bounds
	PlusMinus        *Bounds
	ClassOfTolerance *ClassOfTolerance
	Modifiers        []DimensionModifier

	Path      topo.Shape
	Origin    topo.Point
	Direction topo.Point

	Descriptions []Description
	Presentation *Presentation
}

// GeomToleranceObject describes a geometric tolerance.
type GeomToleranceObject struct {
	Type              ToleranceType
	ValueType         ToleranceValueType
	Value             float64
	MaterialModifier  MaterialModifier
	ZoneModifier      ZoneModifier
	ZoneModifierValue float64
	Modifiers         []ToleranceModifier
	MaxValue          float64
	Axis              *topo.Axis
	Presentation      *Presentation
}

// DimTol is a legacy kind-coded dimension or tolerance. Kinds below 20 are
// dimensions, 20..31 tolerances with a datum system.
type DimTol struct {
	Kind        int
	Values      []float64
	Name        string
	Description string
}

// AddDatum attaches a datum to shape labels.
func (d *Document) AddDatum(obj DatumObject, shapes ...*Label) (*Label, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("datum %q has no shapes", obj.Name)
	}
	if err := d.checkRefs(shapes); err != nil {
		return nil, err
	}
	l := d.newAnnotation("Datum", &obj)
	l.first = shapes
	return l, nil
}

// AddDimension attaches a dimension between two groups of shape labels.
// The second group is empty for size dimensions.
func (d *Document) AddDimension(obj DimensionObject, first, second []*Label) (*Label, error) {
	if len(first) == 0 {
		return nil, fmt.Errorf("dimension has no shapes")
	}
	if err := d.checkRefs(append(append([]*Label(nil), first...), second...)); err != nil {
		return nil, err
	}
	l := d.newAnnotation("Dimension", &obj)
	l.first = first
	l.second = second
	return l, nil
}

// AddGeomTolerance attaches a geometric tolerance referencing datums.
func (d *Document) AddGeomTolerance(obj GeomToleranceObject, shapes []*Label, datums ...*Label) (*Label, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("tolerance has no shapes")
	}
	if err := d.checkRefs(shapes); err != nil {
		return nil, err
	}
	for _, dl := range datums {
		if _, ok := dl.Datum(); !ok {
			return nil, fmt.Errorf("label %v is not a datum", dl)
		}
	}
	l := d.newAnnotation("GeomTolerance", &obj)
	l.first = shapes
	l.datums = datums
	return l, nil
}

// AddDimTol attaches a legacy kind-coded dimension or tolerance.
func (d *Document) AddDimTol(dt DimTol, shapes []*Label, datums ...*Label) (*Label, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("dimtol %q has no shapes", dt.Name)
	}
	if err := d.checkRefs(shapes); err != nil {
		return nil, err
	}
	l := d.newAnnotation("DGT", &dt)
	l.first = shapes
	l.datums = datums
	return l, nil
}

// Datums returns the datum labels.
func (d *Document) Datums() []*Label {
	return d.annotationsOf(func(v any) bool { _, ok := v.(*DatumObject); return ok })
}

// Dimensions returns the dimension labels.
func (d *Document) Dimensions() []*Label {
	return d.annotationsOf(func(v any) bool { _, ok := v.(*DimensionObject); return ok })
}

// GeomTolerances returns the geometric tolerance labels.
func (d *Document) GeomTolerances() []*Label {
	return d.annotationsOf(func(v any) bool { _, ok := v.(*GeomToleranceObject); return ok })
}

// DimTols returns the legacy dimension and tolerance labels.
func (d *Document) DimTols() []*Label {
	return d.annotationsOf(func(v any) bool { _, ok := v.(*DimTol); return ok })
}

// Datum returns the datum object of an annotation label.
func (l *Label) Datum() (*DatumObject, bool) { v, ok := l.gdt.(*DatumObject); return v, ok }

// Dimension returns the dimension object of an annotation label.
func (l *Label) Dimension() (*DimensionObject, bool) { v, ok := l.gdt.(*DimensionObject); return v, ok }

// GeomTolerance returns the tolerance object of an annotation label.
func (l *Label) GeomTolerance() (*GeomToleranceObject, bool) {
	v, ok := l.gdt.(*GeomToleranceObject)
	return v, ok
}

// DimTol returns the legacy object of an annotation label.
func (l *Label) DimTol() (*DimTol, bool) { v, ok := l.gdt.(*DimTol); return v, ok }

// RefShapes returns the shape labels an annotation is attached to.
func (l *Label) RefShapes() (first, second []*Label) { return l.first, l.second }

// RefDatums returns the datums referenced by a tolerance.
func (l *Label) RefDatums() []*Label { return l.datums }
