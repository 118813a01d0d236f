package stepmodel

// Kind is an entity type name as written in the exchange file.
type Kind string

// Product structure.
const (
	ApplicationContext                  Kind = "APPLICATION_CONTEXT"
	ApplicationProtocolDefinition       Kind = "APPLICATION_PROTOCOL_DEFINITION"
	ProductContext                      Kind = "PRODUCT_CONTEXT"
	ProductDefinitionContext            Kind = "PRODUCT_DEFINITION_CONTEXT"
	Product                             Kind = "PRODUCT"
	ProductRelatedProductCategory       Kind = "PRODUCT_RELATED_PRODUCT_CATEGORY"
	ProductDefinitionFormation          Kind = "PRODUCT_DEFINITION_FORMATION"
	ProductDefinition                   Kind = "PRODUCT_DEFINITION"
	ProductDefinitionRelationship       Kind = "PRODUCT_DEFINITION_RELATIONSHIP"
	ProductDefinitionUsage              Kind = "PRODUCT_DEFINITION_USAGE"
	AssemblyComponentUsage              Kind = "ASSEMBLY_COMPONENT_USAGE"
	NextAssemblyUsageOccurrence         Kind = "NEXT_ASSEMBLY_USAGE_OCCURRENCE"
	SpecifiedHigherUsageOccurrence      Kind = "SPECIFIED_HIGHER_USAGE_OCCURRENCE"
	PropertyDefinition                  Kind = "PROPERTY_DEFINITION"
	ProductDefinitionShape              Kind = "PRODUCT_DEFINITION_SHAPE"
	PropertyDefinitionRepresentation    Kind = "PROPERTY_DEFINITION_REPRESENTATION"
	ShapeDefinitionRepresentation       Kind = "SHAPE_DEFINITION_REPRESENTATION"
	Representation                      Kind = "REPRESENTATION"
	ShapeRepresentation                 Kind = "SHAPE_REPRESENTATION"
	AdvancedBrepShapeRepresentation     Kind = "ADVANCED_BREP_SHAPE_REPRESENTATION"
	ShapeRepresentationWithParameters   Kind = "SHAPE_REPRESENTATION_WITH_PARAMETERS"
	ShapeDimensionRepresentation        Kind = "SHAPE_DIMENSION_REPRESENTATION"
	RepresentationRelationship          Kind = "REPRESENTATION_RELATIONSHIP"
	ShapeRepresentationRelationship     Kind = "SHAPE_REPRESENTATION_RELATIONSHIP"
	ItemDefinedTransformation           Kind = "ITEM_DEFINED_TRANSFORMATION"
	ContextDependentShapeRepresentation Kind = "CONTEXT_DEPENDENT_SHAPE_REPRESENTATION"
	RepresentationContext               Kind = "REPRESENTATION_CONTEXT"
	DocumentType                        Kind = "DOCUMENT_TYPE"
	DocumentFile                        Kind = "DOCUMENT_FILE"
	AppliedDocumentReference            Kind = "APPLIED_DOCUMENT_REFERENCE"
	DocumentRepresentationType          Kind = "DOCUMENT_REPRESENTATION_TYPE"
	RoleAssociation                     Kind = "ROLE_ASSOCIATION"
	ObjectRole                          Kind = "OBJECT_ROLE"
)

// Complex kinds: several partial types written together as one instance.
const (
	ShapeRepresentationRelationshipWithTransformation Kind = "REPRESENTATION_RELATIONSHIP_WITH_TRANSFORMATION_AND_SHAPE_REPRESENTATION_RELATIONSHIP"
	GeometricContext                                  Kind = "GEOMETRIC_REPRESENTATION_CONTEXT_AND_GLOBAL_UNIT_ASSIGNED_CONTEXT_AND_GLOBAL_UNCERTAINTY_ASSIGNED_CONTEXT"
	LengthUnit                                        Kind = "LENGTH_UNIT_AND_SI_UNIT"
	PlaneAngleUnit                                    Kind = "PLANE_ANGLE_UNIT_AND_SI_UNIT"
	SolidAngleUnit                                    Kind = "SOLID_ANGLE_UNIT_AND_SI_UNIT"
	MassUnit                                          Kind = "MASS_UNIT_AND_SI_UNIT"
	DensityUnit                                       Kind = "DERIVED_UNIT_AND_DENSITY_UNIT"
	GeoTolWthDatRefAndModAndPos                       Kind = "GEOMETRIC_TOLERANCE_WITH_DATUM_REFERENCE_AND_MODIFIED_GEOMETRIC_TOLERANCE_AND_POSITION_TOLERANCE"
	GeoTolWthDatRefAndMaxAndMod                       Kind = "GEOMETRIC_TOLERANCE_WITH_DATUM_REFERENCE_AND_MAXIMUM_TOLERANCE_AND_MODIFIERS"
	GeoTolWthMaxAndMod                                Kind = "GEOMETRIC_TOLERANCE_WITH_MAXIMUM_TOLERANCE_AND_MODIFIERS"
	GeoTolWthDatRefAndMod                             Kind = "GEOMETRIC_TOLERANCE_WITH_DATUM_REFERENCE_AND_MODIFIERS"
	GeoTolWthMod                                      Kind = "GEOMETRIC_TOLERANCE_WITH_MODIFIERS_ONLY"
	GeoTolWthDatRef                                   Kind = "GEOMETRIC_TOLERANCE_WITH_DATUM_REFERENCE_ONLY"
	ReprItemAndLengthMeasure                          Kind = "LENGTH_MEASURE_WITH_UNIT_AND_MEASURE_REPRESENTATION_ITEM"
	ReprItemAndAngleMeasure                           Kind = "PLANE_ANGLE_MEASURE_WITH_UNIT_AND_MEASURE_REPRESENTATION_ITEM"
	ReprItemAndLengthMeasureQualified                 Kind = "LENGTH_MEASURE_WITH_UNIT_AND_MEASURE_REPRESENTATION_ITEM_AND_QUALIFIED_REPRESENTATION_ITEM"
	ReprItemAndAngleMeasureQualified                  Kind = "PLANE_ANGLE_MEASURE_WITH_UNIT_AND_MEASURE_REPRESENTATION_ITEM_AND_QUALIFIED_REPRESENTATION_ITEM"
)

// Units and measures.
const (
	NamedUnit                  Kind = "NAMED_UNIT"
	SIUnit                     Kind = "SI_UNIT"
	DerivedUnit                Kind = "DERIVED_UNIT"
	DerivedUnitElement         Kind = "DERIVED_UNIT_ELEMENT"
	DimensionalExponents       Kind = "DIMENSIONAL_EXPONENTS"
	MeasureWithUnit            Kind = "MEASURE_WITH_UNIT"
	LengthMeasureWithUnit      Kind = "LENGTH_MEASURE_WITH_UNIT"
	PlaneAngleMeasureWithUnit  Kind = "PLANE_ANGLE_MEASURE_WITH_UNIT"
	UncertaintyMeasureWithUnit Kind = "UNCERTAINTY_MEASURE_WITH_UNIT"
	MeasureRepresentationItem  Kind = "MEASURE_REPRESENTATION_ITEM"
)

// Geometry and topology.
const (
	RepresentationItem            Kind = "REPRESENTATION_ITEM"
	GeometricRepresentationItem   Kind = "GEOMETRIC_REPRESENTATION_ITEM"
	TopologicalRepresentationItem Kind = "TOPOLOGICAL_REPRESENTATION_ITEM"
	CartesianPoint                Kind = "CARTESIAN_POINT"
	Direction                     Kind = "DIRECTION"
	Vector                        Kind = "VECTOR"
	Line                          Kind = "LINE"
	Plane                         Kind = "PLANE"
	Axis2Placement3D              Kind = "AXIS2_PLACEMENT_3D"
	VertexPoint                   Kind = "VERTEX_POINT"
	EdgeCurve                     Kind = "EDGE_CURVE"
	OrientedEdge                  Kind = "ORIENTED_EDGE"
	EdgeLoop                      Kind = "EDGE_LOOP"
	FaceBound                     Kind = "FACE_BOUND"
	FaceOuterBound                Kind = "FACE_OUTER_BOUND"
	Face                          Kind = "FACE"
	FaceSurface                   Kind = "FACE_SURFACE"
	AdvancedFace                  Kind = "ADVANCED_FACE"
	ConnectedFaceSet              Kind = "CONNECTED_FACE_SET"
	OpenShell                     Kind = "OPEN_SHELL"
	ClosedShell                   Kind = "CLOSED_SHELL"
	SolidModel                    Kind = "SOLID_MODEL"
	ManifoldSolidBrep             Kind = "MANIFOLD_SOLID_BREP"
	ShellBasedSurfaceModel        Kind = "SHELL_BASED_SURFACE_MODEL"
	GeometricCurveSet             Kind = "GEOMETRIC_CURVE_SET"
	CompoundRepresentationItem    Kind = "COMPOUND_REPRESENTATION_ITEM"
	DescriptiveRepresentationItem Kind = "DESCRIPTIVE_REPRESENTATION_ITEM"
	ValueRange                    Kind = "VALUE_RANGE"
	QualifiedRepresentationItem   Kind = "QUALIFIED_REPRESENTATION_ITEM"
	TypeQualifier                 Kind = "TYPE_QUALIFIER"
	ValueFormatTypeQualifier      Kind = "VALUE_FORMAT_TYPE_QUALIFIER"
	CoordinatesList               Kind = "COORDINATES_LIST"
	TessellatedCurveSet           Kind = "TESSELLATED_CURVE_SET"
	TessellatedGeometricSet       Kind = "TESSELLATED_GEOMETRIC_SET"
)

// Presentation.
const (
	ColourRGB                                           Kind = "COLOUR_RGB"
	DraughtingPreDefinedColour                          Kind = "DRAUGHTING_PRE_DEFINED_COLOUR"
	FillAreaStyleColour                                 Kind = "FILL_AREA_STYLE_COLOUR"
	FillAreaStyle                                       Kind = "FILL_AREA_STYLE"
	SurfaceStyleFillArea                                Kind = "SURFACE_STYLE_FILL_AREA"
	SurfaceSideStyle                                    Kind = "SURFACE_SIDE_STYLE"
	SurfaceStyleUsage                                   Kind = "SURFACE_STYLE_USAGE"
	DraughtingPreDefinedCurveFont                       Kind = "DRAUGHTING_PRE_DEFINED_CURVE_FONT"
	CurveStyle                                          Kind = "CURVE_STYLE"
	PresentationStyleAssignment                         Kind = "PRESENTATION_STYLE_ASSIGNMENT"
	PresentationStyleByContext                          Kind = "PRESENTATION_STYLE_BY_CONTEXT"
	StyledItem                                          Kind = "STYLED_ITEM"
	OverRidingStyledItem                                Kind = "OVER_RIDING_STYLED_ITEM"
	PresentationRepresentation                          Kind = "PRESENTATION_REPRESENTATION"
	MechanicalDesignGeometricPresentationRepresentation Kind = "MECHANICAL_DESIGN_GEOMETRIC_PRESENTATION_REPRESENTATION"
	Invisibility                                        Kind = "INVISIBILITY"
	PresentationLayerAssignment                         Kind = "PRESENTATION_LAYER_ASSIGNMENT"
	DraughtingModel                                     Kind = "DRAUGHTING_MODEL"
	DraughtingCallout                                   Kind = "DRAUGHTING_CALLOUT"
	TessellatedAnnotationOccurrence                     Kind = "TESSELLATED_ANNOTATION_OCCURRENCE"
	AnnotationPlane                                     Kind = "ANNOTATION_PLANE"
	DraughtingModelItemAssociation                      Kind = "DRAUGHTING_MODEL_ITEM_ASSOCIATION"
	ItemIdentifiedRepresentationUsage                   Kind = "ITEM_IDENTIFIED_REPRESENTATION_USAGE"
	GeometricItemSpecificUsage                          Kind = "GEOMETRIC_ITEM_SPECIFIC_USAGE"
)

// Shape aspects, dimensions and tolerances.
const (
	ShapeAspect                             Kind = "SHAPE_ASPECT"
	CompositeShapeAspect                    Kind = "COMPOSITE_SHAPE_ASPECT"
	ShapeAspectRelationship                 Kind = "SHAPE_ASPECT_RELATIONSHIP"
	FeatureForDatumTargetRelationship       Kind = "FEATURE_FOR_DATUM_TARGET_RELATIONSHIP"
	DatumFeature                            Kind = "DATUM_FEATURE"
	Datum                                   Kind = "DATUM"
	DatumTarget                             Kind = "DATUM_TARGET"
	PlacedDatumTargetFeature                Kind = "PLACED_DATUM_TARGET_FEATURE"
	DatumReference                          Kind = "DATUM_REFERENCE"
	GeneralDatumReference                   Kind = "GENERAL_DATUM_REFERENCE"
	DatumReferenceCompartment               Kind = "DATUM_REFERENCE_COMPARTMENT"
	DatumReferenceElement                   Kind = "DATUM_REFERENCE_ELEMENT"
	DatumReferenceModifierWithValue         Kind = "DATUM_REFERENCE_MODIFIER_WITH_VALUE"
	DatumSystem                             Kind = "DATUM_SYSTEM"
	DimensionalLocation                     Kind = "DIMENSIONAL_LOCATION"
	AngularLocation                         Kind = "ANGULAR_LOCATION"
	DimensionalLocationWithPath             Kind = "DIMENSIONAL_LOCATION_WITH_PATH"
	DimensionalSize                         Kind = "DIMENSIONAL_SIZE"
	AngularSize                             Kind = "ANGULAR_SIZE"
	DimensionalSizeWithPath                 Kind = "DIMENSIONAL_SIZE_WITH_PATH"
	DimensionalCharacteristicRepresentation Kind = "DIMENSIONAL_CHARACTERISTIC_REPRESENTATION"
	ToleranceValue                          Kind = "TOLERANCE_VALUE"
	PlusMinusTolerance                      Kind = "PLUS_MINUS_TOLERANCE"
	LimitsAndFits                           Kind = "LIMITS_AND_FITS"
	GeometricTolerance                      Kind = "GEOMETRIC_TOLERANCE"
	GeometricToleranceWithDatumReference    Kind = "GEOMETRIC_TOLERANCE_WITH_DATUM_REFERENCE"
	GeometricToleranceWithModifiers         Kind = "GEOMETRIC_TOLERANCE_WITH_MODIFIERS"
	GeometricToleranceWithMaximumTolerance  Kind = "GEOMETRIC_TOLERANCE_WITH_MAXIMUM_TOLERANCE"
	ModifiedGeometricTolerance              Kind = "MODIFIED_GEOMETRIC_TOLERANCE"
	AngularityTolerance                     Kind = "ANGULARITY_TOLERANCE"
	CircularRunoutTolerance                 Kind = "CIRCULAR_RUNOUT_TOLERANCE"
	RoundnessTolerance                      Kind = "ROUNDNESS_TOLERANCE"
	CoaxialityTolerance                     Kind = "COAXIALITY_TOLERANCE"
	ConcentricityTolerance                  Kind = "CONCENTRICITY_TOLERANCE"
	CylindricityTolerance                   Kind = "CYLINDRICITY_TOLERANCE"
	FlatnessTolerance                       Kind = "FLATNESS_TOLERANCE"
	ParallelismTolerance                    Kind = "PARALLELISM_TOLERANCE"
	PerpendicularityTolerance               Kind = "PERPENDICULARITY_TOLERANCE"
	PositionTolerance                       Kind = "POSITION_TOLERANCE"
	LineProfileTolerance                    Kind = "LINE_PROFILE_TOLERANCE"
	SurfaceProfileTolerance                 Kind = "SURFACE_PROFILE_TOLERANCE"
	StraightnessTolerance                   Kind = "STRAIGHTNESS_TOLERANCE"
	SymmetryTolerance                       Kind = "SYMMETRY_TOLERANCE"
	TotalRunoutTolerance                    Kind = "TOTAL_RUNOUT_TOLERANCE"
	ToleranceZoneForm                       Kind = "TOLERANCE_ZONE_FORM"
	ToleranceZone                           Kind = "TOLERANCE_ZONE"
	ProjectedZoneDefinition                 Kind = "PROJECTED_ZONE_DEFINITION"
	RunoutZoneDefinition                    Kind = "RUNOUT_ZONE_DEFINITION"
	RunoutZoneOrientation                   Kind = "RUNOUT_ZONE_ORIENTATION"
	NonUniformZoneDefinition                Kind = "NON_UNIFORM_ZONE_DEFINITION"
)

// supertypes maps each kind to its direct supertype.
var supertypes = map[Kind]Kind{
	ProductDefinitionUsage:                              ProductDefinitionRelationship,
	AssemblyComponentUsage:                              ProductDefinitionUsage,
	NextAssemblyUsageOccurrence:                         AssemblyComponentUsage,
	SpecifiedHigherUsageOccurrence:                      AssemblyComponentUsage,
	ProductDefinitionShape:                              PropertyDefinition,
	ShapeDefinitionRepresentation:                       PropertyDefinitionRepresentation,
	ShapeRepresentation:                                 Representation,
	AdvancedBrepShapeRepresentation:                     ShapeRepresentation,
	ShapeRepresentationWithParameters:                   ShapeRepresentation,
	ShapeDimensionRepresentation:                        ShapeRepresentation,
	ShapeRepresentationRelationship:                     RepresentationRelationship,
	ShapeRepresentationRelationshipWithTransformation:   ShapeRepresentationRelationship,
	GeometricContext:                                    RepresentationContext,
	PresentationRepresentation:                          Representation,
	MechanicalDesignGeometricPresentationRepresentation: PresentationRepresentation,
	DraughtingModel:                                     Representation,

	LengthUnit:     NamedUnit,
	PlaneAngleUnit: NamedUnit,
	SolidAngleUnit: NamedUnit,
	MassUnit:       NamedUnit,
	SIUnit:         NamedUnit,
	DensityUnit:    DerivedUnit,

	LengthMeasureWithUnit:      MeasureWithUnit,
	PlaneAngleMeasureWithUnit:  MeasureWithUnit,
	UncertaintyMeasureWithUnit: MeasureWithUnit,

	GeometricRepresentationItem:       RepresentationItem,
	TopologicalRepresentationItem:     RepresentationItem,
	CartesianPoint:                    GeometricRepresentationItem,
	Direction:                         GeometricRepresentationItem,
	Vector:                            GeometricRepresentationItem,
	Line:                              GeometricRepresentationItem,
	Plane:                             GeometricRepresentationItem,
	Axis2Placement3D:                  GeometricRepresentationItem,
	VertexPoint:                       TopologicalRepresentationItem,
	EdgeCurve:                         TopologicalRepresentationItem,
	OrientedEdge:                      TopologicalRepresentationItem,
	EdgeLoop:                          TopologicalRepresentationItem,
	FaceBound:                         TopologicalRepresentationItem,
	FaceOuterBound:                    FaceBound,
	Face:                              TopologicalRepresentationItem,
	FaceSurface:                       Face,
	AdvancedFace:                      FaceSurface,
	ConnectedFaceSet:                  TopologicalRepresentationItem,
	OpenShell:                         ConnectedFaceSet,
	ClosedShell:                       ConnectedFaceSet,
	SolidModel:                        GeometricRepresentationItem,
	ManifoldSolidBrep:                 SolidModel,
	ShellBasedSurfaceModel:            GeometricRepresentationItem,
	GeometricCurveSet:                 GeometricRepresentationItem,
	CompoundRepresentationItem:        RepresentationItem,
	ValueRange:                        CompoundRepresentationItem,
	DescriptiveRepresentationItem:     RepresentationItem,
	MeasureRepresentationItem:         RepresentationItem,
	ReprItemAndLengthMeasure:          MeasureRepresentationItem,
	ReprItemAndAngleMeasure:           MeasureRepresentationItem,
	ReprItemAndLengthMeasureQualified: ReprItemAndLengthMeasure,
	ReprItemAndAngleMeasureQualified:  ReprItemAndAngleMeasure,
	QualifiedRepresentationItem:       RepresentationItem,
	CoordinatesList:                   RepresentationItem,
	TessellatedCurveSet:               RepresentationItem,
	TessellatedGeometricSet:           RepresentationItem,
	StyledItem:                        RepresentationItem,
	OverRidingStyledItem:              StyledItem,
	TessellatedAnnotationOccurrence:   StyledItem,
	DraughtingCallout:                 GeometricRepresentationItem,
	AnnotationPlane:                   StyledItem,

	PresentationStyleByContext:     PresentationStyleAssignment,
	DraughtingPreDefinedColour:     ColourRGB,
	GeometricItemSpecificUsage:     ItemIdentifiedRepresentationUsage,
	DraughtingModelItemAssociation: ItemIdentifiedRepresentationUsage,

	CompositeShapeAspect:              ShapeAspect,
	DatumFeature:                      ShapeAspect,
	Datum:                             ShapeAspect,
	DatumTarget:                       ShapeAspect,
	PlacedDatumTargetFeature:          DatumTarget,
	GeneralDatumReference:             ShapeAspect,
	DatumReferenceCompartment:         GeneralDatumReference,
	DatumReferenceElement:             GeneralDatumReference,
	DatumSystem:                       ShapeAspect,
	FeatureForDatumTargetRelationship: ShapeAspectRelationship,
	AngularLocation:                   DimensionalLocation,
	DimensionalLocationWithPath:       DimensionalLocation,
	AngularSize:                       DimensionalSize,
	DimensionalSizeWithPath:           DimensionalSize,

	GeometricToleranceWithDatumReference:   GeometricTolerance,
	GeometricToleranceWithModifiers:        GeometricTolerance,
	GeometricToleranceWithMaximumTolerance: GeometricToleranceWithModifiers,
	ModifiedGeometricTolerance:             GeometricTolerance,
	GeoTolWthDatRefAndModAndPos:            GeometricToleranceWithDatumReference,
	GeoTolWthDatRefAndMaxAndMod:            GeometricToleranceWithDatumReference,
	GeoTolWthMaxAndMod:                     GeometricToleranceWithMaximumTolerance,
	GeoTolWthDatRefAndMod:                  GeometricToleranceWithDatumReference,
	GeoTolWthMod:                           GeometricToleranceWithModifiers,
	GeoTolWthDatRef:                        GeometricToleranceWithDatumReference,
	AngularityTolerance:                    GeometricToleranceWithDatumReference,
	CircularRunoutTolerance:                GeometricToleranceWithDatumReference,
	CoaxialityTolerance:                    GeometricToleranceWithDatumReference,
	ConcentricityTolerance:                 GeometricToleranceWithDatumReference,
	ParallelismTolerance:                   GeometricToleranceWithDatumReference,
	PerpendicularityTolerance:              GeometricToleranceWithDatumReference,
	SymmetryTolerance:                      GeometricToleranceWithDatumReference,
	TotalRunoutTolerance:                   GeometricToleranceWithDatumReference,
	RoundnessTolerance:                     GeometricTolerance,
	CylindricityTolerance:                  GeometricTolerance,
	FlatnessTolerance:                      GeometricTolerance,
	PositionTolerance:                      GeometricTolerance,
	LineProfileTolerance:                   GeometricTolerance,
	SurfaceProfileTolerance:                GeometricTolerance,
	StraightnessTolerance:                  GeometricTolerance,
}

// IsSubtype reports whether k is super or one of its subtypes.
func IsSubtype(k, super Kind) bool {
	for cur := k; cur != ""; cur = supertypes[cur] {
		if cur == super {
			return true
		}
	}
	return false
}
