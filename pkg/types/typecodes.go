package types

// defaultTypes are the IFC entity names the default table maps, with the
// engine's numeric type codes (CRC32 of the upper-case entity name).
var defaultTypes = []struct {
	name string
	code uint32
}{
	{"IfcActor", 2296667514},
	{"IfcAnnotation", 1674181508},
	{"IfcApplication", 639542469},
	{"IfcAxis2Placement2D", 3125803723},
	{"IfcAxis2Placement3D", 2740243338},
	{"IfcBeam", 753842376},
	{"IfcBeamType", 819618141},
	{"IfcBuilding", 4031249490},
	{"IfcBuildingElementProxy", 1095909175},
	{"IfcBuildingStorey", 3124254112},
	{"IfcCartesianPoint", 1123145078},
	{"IfcCartesianPointList3D", 2059837836},
	{"IfcChimney", 3296154744},
	{"IfcColumn", 843113511},
	{"IfcColumnType", 300633059},
	{"IfcComplexProperty", 2542286263},
	{"IfcCovering", 1973544240},
	{"IfcCurtainWall", 3495092785},
	{"IfcDirection", 32440307},
	{"IfcDistributionPort", 3041715199},
	{"IfcDoor", 395920057},
	{"IfcDoorType", 2323601079},
	{"IfcElementAssembly", 4123344466},
	{"IfcElementQuantity", 1883228015},
	{"IfcExtrudedAreaSolid", 477187591},
	{"IfcFlowFitting", 4278956645},
	{"IfcFlowSegment", 987401354},
	{"IfcFlowTerminal", 2223149337},
	{"IfcFooting", 900683007},
	{"IfcFurnishingElement", 263784265},
	{"IfcFurniture", 1509553395},
	{"IfcGeometricRepresentationContext", 3448662350},
	{"IfcGeometricRepresentationSubContext", 4142052618},
	{"IfcGroup", 2706460486},
	{"IfcLocalPlacement", 2624227202},
	{"IfcMaterial", 1838606355},
	{"IfcMaterialLayer", 248100487},
	{"IfcMaterialLayerSet", 3303938423},
	{"IfcMaterialLayerSetUsage", 1303795690},
	{"IfcMember", 1073191201},
	{"IfcOpeningElement", 3588315303},
	{"IfcOrganization", 4251960020},
	{"IfcOwnerHistory", 1207048766},
	{"IfcPerson", 2077209135},
	{"IfcPersonAndOrganization", 101040310},
	{"IfcPile", 1687234759},
	{"IfcPlate", 3171933400},
	{"IfcPolyline", 3724593414},
	{"IfcProductDefinitionShape", 673634403},
	{"IfcProject", 103090709},
	{"IfcPropertySet", 1451395588},
	{"IfcPropertySingleValue", 3650150729},
	{"IfcQuantityArea", 2044713172},
	{"IfcQuantityLength", 931644368},
	{"IfcQuantityVolume", 2405470396},
	{"IfcRailing", 2262370178},
	{"IfcRamp", 3024970846},
	{"IfcRectangleProfileDef", 3615266464},
	{"IfcRelAggregates", 160246688},
	{"IfcRelAssociatesMaterial", 2655215786},
	{"IfcRelContainedInSpatialStructure", 3242617779},
	{"IfcRelDefinesByProperties", 4186316022},
	{"IfcRelDefinesByType", 781010003},
	{"IfcRelFillsElement", 3940055652},
	{"IfcRelSpaceBoundary", 3451746338},
	{"IfcRelVoidsElement", 1401173127},
	{"IfcRoof", 2016517767},
	{"IfcShapeRepresentation", 4240577450},
	{"IfcSite", 4097777520},
	{"IfcSIUnit", 448429030},
	{"IfcSlab", 1529196076},
	{"IfcSlabType", 2533589738},
	{"IfcSpace", 3856911033},
	{"IfcStair", 331165859},
	{"IfcStairFlight", 4252922144},
	{"IfcStyledItem", 3958052878},
	{"IfcUnitAssignment", 180925521},
	{"IfcWall", 2391406946},
	{"IfcWallStandardCase", 3512223829},
	{"IfcWallType", 1898987631},
	{"IfcWindow", 3304561284},
	{"IfcWindowType", 4009809668},
	{"IfcZone", 1033361043},
}
