package registry

// builtinCatalog is the built-in node type catalog.
//
// Property schemas and port layouts were reverse-engineered from working
// project files saved by the editor. Serialized keys are single tokens even
// where the editor UI shows a two-word display name; both forms are accepted
// by the resolver. Limited-class membership and essential lists reflect what
// the editor tolerated in testing and can be overlaid from configuration.
var builtinCatalog = []NodeTypeDefinition{
	// -------------------------------------------------------------------------
	// Generators. No input ports; fragile when under-specified.
	// -------------------------------------------------------------------------
	{
		Name:             "Mountain",
		TypeString:       "QuadSpinner.Gaea.Nodes.Mountain, Gaea.Nodes",
		Class:            ClassFull,
		FragileWhenEmpty: true,
		Properties: []PropertyDefinition{
			{Key: "Scale", Kind: ValueNumber, Default: 1.0, Min: 0.1, Max: 5.0},
			{Key: "Height", Kind: ValueNumber, Default: 0.5, Min: 0.0, Max: 1.0},
			{Key: "Style", Kind: ValueEnum, Default: "Alpine", Enum: []string{"Basic", "Eroded", "Old", "Alpine", "Strata"}},
			{Key: "Bulk", Kind: ValueEnum, Default: "Medium", Enum: []string{"Low", "Medium", "High"}},
			{Key: "ReduceDetails", Display: "Reduce Details", Kind: ValueBool, Default: false},
			{Key: "Seed", Kind: ValueNumber, Default: 0.0, Min: 0, Max: 999999},
		},
		Ports: []PortDefinition{
			{Name: "Out", Dir: Out},
		},
	},
	{
		Name:             "Ridge",
		TypeString:       "QuadSpinner.Gaea.Nodes.Ridge, Gaea.Nodes",
		Class:            ClassFull,
		FragileWhenEmpty: true,
		Properties: []PropertyDefinition{
			{Key: "Scale", Kind: ValueNumber, Default: 1.0, Min: 0.1, Max: 5.0},
			{Key: "Height", Kind: ValueNumber, Default: 0.6, Min: 0.0, Max: 1.0},
			{Key: "Style", Kind: ValueEnum, Default: "Basic", Enum: []string{"Basic", "Eroded", "Smooth"}},
			{Key: "Seed", Kind: ValueNumber, Default: 0.0, Min: 0, Max: 999999},
		},
		Ports: []PortDefinition{
			{Name: "Out", Dir: Out},
		},
	},
	{
		Name:             "Island",
		TypeString:       "QuadSpinner.Gaea.Nodes.Island, Gaea.Nodes",
		Class:            ClassFull,
		FragileWhenEmpty: true,
		Properties: []PropertyDefinition{
			{Key: "Size", Kind: ValueNumber, Default: 0.7, Min: 0.0, Max: 1.0},
			{Key: "Chaos", Kind: ValueNumber, Default: 0.35, Min: 0.0, Max: 1.0},
			{Key: "BeachSize", Display: "Beach Size", Kind: ValueNumber, Default: 0.2, Min: 0.0, Max: 1.0},
			{Key: "Seed", Kind: ValueNumber, Default: 0.0, Min: 0, Max: 999999},
		},
		Ports: []PortDefinition{
			{Name: "Out", Dir: Out},
		},
	},
	{
		Name:             "Canyon",
		TypeString:       "QuadSpinner.Gaea.Nodes.Canyon, Gaea.Nodes",
		Class:            ClassFull,
		FragileWhenEmpty: true,
		Properties: []PropertyDefinition{
			{Key: "Scale", Kind: ValueNumber, Default: 1.0, Min: 0.1, Max: 5.0},
			{Key: "Depth", Kind: ValueNumber, Default: 0.5, Min: 0.0, Max: 1.0},
			{Key: "Style", Kind: ValueEnum, Default: "Eroded", Enum: []string{"Eroded", "Sharp"}},
			{Key: "Seed", Kind: ValueNumber, Default: 0.0, Min: 0, Max: 999999},
		},
		Ports: []PortDefinition{
			{Name: "Out", Dir: Out},
		},
	},
	{
		Name:             "Plates",
		TypeString:       "QuadSpinner.Gaea.Nodes.Plates, Gaea.Nodes",
		Class:            ClassFull,
		FragileWhenEmpty: true,
		Properties: []PropertyDefinition{
			{Key: "Scale", Kind: ValueNumber, Default: 1.0, Min: 0.1, Max: 5.0},
			{Key: "Complexity", Kind: ValueNumber, Default: 0.5, Min: 0.0, Max: 1.0},
			{Key: "Seed", Kind: ValueNumber, Default: 0.0, Min: 0, Max: 999999},
		},
		Ports: []PortDefinition{
			{Name: "Out", Dir: Out},
		},
	},

	// -------------------------------------------------------------------------
	// Erosion family. Limited-class: the editor rejects these nodes once more
	// than a handful of properties are serialized.
	// -------------------------------------------------------------------------
	{
		Name:             "Erosion",
		TypeString:       "QuadSpinner.Gaea.Nodes.Erosion, Gaea.Nodes",
		Class:            ClassLimited,
		Essentials:       []string{"Duration", "RockSoftness", "Strength"},
		FragileWhenEmpty: true,
		Properties: []PropertyDefinition{
			{Key: "Duration", Kind: ValueNumber, Default: 0.04, Min: 0.0, Max: 1.0},
			{Key: "RockSoftness", Display: "Rock Softness", Kind: ValueNumber, Default: 0.4, Min: 0.0, Max: 1.0},
			{Key: "Strength", Kind: ValueNumber, Default: 0.5, Min: 0.0, Max: 1.0},
			{Key: "Inverse", Kind: ValueBool, Default: false},
			{Key: "RealScale", Display: "Real Scale", Kind: ValueBool, Default: false},
			{Key: "FeatureScale", Display: "Feature Scale", Kind: ValueNumber, Default: 2000.0, Min: 50, Max: 20000},
			{Key: "Seed", Kind: ValueNumber, Default: 0.0, Min: 0, Max: 999999},
		},
		Ports: []PortDefinition{
			{Name: "In", Dir: In, Required: true},
			{Name: "Mask", Dir: In},
			{Name: "Out", Dir: Out},
			{Name: "Flow", Dir: Out},
			{Name: "Wear", Dir: Out},
			{Name: "Deposits", Dir: Out},
		},
	},
	{
		Name:             "Rivers",
		TypeString:       "QuadSpinner.Gaea.Nodes.Rivers, Gaea.Nodes",
		Class:            ClassLimited,
		Essentials:       []string{"Water", "Width", "Depth"},
		FragileWhenEmpty: true,
		Properties: []PropertyDefinition{
			{Key: "Water", Kind: ValueNumber, Default: 0.3, Min: 0.0, Max: 1.0},
			{Key: "Width", Kind: ValueNumber, Default: 0.5, Min: 0.0, Max: 1.0},
			{Key: "Depth", Kind: ValueNumber, Default: 0.5, Min: 0.0, Max: 1.0},
			{Key: "Downcutting", Kind: ValueNumber, Default: 0.2, Min: 0.0, Max: 1.0},
			{Key: "RiverValleyWidth", Display: "River Valley Width", Kind: ValueEnum, Default: "zero", Enum: []string{"minus4", "minus2", "zero", "plus2", "plus4"}},
			{Key: "Headwaters", Kind: ValueNumber, Default: 100.0, Min: 1, Max: 1000},
			{Key: "RenderSurface", Display: "Render Surface", Kind: ValueBool, Default: false},
			{Key: "Seed", Kind: ValueNumber, Default: 0.0, Min: 0, Max: 999999},
		},
		Ports: []PortDefinition{
			{Name: "In", Dir: In, Required: true},
			{Name: "Mask", Dir: In},
			{Name: "Out", Dir: Out},
			{Name: "Rivers", Dir: Out},
			{Name: "Depth", Dir: Out},
		},
	},
	{
		Name:             "Snow",
		TypeString:       "QuadSpinner.Gaea.Nodes.Snow, Gaea.Nodes",
		Class:            ClassLimited,
		Essentials:       []string{"Duration", "SnowLine", "Melt"},
		FragileWhenEmpty: true,
		Properties: []PropertyDefinition{
			{Key: "Duration", Kind: ValueNumber, Default: 0.5, Min: 0.0, Max: 1.0},
			{Key: "SnowLine", Display: "Snow Line", Kind: ValueNumber, Default: 0.6, Min: 0.0, Max: 1.0},
			{Key: "Melt", Kind: ValueNumber, Default: 0.3, Min: 0.0, Max: 1.0},
			{Key: "Intensity", Kind: ValueNumber, Default: 0.5, Min: 0.0, Max: 1.0},
			{Key: "SettleDuration", Display: "Settle Duration", Kind: ValueNumber, Default: 0.2, Min: 0.0, Max: 1.0},
			{Key: "SlipOffAngle", Display: "Slip-off Angle", Kind: ValueNumber, Default: 35.0, Min: 0, Max: 90},
			{Key: "RealScale", Display: "Real Scale", Kind: ValueBool, Default: true},
			{Key: "Seed", Kind: ValueNumber, Default: 0.0, Min: 0, Max: 999999},
		},
		Ports: []PortDefinition{
			{Name: "In", Dir: In, Required: true},
			{Name: "Mask", Dir: In},
			{Name: "Out", Dir: Out},
			{Name: "Snow", Dir: Out},
		},
	},
	{
		Name:             "Thermal",
		TypeString:       "QuadSpinner.Gaea.Nodes.Thermal, Gaea.Nodes",
		Class:            ClassLimited,
		Essentials:       []string{"Duration", "Strength", "TalusAngle"},
		FragileWhenEmpty: true,
		Properties: []PropertyDefinition{
			{Key: "Duration", Kind: ValueNumber, Default: 0.25, Min: 0.0, Max: 1.0},
			{Key: "Strength", Kind: ValueNumber, Default: 0.5, Min: 0.0, Max: 1.0},
			{Key: "TalusAngle", Display: "Talus Angle", Kind: ValueNumber, Default: 38.0, Min: 0, Max: 90},
			{Key: "Anisotropy", Kind: ValueNumber, Default: 0.0, Min: 0.0, Max: 1.0},
			{Key: "Seed", Kind: ValueNumber, Default: 0.0, Min: 0, Max: 999999},
		},
		Ports: []PortDefinition{
			{Name: "In", Dir: In, Required: true},
			{Name: "Mask", Dir: In},
			{Name: "Out", Dir: Out},
		},
	},

	// -------------------------------------------------------------------------
	// Modifiers.
	// -------------------------------------------------------------------------
	{
		Name:       "Terraces",
		TypeString: "QuadSpinner.Gaea.Nodes.Terraces, Gaea.Nodes",
		Class:      ClassFull,
		Properties: []PropertyDefinition{
			{Key: "TerraceCount", Display: "Terrace Count", Kind: ValueNumber, Default: 10.0, Min: 1, Max: 200},
			{Key: "Uniformity", Kind: ValueNumber, Default: 0.5, Min: 0.0, Max: 1.0},
			{Key: "Intensity", Kind: ValueNumber, Default: 0.8, Min: 0.0, Max: 1.0},
			{Key: "Seed", Kind: ValueNumber, Default: 0.0, Min: 0, Max: 999999},
		},
		Ports: []PortDefinition{
			{Name: "In", Dir: In, Required: true},
			{Name: "Mask", Dir: In},
			{Name: "Out", Dir: Out},
		},
	},
	{
		Name:       "Adjust",
		TypeString: "QuadSpinner.Gaea.Nodes.Adjust, Gaea.Nodes",
		Class:      ClassFull,
		Properties: []PropertyDefinition{
			{Key: "Multiply", Kind: ValueNumber, Default: 1.0, Min: 0.0, Max: 2.0},
			{Key: "Add", Kind: ValueNumber, Default: 0.0, Min: -1.0, Max: 1.0},
			{Key: "Shaper", Kind: ValueNumber, Default: 0.0, Min: -1.0, Max: 1.0},
			{Key: "Equalize", Kind: ValueBool, Default: false},
			{Key: "Invert", Kind: ValueBool, Default: false},
		},
		Ports: []PortDefinition{
			{Name: "In", Dir: In, Required: true},
			{Name: "Mask", Dir: In},
			{Name: "Out", Dir: Out},
		},
	},
	{
		Name:       "Combine",
		TypeString: "QuadSpinner.Gaea.Nodes.Combine, Gaea.Nodes",
		Class:      ClassFull,
		Properties: []PropertyDefinition{
			{Key: "Ratio", Kind: ValueNumber, Default: 0.5, Min: 0.0, Max: 1.0},
			{Key: "Mode", Kind: ValueEnum, Default: "Blend", Enum: []string{"Blend", "Add", "Subtract", "Multiply", "Max", "Min"}},
			{Key: "Clamp", Kind: ValueEnum, Default: "Clamp", Enum: []string{"None", "Clamp", "Normalize"}},
		},
		Ports: []PortDefinition{
			{Name: "In", Dir: In, Required: true},
			{Name: "Input2", Dir: In, Required: true},
			{Name: "Mask", Dir: In},
			{Name: "Out", Dir: Out},
		},
		ExtraNumeric: []ExtraField{{Name: "PortCount", Value: 2}},
	},
	{
		Name:       "Blur",
		TypeString: "QuadSpinner.Gaea.Nodes.Blur, Gaea.Nodes",
		Class:      ClassFull,
		Properties: []PropertyDefinition{
			{Key: "Radius", Kind: ValueNumber, Default: 0.1, Min: 0.0, Max: 1.0},
		},
		Ports: []PortDefinition{
			{Name: "In", Dir: In, Required: true},
			{Name: "Mask", Dir: In},
			{Name: "Out", Dir: Out},
		},
	},
	{
		Name:       "Clamp",
		TypeString: "QuadSpinner.Gaea.Nodes.Clamp, Gaea.Nodes",
		Class:      ClassMinimal,
		Properties: []PropertyDefinition{
			{Key: "Min", Kind: ValueNumber, Default: 0.0, Min: 0.0, Max: 1.0},
			{Key: "Max", Kind: ValueNumber, Default: 1.0, Min: 0.0, Max: 1.0},
		},
		Ports: []PortDefinition{
			{Name: "In", Dir: In, Required: true},
			{Name: "Out", Dir: Out},
		},
	},

	// -------------------------------------------------------------------------
	// Color and output.
	// -------------------------------------------------------------------------
	{
		Name:       "SatMap",
		TypeString: "QuadSpinner.Gaea.Nodes.SatMap, Gaea.Nodes",
		Class:      ClassMinimal,
		Properties: []PropertyDefinition{
			{Key: "Library", Kind: ValueEnum, Default: "Rock", Enum: []string{"Rock", "Green", "Blue", "Sand", "Color"}},
			{Key: "LibraryItem", Display: "Library Item", Kind: ValueNumber, Default: 0.0, Min: 0, Max: 500},
			{Key: "Randomize", Kind: ValueBool, Default: false},
		},
		Ports: []PortDefinition{
			{Name: "In", Dir: In, Required: true},
			{Name: "Out", Dir: Out},
		},
	},
	{
		Name:       "Export",
		TypeString: "QuadSpinner.Gaea.Nodes.Export, Gaea.Nodes",
		Class:      ClassMinimal,
		Properties: []PropertyDefinition{
			{Key: "Format", Kind: ValueEnum, Default: "EXR", Enum: []string{"PNG", "TIF", "EXR", "RAW"}},
			{Key: "BitDepth", Display: "Bit Depth", Kind: ValueEnum, Default: "16", Enum: []string{"8", "16", "32"}},
			{Key: "Filename", Kind: ValueString, Default: "output"},
		},
		Ports: []PortDefinition{
			{Name: "In", Dir: In, Required: true},
			{Name: "Out", Dir: Out},
		},
		EmbedsSaveDefinition: true,
	},
}
