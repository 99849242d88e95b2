package flexbox

// Direction is the layout direction of the root: left-to-right or
// right-to-left. RTL mirrors the main axis of row containers.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

// FlexDirection represents the flex-direction property values.
type FlexDirection int

const (
	FlexDirectionRow FlexDirection = iota
	FlexDirectionRowReverse
	FlexDirectionColumn
	FlexDirectionColumnReverse
)

// IsRow reports whether the main axis is horizontal.
func (d FlexDirection) IsRow() bool {
	return d == FlexDirectionRow || d == FlexDirectionRowReverse
}

// IsReverse reports whether items flow from the main-axis end.
func (d FlexDirection) IsReverse() bool {
	return d == FlexDirectionRowReverse || d == FlexDirectionColumnReverse
}

// FlexWrap represents the flex-wrap property values.
type FlexWrap int

const (
	FlexWrapNowrap FlexWrap = iota
	FlexWrapWrap
	FlexWrapWrapReverse
)

// JustifyContent represents the justify-content property values.
type JustifyContent int

const (
	JustifyFlexStart JustifyContent = iota
	JustifyFlexEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// AlignItems represents the align-items property values.
type AlignItems int

const (
	AlignItemsStretch AlignItems = iota
	AlignItemsFlexStart
	AlignItemsFlexEnd
	AlignItemsCenter
)

// AlignSelf represents the align-self property values. The zero value is
// auto, deferring to the container's align-items.
type AlignSelf int

const (
	AlignSelfAuto AlignSelf = iota
	AlignSelfFlexStart
	AlignSelfFlexEnd
	AlignSelfCenter
	AlignSelfStretch
)

// Edge indexes the per-edge margin and padding arrays.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// EdgeValues holds one Value per box edge, indexed by Edge.
type EdgeValues [4]Value

// Style is the canonical property set of a node. Dimensions are in solver
// units; undefined values defer to content-derived or stretched sizes.
type Style struct {
	FlexDirection  FlexDirection
	Wrap           FlexWrap
	JustifyContent JustifyContent
	AlignItems     AlignItems
	AlignSelf      AlignSelf

	FlexGrow   float64
	FlexShrink float64
	FlexBasis  Value
	Order      int

	Margin  EdgeValues
	Padding EdgeValues

	Width     Value
	Height    Value
	MinWidth  Value
	MinHeight Value
	MaxWidth  Value
	MaxHeight Value
}

// DefaultStyle returns a style carrying the CSS initial values: row
// direction, nowrap, flex-start justification, stretch alignment, shrink 1.
func DefaultStyle() Style {
	return Style{
		FlexShrink: 1,
	}
}

// ParseFlexDirection maps a property keyword to its enum value; unknown
// keywords return the default.
func ParseFlexDirection(s string) FlexDirection {
	switch s {
	case "row-reverse":
		return FlexDirectionRowReverse
	case "column":
		return FlexDirectionColumn
	case "column-reverse":
		return FlexDirectionColumnReverse
	default:
		return FlexDirectionRow
	}
}

// ParseFlexWrap maps a property keyword to its enum value.
func ParseFlexWrap(s string) FlexWrap {
	switch s {
	case "wrap":
		return FlexWrapWrap
	case "wrap-reverse":
		return FlexWrapWrapReverse
	default:
		return FlexWrapNowrap
	}
}

// ParseJustifyContent maps a property keyword to its enum value.
func ParseJustifyContent(s string) JustifyContent {
	switch s {
	case "flex-end":
		return JustifyFlexEnd
	case "center":
		return JustifyCenter
	case "space-between":
		return JustifySpaceBetween
	case "space-around":
		return JustifySpaceAround
	case "space-evenly":
		return JustifySpaceEvenly
	default:
		return JustifyFlexStart
	}
}

// ParseAlignItems maps a property keyword to its enum value.
func ParseAlignItems(s string) AlignItems {
	switch s {
	case "flex-start":
		return AlignItemsFlexStart
	case "flex-end":
		return AlignItemsFlexEnd
	case "center":
		return AlignItemsCenter
	default:
		return AlignItemsStretch
	}
}

// ParseAlignSelf maps a property keyword to its enum value.
func ParseAlignSelf(s string) AlignSelf {
	switch s {
	case "flex-start":
		return AlignSelfFlexStart
	case "flex-end":
		return AlignSelfFlexEnd
	case "center":
		return AlignSelfCenter
	case "stretch":
		return AlignSelfStretch
	default:
		return AlignSelfAuto
	}
}

// ParseDirection maps "ltr"/"rtl" to a Direction.
func ParseDirection(s string) Direction {
	if s == "rtl" {
		return DirectionRTL
	}
	return DirectionLTR
}
