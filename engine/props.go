// Package engine is the flex reflow core: it mirrors registered boxes into
// a solver node tree, infers sizes from rendered content, coalesces reflow
// requests into one recomputation per tick, and maps the solver's 2D output
// onto 3D positions under a configurable plane, scale factor, and centering
// mode.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chrisuehlinger/flexscene/flexbox"
)

// PropertySet is the canonical flex property set of one box, in caller
// units (pre scale factor). Zero-valued enums are the CSS defaults. Grow and
// shrink are pointers because the solver distinguishes "unset" from "zero";
// dimension fields use flexbox.Value, whose zero value is undefined.
type PropertySet struct {
	FlexDirection  flexbox.FlexDirection
	Wrap           flexbox.FlexWrap
	JustifyContent flexbox.JustifyContent
	AlignItems     flexbox.AlignItems
	AlignSelf      flexbox.AlignSelf

	FlexGrow   *float64
	FlexShrink *float64
	FlexBasis  flexbox.Value
	Order      int

	Margin  flexbox.EdgeValues
	Padding flexbox.EdgeValues

	Width     flexbox.Value
	Height    flexbox.Value
	MinWidth  flexbox.Value
	MinHeight flexbox.Value
	MaxWidth  flexbox.Value
	MaxHeight flexbox.Value
}

// HasExplicitSize reports whether both dimensions are constrained, in which
// case size inference skips measurement entirely.
func (ps *PropertySet) HasExplicitSize() bool {
	return ps.Width.IsDefined() && ps.Height.IsDefined()
}

// applyTo writes the property set onto a solver node's style, multiplying
// absolute values by the scale factor. Percent and auto values pass through
// untouched; unset entries leave the solver defaults in place.
func (ps *PropertySet) applyTo(node *flexbox.Node, scale float64) {
	style := flexbox.DefaultStyle()

	style.FlexDirection = ps.FlexDirection
	style.Wrap = ps.Wrap
	style.JustifyContent = ps.JustifyContent
	style.AlignItems = ps.AlignItems
	style.AlignSelf = ps.AlignSelf
	style.Order = ps.Order

	if ps.FlexGrow != nil {
		style.FlexGrow = *ps.FlexGrow
	}
	if ps.FlexShrink != nil {
		style.FlexShrink = *ps.FlexShrink
	}
	style.FlexBasis = scaleValue(ps.FlexBasis, scale)

	for i := range ps.Margin {
		style.Margin[i] = scaleValue(ps.Margin[i], scale)
	}
	for i := range ps.Padding {
		style.Padding[i] = scaleValue(ps.Padding[i], scale)
	}

	style.Width = scaleValue(ps.Width, scale)
	style.Height = scaleValue(ps.Height, scale)
	style.MinWidth = scaleValue(ps.MinWidth, scale)
	style.MinHeight = scaleValue(ps.MinHeight, scale)
	style.MaxWidth = scaleValue(ps.MaxWidth, scale)
	style.MaxHeight = scaleValue(ps.MaxHeight, scale)

	node.Style = style
}

func scaleValue(v flexbox.Value, scale float64) flexbox.Value {
	if v.Unit == flexbox.UnitPoint {
		v.Amount *= scale
	}
	return v
}

// Normalize resolves a property bag with shorthand aliases into a canonical
// PropertySet. This is the one place aliasing is understood; the core only
// ever sees canonical properties. Unknown keys are an error so typos fail
// loudly at the boundary.
func Normalize(props map[string]any) (PropertySet, error) {
	ps := PropertySet{}

	for key, raw := range props {
		var err error
		switch key {
		case "flexDirection", "flexDir", "dir":
			s, serr := toKeyword(raw)
			ps.FlexDirection, err = flexbox.ParseFlexDirection(s), serr
		case "wrap", "flexWrap":
			s, serr := toKeyword(raw)
			ps.Wrap, err = flexbox.ParseFlexWrap(s), serr
		case "justifyContent", "justify":
			s, serr := toKeyword(raw)
			ps.JustifyContent, err = flexbox.ParseJustifyContent(s), serr
		case "alignItems", "align":
			s, serr := toKeyword(raw)
			ps.AlignItems, err = flexbox.ParseAlignItems(s), serr
		case "alignSelf":
			s, serr := toKeyword(raw)
			ps.AlignSelf, err = flexbox.ParseAlignSelf(s), serr

		case "grow", "flexGrow":
			var f float64
			if f, err = toFloat(raw); err == nil {
				ps.FlexGrow = &f
			}
		case "shrink", "flexShrink":
			var f float64
			if f, err = toFloat(raw); err == nil {
				ps.FlexShrink = &f
			}
		case "basis", "flexBasis":
			ps.FlexBasis, err = toValue(raw)
		case "order":
			var f float64
			if f, err = toFloat(raw); err == nil {
				ps.Order = int(f)
			}

		case "width", "w":
			ps.Width, err = toValue(raw)
		case "height", "h":
			ps.Height, err = toValue(raw)
		case "minWidth":
			ps.MinWidth, err = toValue(raw)
		case "minHeight":
			ps.MinHeight, err = toValue(raw)
		case "maxWidth":
			ps.MaxWidth, err = toValue(raw)
		case "maxHeight":
			ps.MaxHeight, err = toValue(raw)

		case "margin", "m":
			err = setAllEdges(&ps.Margin, raw)
		case "marginTop", "mt":
			ps.Margin[flexbox.EdgeTop], err = toValue(raw)
		case "marginRight", "mr":
			ps.Margin[flexbox.EdgeRight], err = toValue(raw)
		case "marginBottom", "mb":
			ps.Margin[flexbox.EdgeBottom], err = toValue(raw)
		case "marginLeft", "ml":
			ps.Margin[flexbox.EdgeLeft], err = toValue(raw)

		case "padding", "p":
			err = setAllEdges(&ps.Padding, raw)
		case "paddingTop", "pt":
			ps.Padding[flexbox.EdgeTop], err = toValue(raw)
		case "paddingRight", "pr":
			ps.Padding[flexbox.EdgeRight], err = toValue(raw)
		case "paddingBottom", "pb":
			ps.Padding[flexbox.EdgeBottom], err = toValue(raw)
		case "paddingLeft", "pl":
			ps.Padding[flexbox.EdgeLeft], err = toValue(raw)

		default:
			err = fmt.Errorf("unknown property %q", key)
		}
		if err != nil {
			return PropertySet{}, fmt.Errorf("property %q: %w", key, err)
		}
	}

	return ps, nil
}

func setAllEdges(edges *flexbox.EdgeValues, raw any) error {
	v, err := toValue(raw)
	if err != nil {
		return err
	}
	for i := range edges {
		edges[i] = v
	}
	return nil
}

// toValue converts a raw property value into a solver Value: numbers become
// points, "N%" becomes a percentage, "auto" becomes auto.
func toValue(raw any) (flexbox.Value, error) {
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "auto" {
			return flexbox.Auto, nil
		}
		if strings.HasSuffix(s, "%") {
			f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
			if err != nil {
				return flexbox.Undefined, fmt.Errorf("bad percentage %q", v)
			}
			return flexbox.Percent(f), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return flexbox.Undefined, fmt.Errorf("bad dimension %q", v)
		}
		return flexbox.Points(f), nil
	default:
		f, err := toFloat(raw)
		if err != nil {
			return flexbox.Undefined, err
		}
		return flexbox.Points(f), nil
	}
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("bad number %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", raw)
	}
}

func toKeyword(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("expected keyword string, got %T", raw)
	}
	return strings.TrimSpace(s), nil
}
