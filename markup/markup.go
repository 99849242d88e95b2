// Package markup loads declarative scene descriptions. A document contains
// one <flex> root with nested <box> elements; attributes carry the same
// property names and shorthand aliases the engine's normalizer accepts, in
// kebab-case (flex-direction, margin-top, mt, w, ...).
package markup

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/chrisuehlinger/flexscene/engine"
	"github.com/chrisuehlinger/flexscene/flexbox"
	"github.com/chrisuehlinger/flexscene/geom"
)

// Element is one parsed node of the scene description.
type Element struct {
	Tag          string
	Name         string
	Props        engine.PropertySet
	CenterAnchor bool
	Children     []*Element

	// Container-level settings, meaningful on the <flex> root only.
	Plane       geom.Plane
	Direction   flexbox.Direction
	ScaleFactor float64
	Size        geom.Vec3
	Centered    bool
}

// Parse reads a document and returns the <flex> root element. The markup
// rides on the HTML parser, so documents tolerate missing closing tags the
// same way HTML does; unknown tags are skipped.
func Parse(r io.Reader) (*Element, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	root := findElement(doc, "flex")
	if root == nil {
		return nil, fmt.Errorf("parse markup: no <flex> root element")
	}

	return buildElement(root)
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func buildElement(n *html.Node) (*Element, error) {
	el := &Element{
		Tag:         n.Data,
		ScaleFactor: engine.DefaultScaleFactor,
	}

	props := make(map[string]any)
	for _, attr := range n.Attr {
		switch attr.Key {
		case "name", "id":
			el.Name = attr.Val
		case "plane":
			el.Plane = geom.ParsePlane(attr.Val)
		case "direction":
			el.Direction = flexbox.ParseDirection(attr.Val)
		case "scale":
			f, err := strconv.ParseFloat(attr.Val, 64)
			if err != nil {
				return nil, fmt.Errorf("<%s> scale %q: %w", n.Data, attr.Val, err)
			}
			el.ScaleFactor = f
		case "size":
			size, err := parseSize(attr.Val)
			if err != nil {
				return nil, fmt.Errorf("<%s> size %q: %w", n.Data, attr.Val, err)
			}
			el.Size = size
		case "centered":
			el.Centered = attr.Val != "false"
		case "center-anchor":
			el.CenterAnchor = attr.Val != "false"
		default:
			props[kebabToCamel(attr.Key)] = attr.Val
		}
	}

	ps, err := engine.Normalize(props)
	if err != nil {
		return nil, fmt.Errorf("<%s>: %w", n.Data, err)
	}
	el.Props = ps

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data != "box" && c.Data != "flex" {
			continue
		}
		child, err := buildElement(c)
		if err != nil {
			return nil, err
		}
		el.Children = append(el.Children, child)
	}

	return el, nil
}

// parseSize reads a whitespace-separated vector of up to three extents;
// missing components stay zero.
func parseSize(s string) (geom.Vec3, error) {
	var v geom.Vec3
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 3 {
		return v, fmt.Errorf("want 1-3 components, got %d", len(fields))
	}
	out := [3]float64{}
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return v, err
		}
		out[i] = n
	}
	return geom.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

// kebabToCamel converts attribute spelling to the normalizer's property
// keys: "flex-direction" becomes "flexDirection". The HTML tokenizer
// lowercases attribute names, so this is the only spelling markup sees.
func kebabToCamel(s string) string {
	parts := strings.Split(s, "-")
	if len(parts) == 1 {
		return s
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
