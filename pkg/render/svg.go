package render

import (
	"bytes"
	"fmt"

	"github.com/skylinelab/watertower/pkg/skyline/reduce"
)

// SVGOptions configures [SVG] output.
type SVGOptions struct {
	Unit          float64 // pixels per height/width unit (default 20)
	BuildingColor string  // fill for building rects (default "#4a4a4a")
	WaterColor    string  // fill for water rects (default "#7db4e6")
}

// withDefaults fills unset option fields.
func (o SVGOptions) withDefaults() SVGOptions {
	if o.Unit <= 0 {
		o.Unit = 20
	}
	if o.BuildingColor == "" {
		o.BuildingColor = "#4a4a4a"
	}
	if o.WaterColor == "" {
		o.WaterColor = "#7db4e6"
	}
	return o
}

// SVG renders a height profile as an SVG document: one rect per building
// column and one rect per flooded column span. The y axis is flipped so
// height grows upward, as on a real skyline.
func SVG(heights []int, opts SVGOptions) ([]byte, error) {
	opts = opts.withDefaults()

	water, err := reduce.WaterColumns(heights)
	if err != nil {
		return nil, err
	}

	top := 0
	for i, h := range heights {
		top = max(top, h+water[i])
	}
	width := float64(len(heights)) * opts.Unit
	height := float64(top) * opts.Unit

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	for i, h := range heights {
		if h > 0 {
			fmt.Fprintf(&buf, `  <rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="%s"/>`+"\n",
				float64(i)*opts.Unit, height-float64(h)*opts.Unit, opts.Unit, float64(h)*opts.Unit, opts.BuildingColor)
		}
		if water[i] > 0 {
			fmt.Fprintf(&buf, `  <rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="%s"/>`+"\n",
				float64(i)*opts.Unit, height-float64(h+water[i])*opts.Unit, opts.Unit, float64(water[i])*opts.Unit, opts.WaterColor)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}
