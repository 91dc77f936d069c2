package axis

// rotatedCapFactor bounds rotated label length relative to the per-label space.
const rotatedCapFactor = 2.5

// Tick is the render instruction for one visible label.
type Tick struct {
	Index   int     `json:"index"`
	Pos     float64 `json:"pos"`
	Text    string  `json:"text"`
	Rotated bool    `json:"rotated"`
}

// BuildTicks schedules req and returns one Tick per visible label.
//
// positions gives each label's axis position; when its length does not
// match the labels, labels are centered in equal bands of AvailableWidth.
// Horizontal labels are truncated to the space each visible label gets;
// rotated labels may use rotatedCapFactor times that space.
func BuildTicks(m Measurer, req Request, positions []float64) (Decision, []Tick) {
	d := Schedule(m, req)
	n := len(req.Labels)
	if n == 0 {
		return d, nil
	}
	if len(positions) != n {
		positions = BandCenters(n, req.AvailableWidth)
	}

	visible := Visible(n, d.SkipInterval)
	space := max(0, req.AvailableWidth/float64(len(visible))-labelPadding)
	if d.Rotate {
		space *= rotatedCapFactor
	}

	ticks := make([]Tick, 0, len(visible))
	for _, i := range visible {
		text := req.Labels[i]
		if req.FontSize > 0 {
			text = m.TruncateFamily(text, space, req.FontSize, req.Family)
		}
		ticks = append(ticks, Tick{
			Index:   i,
			Pos:     positions[i],
			Text:    text,
			Rotated: d.Rotate,
		})
	}
	return d, ticks
}

// BandCenters returns the centers of n equal bands spanning width.
func BandCenters(n int, width float64) []float64 {
	if n <= 0 {
		return nil
	}
	band := width / float64(n)
	centers := make([]float64, n)
	for i := range centers {
		centers[i] = band * (float64(i) + 0.5)
	}
	return centers
}
