package model

type Staff struct {
	Bars []Bar `json:"bars"`
}

// Part is one instrument. Parts sharing Group are analyzed together under
// the group scope.
type Part struct {
	Name   string  `json:"name"`
	Group  string  `json:"group,omitempty"`
	Staves []Staff `json:"staves"`
}

type Score struct {
	Title string `json:"title,omitempty"`
	Parts []Part `json:"parts"`
}

// NumBars is the length of the longest staff.
func (s Score) NumBars() int {
	var n int
	for _, p := range s.Parts {
		for _, st := range p.Staves {
			if len(st.Bars) > n {
				n = len(st.Bars)
			}
		}
	}
	return n
}
