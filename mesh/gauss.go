package mesh

import "github.com/cpmech/gosl/chk"

// GaussPoint is a single integration point: [0:Gndim] natural
// coordinates, [3] the Gauss weight. Mirrors the teacher's
// shp.Ipoint convention where ip[3] is always the weight regardless of
// geometric dimension (fem/e_u.go: "coef := o.Cell.Shp.J * ip[3]").
type GaussPoint [4]float64

var sqrt1_3 = 0.5773502691896257645091488

// GaussPoints returns the default integration rule for a cell type:
// 2x2x2 for hex8, 2x2 for qua4, one-point rules for the simplices
// (exact for the affine, constant-gradient simplex maps this system
// uses).
func GaussPoints(cellType string) ([]GaussPoint, error) {
	switch cellType {
	case "hex8":
		pts := make([]GaussPoint, 0, 8)
		for _, r0 := range []float64{-sqrt1_3, sqrt1_3} {
			for _, r1 := range []float64{-sqrt1_3, sqrt1_3} {
				for _, r2 := range []float64{-sqrt1_3, sqrt1_3} {
					pts = append(pts, GaussPoint{r0, r1, r2, 1.0})
				}
			}
		}
		return pts, nil
	case "qua4":
		pts := make([]GaussPoint, 0, 4)
		for _, r0 := range []float64{-sqrt1_3, sqrt1_3} {
			for _, r1 := range []float64{-sqrt1_3, sqrt1_3} {
				pts = append(pts, GaussPoint{r0, r1, 0, 1.0})
			}
		}
		return pts, nil
	case "tet4":
		return []GaussPoint{{0.25, 0.25, 0.25, 1.0 / 6.0}}, nil
	case "tri3":
		return []GaussPoint{{1.0 / 3.0, 1.0 / 3.0, 0, 0.5}}, nil
	}
	return nil, chk.Err("mesh: no default integration rule for cell type %q", cellType)
}
