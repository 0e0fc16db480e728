package mesh

// Natural-coordinate shape functions and derivatives for the cell types
// this system needs. Node ordering and formulas follow the teacher's
// shp package convention (natural coordinates in [-1,1] for quads/hexes,
// area/volume coordinates for simplices).

func hex8Func(S []float64, dSdR [][]float64, r []float64) {
	r0, r1, r2 := r[0], r[1], r[2]
	// corner signs, standard VTK hex8 ordering
	sign := [8][3]float64{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	for m := 0; m < 8; m++ {
		sr, ss, st := sign[m][0], sign[m][1], sign[m][2]
		S[m] = 0.125 * (1 + sr*r0) * (1 + ss*r1) * (1 + st*r2)
		dSdR[m][0] = 0.125 * sr * (1 + ss*r1) * (1 + st*r2)
		dSdR[m][1] = 0.125 * ss * (1 + sr*r0) * (1 + st*r2)
		dSdR[m][2] = 0.125 * st * (1 + sr*r0) * (1 + ss*r1)
	}
}

func tet4Func(S []float64, dSdR [][]float64, r []float64) {
	r0, r1, r2 := r[0], r[1], r[2]
	S[0] = 1 - r0 - r1 - r2
	S[1] = r0
	S[2] = r1
	S[3] = r2
	dSdR[0][0], dSdR[0][1], dSdR[0][2] = -1, -1, -1
	dSdR[1][0], dSdR[1][1], dSdR[1][2] = 1, 0, 0
	dSdR[2][0], dSdR[2][1], dSdR[2][2] = 0, 1, 0
	dSdR[3][0], dSdR[3][1], dSdR[3][2] = 0, 0, 1
}

func qua4Func(S []float64, dSdR [][]float64, r []float64) {
	r0, r1 := r[0], r[1]
	sign := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for m := 0; m < 4; m++ {
		sr, ss := sign[m][0], sign[m][1]
		S[m] = 0.25 * (1 + sr*r0) * (1 + ss*r1)
		dSdR[m][0] = 0.25 * sr * (1 + ss*r1)
		dSdR[m][1] = 0.25 * ss * (1 + sr*r0)
	}
}

func tri3Func(S []float64, dSdR [][]float64, r []float64) {
	r0, r1 := r[0], r[1]
	S[0] = 1 - r0 - r1
	S[1] = r0
	S[2] = r1
	dSdR[0][0], dSdR[0][1] = -1, -1
	dSdR[1][0], dSdR[1][1] = 1, 0
	dSdR[2][0], dSdR[2][1] = 0, 1
}
