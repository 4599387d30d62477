package solvers

// FWave decomposes the jump in the flux function instead of the jump in the
// state. The momentum flux jump includes the bathymetry source term.
type FWave struct{}

func flux(h, hu float64) (f [2]float64) {
	f[0] = hu
	f[1] = hu*hu/h + 0.5*Gravity*h*h
	return
}

func (FWave) NetUpdates(hL, hR, huL, huR, bL, bR float64) (netL, netR [2]float64) {
	lambda1, lambda2, hRoe := waveSpeeds(hL, hR, huL, huR)
	var (
		fL = flux(hL, huL)
		fR = flux(hR, huR)
		df = [2]float64{fR[0] - fL[0], fR[1] - fL[1]}
	)
	df[1] += Gravity * (bR - bL) * hRoe
	alpha1, alpha2 := decompose(lambda1, lambda2, df[0], df[1])
	var (
		z1 = [2]float64{alpha1, alpha1 * lambda1}
		z2 = [2]float64{alpha2, alpha2 * lambda2}
	)
	distribute(lambda1, z1, &netL, &netR)
	distribute(lambda2, z2, &netL, &netR)
	return
}
