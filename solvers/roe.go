package solvers

// Roe is the approximate Riemann solver that decomposes the jump in the
// conserved quantities. Bathymetry is ignored.
type Roe struct{}

func (Roe) NetUpdates(hL, hR, huL, huR, _, _ float64) (netL, netR [2]float64) {
	lambda1, lambda2, _ := waveSpeeds(hL, hR, huL, huR)
	alpha1, alpha2 := decompose(lambda1, lambda2, hR-hL, huR-huL)
	var (
		z1 = [2]float64{lambda1 * alpha1, lambda1 * alpha1 * lambda1}
		z2 = [2]float64{lambda2 * alpha2, lambda2 * alpha2 * lambda2}
	)
	distribute(lambda1, z1, &netL, &netR)
	distribute(lambda2, z2, &netL, &netR)
	return
}
