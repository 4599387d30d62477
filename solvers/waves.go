package solvers

import "math"

// waveSpeeds returns the Roe eigenvalues for a left and right state along with
// the Roe averaged height
func waveSpeeds(hL, hR, huL, huR float64) (lambda1, lambda2, hRoe float64) {
	var (
		sqrtHL = math.Sqrt(hL)
		sqrtHR = math.Sqrt(hR)
		uL     = huL / hL
		uR     = huR / hR
	)
	hRoe = 0.5 * (hL + hR)
	uRoe := (uL*sqrtHL + uR*sqrtHR) / (sqrtHL + sqrtHR)
	c := math.Sqrt(Gravity * hRoe)
	lambda1, lambda2 = uRoe-c, uRoe+c
	return
}

// decompose splits the jump [d0, d1] into the two eigenvectors [1, lambda1]
// and [1, lambda2] and returns the wave strengths
func decompose(lambda1, lambda2, d0, d1 float64) (alpha1, alpha2 float64) {
	inv := 1. / (lambda2 - lambda1)
	alpha1 = inv * (lambda2*d0 - d1)
	alpha2 = inv * (d1 - lambda1*d0)
	return
}

// distribute assigns a wave to the side it travels toward. A stationary wave
// is counted as right-going so that netL+netR always equals the jump. A NaN
// speed has no direction and poisons both sides.
func distribute(speed float64, wave [2]float64, netL, netR *[2]float64) {
	if math.IsNaN(speed) {
		netL[0], netL[1] = math.NaN(), math.NaN()
		netR[0], netR[1] = math.NaN(), math.NaN()
		return
	}
	if speed < 0 {
		netL[0] += wave[0]
		netL[1] += wave[1]
		return
	}
	netR[0] += wave[0]
	netR[1] += wave[1]
}
