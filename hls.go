package uniquify

// RGB <-> HLS conversion on the OpenCV 8-bit scale: H in [0,179] (degrees
// halved), L and S in [0,255]. Channel shifts clip to those ranges rather
// than wrapping — hue is circular, but clipping is the defined edge-case
// policy here.

// rgbToHLS converts 8-bit RGB to OpenCV-scaled HLS.
func rgbToHLS(r8, g8, b8 uint8) (h, l, s float64) {
	r := float64(r8) / 255
	g := float64(g8) / 255
	b := float64(b8) / 255

	max := r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}
	min := r
	if g < min {
		min = g
	}
	if b < min {
		min = b
	}

	l = (max + min) / 2
	d := max - min

	if d != 0 {
		if l < 0.5 {
			s = d / (max + min)
		} else {
			s = d / (2 - max - min)
		}

		var deg float64
		switch max {
		case r:
			deg = 60 * (g - b) / d
		case g:
			deg = 120 + 60*(b-r)/d
		default:
			deg = 240 + 60*(r-g)/d
		}
		if deg < 0 {
			deg += 360
		}
		h = deg / 2
	}

	return h, l * 255, s * 255
}

// hlsToRGB converts OpenCV-scaled HLS back to 8-bit RGB.
func hlsToRGB(h, l, s float64) (r8, g8, b8 uint8) {
	hDeg := h * 2
	lf := l / 255
	sf := s / 255

	if sf == 0 {
		v := clampByte(lf * 255)
		return v, v, v
	}

	var q float64
	if lf < 0.5 {
		q = lf * (1 + sf)
	} else {
		q = lf + sf - lf*sf
	}
	p := 2*lf - q

	hk := hDeg / 360
	r := hueToRGB(p, q, hk+1.0/3)
	g := hueToRGB(p, q, hk)
	b := hueToRGB(p, q, hk-1.0/3)

	return clampByte(r * 255), clampByte(g * 255), clampByte(b * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// shiftHLS applies additive channel shifts with clipping.
func shiftHLS(h, l, s, dh, dl, ds float64) (float64, float64, float64) {
	return clampRange(h+dh, 0, 179), clampRange(l+dl, 0, 255), clampRange(s+ds, 0, 255)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
