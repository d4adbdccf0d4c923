package spatial

// Base32 alphabet for geohash
const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// EncodeGeohash encodes a coordinate as a geohash of the given precision (1-12).
func EncodeGeohash(lat, lng float64, precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > 12 {
		precision = 12
	}

	latRange := [2]float64{-90.0, 90.0}
	lngRange := [2]float64{-180.0, 180.0}

	geohash := make([]byte, 0, precision)
	bits, bit, ch := 0, 0, 0

	for len(geohash) < precision {
		if bit%2 == 0 {
			mid := (lngRange[0] + lngRange[1]) / 2
			if lng > mid {
				ch |= 1 << (4 - bits)
				lngRange[0] = mid
			} else {
				lngRange[1] = mid
			}
		} else {
			mid := (latRange[0] + latRange[1]) / 2
			if lat > mid {
				ch |= 1 << (4 - bits)
				latRange[0] = mid
			} else {
				latRange[1] = mid
			}
		}

		bits++
		if bits == 5 {
			geohash = append(geohash, base32[ch])
			bits, ch = 0, 0
		}
		bit++
	}

	return string(geohash)
}
