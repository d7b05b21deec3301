package web

import "strconv"

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
