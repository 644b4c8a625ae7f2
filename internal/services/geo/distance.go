// Package geo - геолокация: расстояния по формуле Хаверсина и геокодинг.
package geo

import "math"

// earthRadiusKm - радиус Земли в километрах
const earthRadiusKm = 6371

// Distance возвращает расстояние между двумя точками в километрах
// по формуле Хаверсина. Чистая функция: без побочных эффектов,
// симметрична, для совпадающих точек возвращает 0.
// Валидность координат - забота вызывающего.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
