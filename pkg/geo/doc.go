// Package geo provides great-circle distance math for position fixes.
//
// Distances are computed with the haversine formula on a spherical Earth
// model (mean radius 6371 km). The error versus an ellipsoidal model is
// well under 0.5%, which is far below GPS fix accuracy and therefore
// irrelevant for workout distance accounting.
package geo
