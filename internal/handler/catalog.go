package handler

import (
	"github.com/iliyamo/train-ticket-reservation/internal/repository"
)

// CatalogHandler bundles the repositories behind the catalog endpoints:
// carriage types, trains, stations, routes and crews. Reads are open to
// any authenticated user; writes are restricted to STAFF by middleware.
type CatalogHandler struct {
	CarriageTypes *repository.CarriageTypeRepo
	Trains        *repository.TrainRepo
	Stations      *repository.StationRepo
	Routes        *repository.RouteRepo
	Crews         *repository.CrewRepo
}

// NewCatalogHandler constructs a CatalogHandler and panics if any
// dependency is nil.
func NewCatalogHandler(ct *repository.CarriageTypeRepo, tr *repository.TrainRepo, st *repository.StationRepo, rt *repository.RouteRepo, cr *repository.CrewRepo) *CatalogHandler {
	if ct == nil || tr == nil || st == nil || rt == nil || cr == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{
		CarriageTypes: ct,
		Trains:        tr,
		Stations:      st,
		Routes:        rt,
		Crews:         cr,
	}
}
