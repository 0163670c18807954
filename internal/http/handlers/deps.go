package handlers

import (
	"tablefinder/internal/config"
	"tablefinder/internal/repos"
	"tablefinder/internal/services"
)

type Deps struct {
	AvailabilityHandler *AvailabilityHandler
	HealthHandler       *HealthHandler
}

func NewDeps(store repos.Backend, cfg config.Config) *Deps {
	availSvc := services.NewAvailabilityService(store, cfg.SlotMinutes)

	return &Deps{
		AvailabilityHandler: &AvailabilityHandler{Avail: availSvc},
		HealthHandler:       &HealthHandler{Store: store},
	}
}
