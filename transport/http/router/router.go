package router

import (
	"solireserve/internal/handlers/convention"
	"solireserve/internal/handlers/hotel"
	"solireserve/internal/handlers/operator"
	"solireserve/internal/handlers/process"
	"solireserve/internal/handlers/report"
	"solireserve/internal/handlers/reservation"
	"solireserve/internal/handlers/room"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Hotel       hotel.Handler
	Room        room.Handler
	Operator    operator.Handler
	Convention  convention.Handler
	Reservation reservation.Handler
	Process     process.Handler
	Report      report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Hotel.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Operator.Router(routerGroup)
		r.DomainHandlers.Convention.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Process.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
