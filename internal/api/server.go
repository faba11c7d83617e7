package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/limbo/moodlog/internal/service"
	"github.com/limbo/moodlog/pkg/cleanup"
	"github.com/limbo/moodlog/web"
)

type Server struct {
	mx           *chi.Mux
	moodsService service.MoodsServiceI
	refresher    *Refresher
}

type ServicesList struct {
	MoodsService service.MoodsServiceI
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:           chi.NewMux(),
		moodsService: servicesOptions.MoodsService,
		refresher:    NewRefresher(servicesOptions.MoodsService),
	}
	cleanup.Register(&cleanup.Job{
		Name: "stopping refresher",
		F: func() error {
			s.refresher.Stop()
			return nil
		},
	})
	return s
}

func (s *Server) Routes() http.Handler {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Get("/health", s.Health)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/moods", s.LogMood)
		r.Get("/moods/overview", s.MoodOverview)
		r.Get("/refresh", s.GetRefreshSettings)
		r.Put("/refresh", s.UpdateRefreshSettings)
	})
	s.mx.Handle("/*", http.FileServerFS(web.Static()))
	return s.mx
}

func (s *Server) Run(address string) error {
	return http.ListenAndServe(address, s.Routes())
}
