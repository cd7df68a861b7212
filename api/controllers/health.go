package controllers

import (
	"net/http"

	"github.com/aresapparel/apparel-backend/api/responses"
	"github.com/aresapparel/apparel-backend/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ares-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"}, "")
	}
}

func HealthReady(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ares-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "ready"}, "")
	}
}
