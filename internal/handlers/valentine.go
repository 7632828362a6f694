package handlers

import (
	"net/http"
	"time"

	"github.com/lunaria-app/sanctuary-backend/internal/config"
	"github.com/lunaria-app/sanctuary-backend/internal/services"
)

// GetValentineReason returns one "why I love you" reason. Unauthenticated:
// the microsite has no login.
func GetValentineReason(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"reason":  services.ReasonPicker.Next(),
	})
}

// GetValentineCounter returns whole days together since the configured
// start date.
func GetValentineCounter(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := int(time.Since(cfg.LoveStartDate).Hours() / 24)
		if days < 0 {
			days = 0
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":    true,
			"days":       days,
			"start_date": cfg.LoveStartDate.Format("2006-01-02"),
		})
	}
}
