package v1alpha1

import (
	"net/http"

	api "github.com/AakashShahi/workday/api/v1alpha1"
)

// (GET /health)
func Health(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, api.Health{Status: "ok"})
}
