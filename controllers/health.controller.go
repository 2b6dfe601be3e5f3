package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/p0tatoe/volsurface/models"
)

func GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.HealthResponse{Status: "ok"})
}
