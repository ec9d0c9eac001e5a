package handlers

import (
	"medication-route-service/internal/api/dto"
	"medication-route-service/internal/ports"
	"net/http"
)

// DistributorHandler exposes the distributor directory read-only.
type DistributorHandler struct {
	Directory ports.DistributorDirectory
}

func (h *DistributorHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	stops, err := h.Directory.ListDistributors(r.Context())
	if err != nil {
		writeServiceError(w, r, "list distributors", err)
		return
	}

	res := dto.ListDistributorsResponse{
		Distributors: make([]dto.DistributorResponse, 0, len(stops)),
	}
	for _, s := range stops {
		res.Distributors = append(res.Distributors, dto.DistributorResponse{
			Name: s.Label,
			Lat:  s.Location.Lat,
			Lon:  s.Location.Lon,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
