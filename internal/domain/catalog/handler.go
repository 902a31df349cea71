package catalog

import (
	"encoding/json"
	"net/http"

	"petpatrol/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Rutas públicas (nombres heredados del frontend existente).
var routes = map[string]Kind{
	"/distritos":    KindDistrict,
	"/edadMascotas": KindAge,
	"/sexos":        KindSex,
	"/sizes":        KindSize,
	"/tipoMascotas": KindPetType,
	"/tipoPost":     KindPostType,
}

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	for path, kind := range routes {
		r.Get(path, listHandler(svc, kind, log))
	}
}

type entryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// listHandler godoc
// @Summary Listar tabla de referencia
// @Description Devuelve las filas id/nombre de una tabla de referencia (distritos, edades, sexos, tamaños, tipos de mascota, tipos de post).
// @Tags catalog
// @Produce json
// @Success 200 {array} entryResponse
// @Failure 500 {object} errorResponse
// @Router /distritos [get]
// @Router /edadMascotas [get]
// @Router /sexos [get]
// @Router /sizes [get]
// @Router /tipoMascotas [get]
// @Router /tipoPost [get]
func listHandler(svc *Service, kind Kind, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.List(r.Context(), kind)
		if err != nil {
			logger.FromContext(r.Context(), log).Error("catalog list failed", map[string]any{
				"kind":  string(kind),
				"error": err,
			})
			writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Error al consultar la base de datos."})
			return
		}

		out := make([]entryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, entryResponse{ID: e.ID, Name: e.Name})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
