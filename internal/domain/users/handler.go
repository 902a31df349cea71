package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"petpatrol/internal/middleware"
	"petpatrol/internal/platform/logger"
	"petpatrol/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

type HandlerOptions struct {
	// LoginLimiter se aplica solo a /users/login (nil = sin límite).
	LoginLimiter func(http.Handler) http.Handler
	Logger       logger.Logger
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	r.Route("/users", func(ur chi.Router) {
		ur.Post("/register", registerHandler(svc, opts.Logger))

		login := ur
		if opts.LoginLimiter != nil {
			login = ur.With(opts.LoginLimiter)
		}
		login.Post("/login", loginHandler(svc, opts.Logger))

		ur.Put("/update", updateHandler(svc, opts.Logger))
		ur.Get("/{userID}", getUserHandler(svc, opts.Logger))
	})
}

type loginRequest struct {
	Email    string `json:"email_address"`
	Password string `json:"password"`
}

type userSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type loginResponse struct {
	Message string      `json:"message"`
	User    userSummary `json:"user"`
	Token   string      `json:"token,omitempty"`
}

type registerResponse struct {
	Message string      `json:"message"`
	User    userSummary `json:"user"`
}

type userResponse struct {
	ID        int64     `json:"user_id"`
	Email     string    `json:"email_address"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone_number"`
	CreatedAt time.Time `json:"created_at"`
}

type messageResponse struct {
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea una cuenta. La contraseña se guarda con bcrypt.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body RegisterInput true "Datos de la cuenta"
// @Success 201 {object} registerResponse
// @Failure 400 {object} messageResponse
// @Failure 409 {object} messageResponse
// @Router /users/register [post]
func registerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in RegisterInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid json"})
			return
		}

		u, err := svc.Register(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Datos inválidos.", Errors: validation.Fields(err)})
			case errors.Is(err, ErrConflict):
				writeJSON(w, http.StatusConflict, messageResponse{Message: "El correo ya está registrado."})
			default:
				logger.FromContext(r.Context(), log).Error("user register failed", map[string]any{"error": err})
				writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error al consultar la base de datos."})
			}
			return
		}

		writeJSON(w, http.StatusCreated, registerResponse{
			Message: "Usuario registrado con éxito.",
			User:    userSummary{ID: u.ID, Email: u.Email},
		})
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Valida email y contraseña y devuelve un JWT. Limitado por IP.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 400 {object} messageResponse
// @Failure 401 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Failure 429 {string} string "too many requests"
// @Router /users/login [post]
func loginHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Email y contraseña son requeridos."})
			return
		}

		res, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Email y contraseña son requeridos."})
			case errors.Is(err, ErrNotFound):
				writeJSON(w, http.StatusNotFound, messageResponse{Message: "Usuario no encontrado."})
			case errors.Is(err, ErrUnauthorized):
				writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Contraseña incorrecta."})
			default:
				logger.FromContext(r.Context(), log).Error("user login failed", map[string]any{"error": err})
				writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error al consultar la base de datos."})
			}
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Message: "Inicio de sesión exitoso.",
			User:    userSummary{ID: res.User.ID, Email: res.User.Email},
			Token:   res.Token,
		})
	}
}

// getUserHandler godoc
// @Summary Perfil de usuario
// @Tags users
// @Produce json
// @Param userID path int true "ID del usuario"
// @Success 200 {object} userResponse
// @Failure 404 {object} messageResponse
// @Router /users/{userID} [get]
func getUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusNotFound, messageResponse{Message: "Usuario no encontrado."})
			return
		}

		u, err := svc.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeJSON(w, http.StatusNotFound, messageResponse{Message: "Usuario no encontrado."})
				return
			}
			logger.FromContext(r.Context(), log).Error("user get failed", map[string]any{"user_id": id, "error": err})
			writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error al consultar la base de datos."})
			return
		}

		writeJSON(w, http.StatusOK, userResponse{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     u.Phone,
			CreatedAt: u.CreatedAt,
		})
	}
}

// updateHandler godoc
// @Summary Actualizar perfil
// @Description Actualiza nombre, apellido, teléfono y/o contraseña de la cuenta propia (email_address debe ser el del usuario autenticado). Campos vacíos no se modifican.
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body UpdateInput true "Campos a actualizar"
// @Success 200 {object} messageResponse
// @Failure 400 {object} messageResponse
// @Failure 401 {object} messageResponse
// @Failure 403 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Router /users/update [put]
func updateHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "No autenticado."})
			return
		}
		callerID, err := strconv.ParseInt(claims.UserID, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusForbidden, messageResponse{Message: "Usuario no permitido."})
			return
		}

		var in UpdateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid json"})
			return
		}

		if err := svc.UpdateProfile(r.Context(), callerID, in); err != nil {
			switch {
			case errors.Is(err, ErrForbidden):
				writeJSON(w, http.StatusForbidden, messageResponse{Message: "Solo puedes modificar tu propio perfil."})
			case errors.Is(err, ErrInvalidInput):
				writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Datos inválidos.", Errors: validation.Fields(err)})
			case errors.Is(err, ErrNotFound):
				writeJSON(w, http.StatusNotFound, messageResponse{Message: "Usuario no encontrado con ese correo electrónico."})
			default:
				logger.FromContext(r.Context(), log).Error("user update failed", map[string]any{"error": err})
				writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error al actualizar la base de datos."})
			}
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{Message: "Perfil actualizado con éxito."})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
