package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "недействительный токен авторизации"
)

var (
	errMissingSubject = errors.New("token has no numeric sub claim")
	errMissingRole    = errors.New("token has no role claim")
)

type requesterKey struct{}

// WithRequester кладёт аутентифицированного пользователя в контекст
func WithRequester(ctx context.Context, r domain.Requester) context.Context {
	return context.WithValue(ctx, requesterKey{}, r)
}

// GetRequester достаёт пользователя, положенного Auth
func GetRequester(ctx context.Context) (domain.Requester, bool) {
	r, ok := ctx.Value(requesterKey{}).(domain.Requester)
	return r, ok
}

// Auth проверяет Bearer токен HS256, выпущенный внешним сервисом авторизации.
// Из claims берутся sub (числовой ID аккаунта) и role
func Auth(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			requester, err := requesterFromClaims(claims)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRequester(r.Context(), requester)))
		})
	}
}

func requesterFromClaims(claims jwt.MapClaims) (domain.Requester, error) {
	var id int64
	switch sub := claims["sub"].(type) {
	case float64:
		id = int64(sub)
	case json.Number:
		v, err := sub.Int64()
		if err != nil {
			return domain.Requester{}, errMissingSubject
		}
		id = v
	case string:
		v, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return domain.Requester{}, errMissingSubject
		}
		id = v
	default:
		return domain.Requester{}, errMissingSubject
	}
	if id <= 0 {
		return domain.Requester{}, errMissingSubject
	}

	roleClaim, ok := claims["role"].(string)
	if !ok {
		return domain.Requester{}, errMissingRole
	}
	role, err := domain.ParseRole(roleClaim)
	if err != nil {
		return domain.Requester{}, fmt.Errorf("%w: %v", errMissingRole, err)
	}

	return domain.Requester{ID: id, Role: role}, nil
}
