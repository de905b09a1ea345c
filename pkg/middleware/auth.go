package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

// AuthMiddleware проверяет статический bearer-токен API.
// Ядро сервиса аутентификацию не видит: запросы доходят до него
// уже проверенными.
type AuthMiddleware struct {
	token  string
	logger *zap.Logger
}

func NewAuthMiddleware(token string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		token:  token,
		logger: logger,
	}
}

// Auth - это основная функция middleware.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(m.token)) != 1 {
			m.logger.Warn("AuthMiddleware: Недопустимый токен")
			return utils.ErrorResponse(c, apperrors.ErrInvalidToken, m.logger)
		}

		return next(c)
	}
}
