package http

import (
	"errors"
	"time"

	pkg "tipshare/pkg/internal"
	"tipshare/pkg/internal/http/api"
	"tipshare/pkg/internal/security"
	"tipshare/pkg/internal/services"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type Server struct {
	app *fiber.App
}

func NewServer(db *gorm.DB, authority *security.TokenAuthority) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "TipShare",
		AppName:               "TipShare v" + pkg.AppVersion,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             10 * 1024 * 1024,
		ErrorHandler:          handleError,
	})

	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("HTTP request handled.")
		return err
	})

	api.MapAPIs(app, "/api", db, authority)

	return &Server{app}
}

// handleError maps the service error taxonomy onto HTTP statuses. Store and
// infrastructure failures stay generic on the wire and go to the log.
func handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, services.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		code = fiber.StatusForbidden
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInvalidOperation):
		code = fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, security.ErrInvalidToken):
		code = fiber.StatusUnauthorized
	}

	if code == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("An error occurred when handling request...")
		return c.Status(code).JSON(fiber.Map{"message": "internal server error"})
	}

	return c.Status(code).JSON(fiber.Map{"message": err.Error()})
}

func (v *Server) App() *fiber.App {
	return v.app
}

func (v *Server) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}
