package routes

import (
	"errors"
	"strings"
	"time"

	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/gpx"
	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/route"
	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/weather"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		doc, err := gpx.ParseBytes(c.Body())
		if err != nil {
			return httpError(err)
		}
		name := strings.TrimSpace(c.Query("name", doc.Name))
		if name == "" {
			name = "Untitled route"
		}
		created, err := svc.CreateRoute(c.Context(), Route{
			Name:    name,
			OwnerID: userID(c),
			Points:  doc.Points,
		})
		if err != nil {
			return httpError(err)
		}
		created.Points = nil
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		list, err := svc.ListRoutes(c.Context(), userID(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(list)
	})

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		rt, err := svc.OwnedRoute(c.Context(), c.Params("id"), userID(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(rt)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.DeleteRoute(c.Context(), c.Params("id"), userID(c)); err != nil {
			return httpError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/:id/gradient", authMiddleware, func(c *fiber.Ctx) error {
		rt, err := svc.OwnedRoute(c.Context(), c.Params("id"), userID(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(svc.analyzer.GradientSegments(rt.Points))
	})

	r.Get("/:id/climbs", authMiddleware, func(c *fiber.Ctx) error {
		minGain := c.QueryFloat("min_gain", svc.analyzer.Config().Climb.MinChangeM)
		if minGain < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "min_gain must not be negative")
		}
		rt, err := svc.OwnedRoute(c.Context(), c.Params("id"), userID(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(svc.analyzer.ClimbsWithMinGain(rt.Points, minGain))
	})

	r.Get("/:id/descents", authMiddleware, func(c *fiber.Ctx) error {
		minDrop := c.QueryFloat("min_drop", svc.analyzer.Config().Descent.MinChangeM)
		if minDrop < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "min_drop must not be negative")
		}
		rt, err := svc.OwnedRoute(c.Context(), c.Params("id"), userID(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(svc.analyzer.DescentsWithMinDrop(rt.Points, minDrop))
	})

	r.Get("/:id/profile", authMiddleware, func(c *fiber.Ctx) error {
		rt, err := svc.OwnedRoute(c.Context(), c.Params("id"), userID(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(svc.analyzer.Profile(rt.Points))
	})

	r.Get("/:id/wind", authMiddleware, func(c *fiber.Ctx) error {
		date, err := parseDate(c.Query("date"))
		if err != nil {
			return err
		}
		count, err := sampleCount(c, svc.windSamples)
		if err != nil {
			return err
		}
		report, err := svc.RouteWind(c.Context(), c.Params("id"), userID(c), date, count)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(report)
	})
}

// RegisterAnalysisRoutes exposes stateless analysis of tracks posted as JSON.
func RegisterAnalysisRoutes(r fiber.Router, svc *Service) {
	r.Post("/profile", func(c *fiber.Ctx) error {
		var body struct {
			Points []route.TrackPoint `json:"points"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(svc.analyzer.Profile(body.Points))
	})

	r.Post("/wind", func(c *fiber.Ctx) error {
		var body struct {
			Points  []route.TrackPoint    `json:"points"`
			Wind    []route.RawWindSample `json:"wind"`
			Date    string                `json:"date"`
			Samples int                   `json:"samples"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		date, err := parseDate(body.Date)
		if err != nil {
			return err
		}
		if len(body.Wind) > 0 {
			return c.JSON(svc.windReport(body.Wind, body.Points, date))
		}
		if body.Samples < 0 || body.Samples > maxWindSamples {
			return fiber.NewError(fiber.StatusBadRequest, "samples out of range")
		}
		report, err := svc.Wind(c.Context(), body.Points, date, body.Samples)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(report)
	})
}

func httpError(err error) error {
	var parseErr *gpx.ParseError
	var netErr *weather.NetworkError
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "route not found")
	case errors.Is(err, ErrUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, gpx.ErrNoPoints), errors.As(err, &parseErr):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &netErr):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return date, nil
}

func sampleCount(c *fiber.Ctx, def int) (int, error) {
	count := c.QueryInt("samples", def)
	if count < 1 || count > maxWindSamples {
		return 0, fiber.NewError(fiber.StatusBadRequest, "samples out of range")
	}
	return count, nil
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
