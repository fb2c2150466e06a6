package folder

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/select-shop-backend/internal/apperr"
	"github.com/wichananm65/select-shop-backend/internal/logging"
	"github.com/wichananm65/select-shop-backend/internal/user"
)

type Handler struct {
	service *Service
	users   *user.Service
}

func NewHandler(s *Service, users *user.Service) *Handler {
	return &Handler{service: s, users: users}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/folders", h.addFolders)
	app.Get("/api/v1/folders", h.getFolders)
}

func (h *Handler) addFolders(c *fiber.Ctx) error {
	actor, err := user.CurrentUser(c, h.users)
	if err != nil {
		return h.failActor(c, err)
	}

	payload := new(AddFoldersRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	folders, err := h.service.AddFolders(c.UserContext(), payload.FolderNames, actor)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(folders)
}

func (h *Handler) getFolders(c *fiber.Ctx) error {
	actor, err := user.CurrentUser(c, h.users)
	if err != nil {
		return h.failActor(c, err)
	}

	folders, err := h.service.GetFolders(c.UserContext(), actor)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(folders)
}

// failActor answers 401 for a missing or unknown caller and treats anything
// else as a server error.
func (h *Handler) failActor(c *fiber.Ctx, err error) error {
	if errors.Is(err, fiber.ErrUnauthorized) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return h.fail(c, err)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := apperr.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		logging.FromContext(c.UserContext()).Error("folder request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"message": err.Error()})
}
