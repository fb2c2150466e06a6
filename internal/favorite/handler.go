package favorite

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/select-shop-backend/internal/apperr"
	"github.com/wichananm65/select-shop-backend/internal/logging"
	"github.com/wichananm65/select-shop-backend/internal/product"
	"github.com/wichananm65/select-shop-backend/internal/user"
)

const (
	defaultPageSize = 10
	defaultSortBy   = "id"
)

// Handler exposes the favorites service over HTTP. All routes require a
// token; the JWT middleware is installed by the caller.
type Handler struct {
	service *Service
	users   *user.Service
}

func NewHandler(s *Service, users *user.Service) *Handler {
	return &Handler{service: s, users: users}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products", h.createProduct)
	app.Get("/api/v1/products", h.getProducts)
	app.Put("/api/v1/products/:id<int>", h.updatePrice)
	app.Put("/api/v1/products/:id<int>/item", h.updateFromItem)
	app.Post("/api/v1/products/:productId<int>/folder", h.addToFolder)
	app.Get("/api/v1/folders/:folderId<int>/products", h.getProductsInFolder)
}

type myPriceRequest struct {
	MyPrice int `json:"myprice"`
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	actor, err := user.CurrentUser(c, h.users)
	if err != nil {
		return h.failActor(c, err)
	}

	payload := new(product.CreateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	view, err := h.service.CreateProduct(c.UserContext(), *payload, actor)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// updatePrice does not compare the product owner with the caller; see
// Service.UpdatePrice.
func (h *Handler) updatePrice(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	payload := new(myPriceRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	view, err := h.service.UpdatePrice(c.UserContext(), id, payload.MyPrice)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(view)
}

// updateFromItem accepts refreshed lookup data. It is reserved for ADMIN
// accounts used by the price refresh job.
func (h *Handler) updateFromItem(c *fiber.Ctx) error {
	actor, err := user.CurrentUser(c, h.users)
	if err != nil {
		return h.failActor(c, err)
	}
	if !actor.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	payload := new(product.ItemData)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.UpdateFromItem(c.UserContext(), id, *payload); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	actor, err := user.CurrentUser(c, h.users)
	if err != nil {
		return h.failActor(c, err)
	}

	page, size, sortBy, isAsc := pageParams(c)
	result, err := h.service.ListProducts(c.UserContext(), actor, page, size, sortBy, isAsc)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

func (h *Handler) addToFolder(c *fiber.Ctx) error {
	actor, err := user.CurrentUser(c, h.users)
	if err != nil {
		return h.failActor(c, err)
	}

	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	folderID, err := strconv.Atoi(c.Query("folderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid folderId"})
	}

	if err := h.service.AddToFolder(c.UserContext(), productID, folderID, actor); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"productId": productID, "folderId": folderID})
}

func (h *Handler) getProductsInFolder(c *fiber.Ctx) error {
	actor, err := user.CurrentUser(c, h.users)
	if err != nil {
		return h.failActor(c, err)
	}

	folderID, err := strconv.Atoi(c.Params("folderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	page, size, sortBy, isAsc := pageParams(c)
	result, err := h.service.ListProductsInFolder(c.UserContext(), folderID, page, size, sortBy, isAsc, actor)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

// pageParams reads the listing query. page is 1-based on the wire.
func pageParams(c *fiber.Ctx) (page, size int, sortBy string, isAsc bool) {
	page = c.QueryInt("page", 1) - 1
	size = c.QueryInt("size", defaultPageSize)
	sortBy = c.Query("sortBy", defaultSortBy)
	isAsc = c.QueryBool("isAsc", false)
	return page, size, sortBy, isAsc
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
		logging.FromContext(c.UserContext()).Error("favorite request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"message": err.Error()})
}
