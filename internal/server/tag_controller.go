package server

import (
	"github.com/alexanderramin/pinboard/internal/dto"
	"github.com/alexanderramin/pinboard/internal/service"
	"github.com/gofiber/fiber/v2"
)

type tagController struct {
	tags service.TagService
}

func newTagController(tags service.TagService) *tagController {
	return &tagController{tags: tags}
}

func (tc *tagController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tags")
	h.Get("", tc.List)
	h.Post("", tc.Create)
	h.Delete("/:id", tc.Delete)
}

func (tc *tagController) List(c *fiber.Ctx) error {
	tags, err := tc.tags.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse("Success list tags", dto.ToTagResponses(tags)))
}

func (tc *tagController) Create(c *fiber.Ctx) error {
	var req dto.CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed body")
	}
	if err := validateRequest(req); err != nil {
		return err
	}

	t := req.ToDomain()
	if err := tc.tags.Create(c.UserContext(), t); err != nil {
		return err
	}
	res := dto.SuccessResponse("Success create tag", dto.ToTagResponse(*t))
	res.Code = fiber.StatusCreated
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (tc *tagController) Delete(c *fiber.Ctx) error {
	if err := tc.tags.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse[any]("Success delete tag", nil))
}
