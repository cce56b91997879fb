package server

import (
	"github.com/alexanderramin/pinboard/internal/dto"
	"github.com/alexanderramin/pinboard/internal/service"
	"github.com/gofiber/fiber/v2"
)

type noteController struct {
	notes service.NoteService
}

func newNoteController(notes service.NoteService) *noteController {
	return &noteController{notes: notes}
}

func (nc *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Get("", nc.List)
	h.Post("", nc.Create)
	h.Get("/:id", nc.Show)
	h.Patch("/:id", nc.Update)
	h.Put("/:id/position", nc.Move)
	h.Delete("/:id", nc.Delete)
}

func (nc *noteController) List(c *fiber.Ctx) error {
	notes, err := nc.notes.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse("Success list notes", dto.ToNoteResponses(notes)))
}

func (nc *noteController) Create(c *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed body")
	}
	if err := validateRequest(req); err != nil {
		return err
	}

	n := req.ToDomain()
	if err := nc.notes.Create(c.UserContext(), n); err != nil {
		return err
	}
	res := dto.SuccessResponse("Success create note", dto.ToNoteResponse(n))
	res.Code = fiber.StatusCreated
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (nc *noteController) Show(c *fiber.Ctx) error {
	n, err := nc.notes.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse("Success show note", dto.ToNoteResponse(n)))
}

func (nc *noteController) Update(c *fiber.Ctx) error {
	var req dto.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed body")
	}
	if err := validateRequest(req); err != nil {
		return err
	}

	n, err := nc.notes.Update(c.UserContext(), c.Params("id"), req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse("Success update note", dto.ToNoteResponse(n)))
}

func (nc *noteController) Move(c *fiber.Ctx) error {
	var req dto.MoveNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed body")
	}
	if err := validateRequest(req); err != nil {
		return err
	}

	n, err := nc.notes.UpdatePosition(c.UserContext(), c.Params("id"), *req.X, *req.Y)
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse("Success move note", dto.ToNoteResponse(n)))
}

func (nc *noteController) Delete(c *fiber.Ctx) error {
	if err := nc.notes.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse[any]("Success delete note", nil))
}
