package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/application/usecase"
)

// ReviewHandler maneja creación, listados y moderación de reseñas.
type ReviewHandler struct {
	uc *usecase.ReviewUseCase
}

// NewReviewHandler construye el handler.
func NewReviewHandler(uc *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// Create godoc
// @Summary      Reseñar un hospital
// @Description  Una reseña por par (paciente, hospital). Nace aprobada y recalcula el averageRating.
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReviewRequest  true  "hospitalId, rating 1-5, comment"
// @Success      201  {object}  dto.APIResponse{data=dto.ReviewResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReviewRequest
	if err := dto.Decode(c.Body(), &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateReview(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusCreated, out, "Review submitted successfully")
}

// ListHospital GET /api/reviews/hospital/:hospitalId (solo aprobadas)
func (h *ReviewHandler) ListHospital(c *fiber.Ctx) error {
	out, err := h.uc.ListHospitalReviews(c.UserContext(), c.Params("hospitalId"))
	if err != nil {
		return respondError(c, err)
	}
	return okList(c, out)
}

// ListMine GET /api/reviews/my-reviews
func (h *ReviewHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMyReviews(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return okList(c, out)
}

// ListAll GET /api/reviews (admin)
func (h *ReviewHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return okList(c, out)
}

// ToggleApproval PATCH /api/reviews/:reviewId/approval
func (h *ReviewHandler) ToggleApproval(c *fiber.Ctx) error {
	out, err := h.uc.ToggleApproval(c.UserContext(), c.Params("reviewId"))
	if err != nil {
		return respondError(c, err)
	}
	msg := "Review unapproved"
	if out.IsApproved {
		msg = "Review approved"
	}
	return ok(c, fiber.StatusOK, out, msg)
}

// Delete DELETE /api/reviews/:reviewId
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteReview(c.UserContext(), c.Params("reviewId")); err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, nil, "Review deleted successfully")
}
