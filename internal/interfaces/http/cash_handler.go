package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigma-caixa-api/internal/application/dto"
	"github.com/jhoicas/sigma-caixa-api/internal/application/ledger"
)

const movementNotFoundMsg = "Movimentação não encontrada"

// CashHandler maneja el libro de caja (protegido).
type CashHandler struct {
	uc        *ledger.CashUseCase
	statement *ledger.StatementUseCase
}

// NewCashHandler construye el handler. statement puede ser nil si no hay generador de PDF.
func NewCashHandler(uc *ledger.CashUseCase, statement *ledger.StatementUseCase) *CashHandler {
	return &CashHandler{uc: uc, statement: statement}
}

// Create godoc
// @Summary      Registrar movimiento de caja
// @Tags         caixa
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCashMovementRequest  true  "produto_id, quantidade, tipo, valor_total"
// @Success      201   {object}  dto.CashMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /caixa/movimentacao [post]
func (h *CashHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCashMovementRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, movementNotFoundMsg)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos con totales
// @Tags         caixa
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashReportResponse
// @Router       /caixa [get]
func (h *CashHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err, movementNotFoundMsg)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         caixa
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.CashMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /caixa/movimentacao/{id} [get]
func (h *CashHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, movementNotFoundMsg)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar movimiento
// @Description  produto_id vacío desvincula el movimiento; uno distinto vuelve a copiar el nombre del producto.
// @Tags         caixa
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.UpdateCashMovementRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CashMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /caixa/movimentacao/{id} [put]
func (h *CashHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCashMovementRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, movementNotFoundMsg)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         caixa
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /caixa/movimentacao/{id} [delete]
func (h *CashHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, movementNotFoundMsg)
	}
	return c.JSON(dto.MessageResponse{Message: "Movimentação removida com sucesso"})
}

// Statement godoc
// @Summary      Extracto de caja en PDF
// @Tags         caixa
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /caixa/relatorio [get]
func (h *CashHandler) Statement(c *fiber.Ctx) error {
	if h.statement == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PDF_UNAVAILABLE", Message: "generador de PDF no configurado"})
	}
	doc, err := h.statement.Generate(c.UserContext())
	if err != nil {
		return respondError(c, err, movementNotFoundMsg)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="extrato-caixa.pdf"`)
	return c.Send(doc)
}
