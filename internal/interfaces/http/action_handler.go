package http

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/cashbook"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/dto"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/purchases"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/reporting"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/sales"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/usecase"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/logger"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// params filtros de las lecturas; vienen en la query o en el cuerpo JSON.
type params struct {
	Action     string `json:"action"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	DateBefore string `json:"date_before"`
}

type writeAction struct {
	okMessage   string
	errorPrefix string
	run         func(ctx context.Context, body []byte) (string, error)
}

type readAction func(ctx context.Context, p params) (any, error)

type exportAction struct {
	filename    string
	contentType string
	run         func(ctx context.Context, start, end string) ([]byte, error)
}

// ActionHandler despacha /api?action=<nombre> a los casos de uso.
type ActionHandler struct {
	writes      map[string]writeAction
	reads       map[string]readAction
	exports     map[string]exportAction
	authEnabled bool
	log         *logger.Logger
}

// NewActionHandler arma las tablas de acciones a partir de las dependencias.
func NewActionHandler(deps RouterDeps) *ActionHandler {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	h := &ActionHandler{authEnabled: deps.JWTSecret != "", log: log.For("http")}

	h.writes = map[string]writeAction{
		"add_movimiento_caja": {
			okMessage:   "Movimiento de caja registrado con éxito.",
			errorPrefix: "Error al registrar movimiento de caja",
			run: func(ctx context.Context, body []byte) (string, error) {
				var in dto.CreateCashMovementRequest
				if err := json.Unmarshal(body, &in); err != nil {
					return "", errBody(err)
				}
				return deps.Cash.Record(ctx, in)
			},
		},
		"add_venta": {
			okMessage:   "Venta registrada con éxito.",
			errorPrefix: "Error al registrar venta",
			run: func(ctx context.Context, body []byte) (string, error) {
				var in dto.CreateSaleRequest
				if err := json.Unmarshal(body, &in); err != nil {
					return "", errBody(err)
				}
				sale, err := deps.Sales.RecordSale(ctx, in)
				if err != nil {
					return "", err
				}
				return sale.ID, nil
			},
		},
		"add_compra": {
			okMessage:   "Compra/Gasto registrado con éxito.",
			errorPrefix: "Error al registrar compra/gasto",
			run: func(ctx context.Context, body []byte) (string, error) {
				var in dto.CreatePurchaseRequest
				if err := json.Unmarshal(body, &in); err != nil {
					return "", errBody(err)
				}
				purchase, err := deps.Purchases.RecordPurchase(ctx, in)
				if err != nil {
					return "", err
				}
				return purchase.ID, nil
			},
		},
		"add_producto": {
			okMessage:   "Producto registrado con éxito.",
			errorPrefix: "Error al registrar producto",
			run: func(ctx context.Context, body []byte) (string, error) {
				var in dto.CreateProductRequest
				if err := json.Unmarshal(body, &in); err != nil {
					return "", errBody(err)
				}
				p, err := deps.Products.Create(ctx, in)
				if err != nil {
					return "", err
				}
				return p.ID, nil
			},
		},
	}

	r := deps.Reports
	h.reads = map[string]readAction{
		"get_products": func(ctx context.Context, _ params) (any, error) { return r.Products(ctx) },
		"get_libro_caja": func(ctx context.Context, p params) (any, error) {
			return r.CashBook(ctx, p.StartDate, p.EndDate)
		},
		"get_libro_caja_saldo_inicial": func(ctx context.Context, p params) (any, error) {
			return r.OpeningBalance(ctx, p.DateBefore)
		},
		"get_rcv_ventas": func(ctx context.Context, p params) (any, error) {
			return r.SalesRegister(ctx, p.StartDate, p.EndDate)
		},
		"get_rcv_compras": func(ctx context.Context, p params) (any, error) {
			return r.PurchaseRegister(ctx, p.StartDate, p.EndDate)
		},
		"get_saldo_caja":        func(ctx context.Context, _ params) (any, error) { return r.CashBalance(ctx) },
		"get_total_ventas_mes":  func(ctx context.Context, _ params) (any, error) { return r.MonthSales(ctx) },
		"get_monthly_cash_flow": func(ctx context.Context, _ params) (any, error) { return r.MonthlyCashFlow(ctx) },
		"get_dashboard":         func(ctx context.Context, _ params) (any, error) { return r.Dashboard(ctx) },
	}

	if deps.Export != nil {
		e := deps.Export
		h.exports = map[string]exportAction{
			"export_libro_caja":     {filename: "libro_caja.xlsx", contentType: mimeXLSX, run: e.CashBookXLSX},
			"export_libro_caja_pdf": {filename: "libro_caja.pdf", contentType: mimePDF, run: e.CashBookPDF},
			"export_rcv_ventas":     {filename: "rcv_ventas.xlsx", contentType: mimeXLSX, run: e.SalesRegisterXLSX},
			"export_rcv_compras":    {filename: "rcv_compras.xlsx", contentType: mimeXLSX, run: e.PurchaseRegisterXLSX},
		}
	}
	return h
}

// Handle resuelve la acción (query o cuerpo JSON) y la ejecuta.
// Las escrituras solo se aceptan por POST; lecturas y exportaciones por GET o POST.
func (h *ActionHandler) Handle(c *fiber.Ctx) error {
	p := params{
		Action:     c.Query("action"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		DateBefore: c.Query("date_before"),
	}
	body := bytes.TrimSpace(c.Body())
	isPost := c.Method() == fiber.MethodPost
	if isPost && len(body) > 0 {
		var fromBody params
		if err := json.Unmarshal(body, &fromBody); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ActionResponse{Success: false, Message: msgInvalidBody})
		}
		p = mergeParams(p, fromBody)
	}

	ctx := c.UserContext()
	if w, ok := h.writes[p.Action]; ok && isPost {
		return h.write(c, ctx, p.Action, w, body)
	}
	if r, ok := h.reads[p.Action]; ok {
		out, err := r(ctx, p)
		if err != nil {
			h.log.Error().Err(err).Str("op", p.Action).Msg("lectura fallida")
			return readFailure(c, err)
		}
		return c.JSON(out)
	}
	if e, ok := h.exports[p.Action]; ok {
		return h.export(c, ctx, p, e)
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ActionResponse{Success: false, Message: msgInvalidAction})
}

func (h *ActionHandler) write(c *fiber.Ctx, ctx context.Context, action string, w writeAction, body []byte) error {
	if h.authEnabled && !hasRole(c, RoleAdmin, RoleCashier) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ActionResponse{Success: false, Message: "Rol sin permiso para registrar movimientos."})
	}
	started := time.Now()
	id, err := w.run(ctx, body)
	if err != nil {
		h.log.Warn().Err(err).Str("op", action).Str("operator", GetOperator(c)).Msg("escritura rechazada")
		return writeFailure(c, w.errorPrefix, err)
	}
	h.log.Info().
		Str("op", action).
		Str("id", id).
		Str("operator", GetOperator(c)).
		Dur("elapsed", time.Since(started)).
		Msg("escritura registrada")
	return c.JSON(dto.ActionResponse{Success: true, Message: w.okMessage, ID: id})
}

func (h *ActionHandler) export(c *fiber.Ctx, ctx context.Context, p params, e exportAction) error {
	out, err := e.run(ctx, p.StartDate, p.EndDate)
	if err != nil {
		h.log.Error().Err(err).Str("op", p.Action).Msg("exportación fallida")
		return readFailure(c, err)
	}
	c.Set(fiber.HeaderContentType, e.contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+e.filename+`"`)
	return c.Send(out)
}

// mergeParams da prioridad al cuerpo JSON sobre la query.
func mergeParams(q, body params) params {
	if body.Action != "" {
		q.Action = body.Action
	}
	if body.StartDate != "" {
		q.StartDate = body.StartDate
	}
	if body.EndDate != "" {
		q.EndDate = body.EndDate
	}
	if body.DateBefore != "" {
		q.DateBefore = body.DateBefore
	}
	return q
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Cash      *cashbook.UseCase
	Sales     *sales.UseCase
	Purchases *purchases.UseCase
	Products  *usecase.ProductUseCase
	Reports   *reporting.UseCase
	Export    *reporting.Export
	JWTSecret string
	Log       *logger.Logger
}
