package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelancehub-backend/internal/http/middleware"
	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/dto"
	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/response"
	"github.com/ignatzorin/freelancehub-backend/internal/usecase/payment"
)

type PaymentHandler struct {
	createUC *payment.CreatePaymentUseCase
	getUC    *payment.GetPaymentForJobUseCase
}

func NewPaymentHandler(createUC *payment.CreatePaymentUseCase, getUC *payment.GetPaymentForJobUseCase) *PaymentHandler {
	return &PaymentHandler{createUC: createUC, getUC: getUC}
}

// Create проводит mock оплату заказа. Тело запроса необязательно.
func (h *PaymentHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	jobID, err := middleware.ParamUUID(c, "jobId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreatePaymentRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindError(c, err)
			return
		}
	}

	p, err := h.createUC.Execute(c.Request.Context(), payment.CreatePaymentInput{
		JobID:        jobID,
		Caller:       identity,
		Amount:       req.Amount,
		ReceiptEmail: req.ReceiptEmail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.PaymentCreatedResponse{
		Message: "Payment completed",
		Payment: dto.ToPaymentResponse(p),
	})
}

func (h *PaymentHandler) GetForJob(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	jobID, err := middleware.ParamUUID(c, "jobId")
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.getUC.Execute(c.Request.Context(), jobID, identity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPaymentResponse(p))
}
