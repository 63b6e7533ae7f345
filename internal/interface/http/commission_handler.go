package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/application"
	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	"github.com/oksasatya/auction-marketplace/pkg/helpers"
	"github.com/oksasatya/auction-marketplace/pkg/response"
)

type CommissionHandler struct {
	Svc    *application.CommissionService
	Logger *logrus.Logger
}

func NewCommissionHandler(svc *application.CommissionService, logger *logrus.Logger) *CommissionHandler {
	return &CommissionHandler{Svc: svc, Logger: logger}
}

type submitProofRequest struct {
	Amount  int64  `form:"amount"`
	Comment string `form:"comment" binding:"max=500"`
}

type proofStatusRequest struct {
	Status string `json:"status" binding:"required,proofstatus"`
	Amount int64  `json:"amount" binding:"gte=0"`
}

// SubmitProof handles POST /commission/proof (multipart with proof image).
func (h *CommissionHandler) SubmitProof(c *gin.Context) {
	var req submitProofRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, h.Logger, "SubmitProof", err)
		return
	}
	img, closer, err := formImage(c, "proof")
	if err != nil {
		bindError(c, h.Logger, "SubmitProof", err)
		return
	}
	defer func() { _ = closer.Close() }()

	p, err := h.Svc.SubmitProof(c.Request.Context(), c.GetString("userID"), req.Amount, req.Comment, img)
	if err != nil {
		writeError(c, h.Logger, "SubmitProof", err)
		return
	}
	response.Success(c, http.StatusCreated, toProof(p), "payment proof submitted, awaiting review", nil)
}

func (h *CommissionHandler) MyProofs(c *gin.Context) {
	list, err := h.Svc.ListMine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, "MyProofs", err)
		return
	}
	response.Success(c, http.StatusOK, toProofs(list), "payment proofs", gin.H{"count": len(list)})
}

func (h *CommissionHandler) AllProofs(c *gin.Context) {
	list, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, "AllProofs", err)
		return
	}
	response.Success(c, http.StatusOK, toProofs(list), "payment proofs", gin.H{"count": len(list)})
}

// UpdateStatus handles PUT /superadmin/paymentproof/status/:id.
func (h *CommissionHandler) UpdateStatus(c *gin.Context) {
	var req proofStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.Logger, "UpdateProofStatus", err)
		return
	}
	p, err := h.Svc.UpdateProofStatus(c.Request.Context(), c.Param("id"), entity.ProofStatus(req.Status), req.Amount)
	if err != nil {
		writeError(c, h.Logger, "UpdateProofStatus", err)
		return
	}
	if h.Logger != nil {
		helpers.LogInfo(h.Logger, "payment proof reviewed", logrus.Fields{
			"proof_id": p.ID,
			"status":   p.Status,
			"admin_id": c.GetString("userID"),
		})
	}
	response.Success(c, http.StatusOK, toProof(p), "payment proof "+string(p.Status), nil)
}
