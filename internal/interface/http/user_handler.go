package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/application"
	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	"github.com/oksasatya/auction-marketplace/pkg/helpers"
	"github.com/oksasatya/auction-marketplace/pkg/response"
)

type UserHandler struct {
	Svc     *application.UserService
	Board   *application.LeaderboardService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewUserHandler(svc *application.UserService, lb *application.LeaderboardService, cookies *helpers.Manager, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Board: lb, Cookies: cookies, Logger: logger}
}

type registerRequest struct {
	UserName string `form:"userName" binding:"required,min=3,max=40"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,pwd"`
	Phone    string `form:"phone" binding:"required,phone"`
	Address  string `form:"address" binding:"required"`
	Role     string `form:"role" binding:"required,role"`

	BankAccountNumber      string `form:"bankAccountNumber"`
	BankAccountName        string `form:"bankAccountName"`
	BankName               string `form:"bankName"`
	EasypaisaAccountNumber string `form:"easypaisaAccountNumber"`
	PaypalEmail            string `form:"paypalEmail" binding:"omitempty,email"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,role"`
}

// Register handles POST /user/register (multipart with profileImage).
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, h.Logger, "Register", err)
		return
	}
	img, closer, err := formImage(c, "profileImage")
	if err != nil {
		bindError(c, h.Logger, "Register", err)
		return
	}
	defer func() { _ = closer.Close() }()

	sess, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     entity.Role(req.Role),
		PaymentMethods: entity.PaymentMethods{
			BankAccountNumber:      req.BankAccountNumber,
			BankAccountName:        req.BankAccountName,
			BankName:               req.BankName,
			EasypaisaAccountNumber: req.EasypaisaAccountNumber,
			PaypalEmail:            req.PaypalEmail,
		},
		ProfileImage: img,
	})
	if err != nil {
		writeError(c, h.Logger, "Register", err)
		return
	}
	h.Cookies.SetToken(c, sess.Token)
	response.Success(c, http.StatusCreated, toUser(sess.User), "user registered", gin.H{"expires_at": sess.ExpiresAt})
}

// Login handles POST /user/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.Logger, "Login", err)
		return
	}
	sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, entity.Role(req.Role))
	if err != nil {
		writeError(c, h.Logger, "Login", err)
		return
	}
	h.Cookies.SetToken(c, sess.Token)
	response.Success(c, http.StatusOK, toUser(sess.User), "login successful", gin.H{"expires_at": sess.ExpiresAt})
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString("userID"))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, "Me", err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "profile", nil)
}

// Leaderboard handles GET /user/leaderboard?limit=.
func (h *UserHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	board, err := h.Board.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		writeError(c, h.Logger, "Leaderboard", err)
		return
	}
	response.Success(c, http.StatusOK, board, "leaderboard", gin.H{"count": len(board)})
}

// Standing handles GET /user/:id/standing.
func (h *UserHandler) Standing(c *gin.Context) {
	st, err := h.Board.Recompute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, "Standing", err)
		return
	}
	response.Success(c, http.StatusOK, st, "standing", nil)
}
