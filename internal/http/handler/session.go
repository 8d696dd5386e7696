package handler

import (
	"github.com/gofiber/fiber/v2"

	"docverify/internal/service"
)

type signInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type signUpRequest struct {
	Name            string `json:"name" form:"name"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

type walletRequest struct {
	Address string `json:"address" form:"address"`
}

// SignIn starts an email session.
//
// @Summary Sign in with email
// @Tags session
// @Accept json
// @Produce json
// @Param body body signInRequest true "credentials"
// @Success 200 {object} model.Session
// @Router /session/signin [post]
func SignIn(svc service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signInRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		sess, err := svc.SignIn(c.UserContext(), req.Email)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sess)
	}
}

// SignUp registers and signs in.
//
// @Summary Sign up
// @Tags session
// @Accept json
// @Produce json
// @Param body body signUpRequest true "registration"
// @Success 200 {object} model.Session
// @Failure 400 {object} errorPayload
// @Router /session/signup [post]
func SignUp(svc service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signUpRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		sess, err := svc.SignUp(c.UserContext(), req.Name, req.Email, req.Password, req.ConfirmPassword)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sess)
	}
}

// SignInWeb3 signs in with a wallet address, simulating one when none is given.
//
// @Summary Sign in with a Web3 wallet
// @Tags session
// @Accept json
// @Produce json
// @Param body body walletRequest false "wallet"
// @Success 200 {object} model.Session
// @Router /session/web3 [post]
func SignInWeb3(svc service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req walletRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
			}
		}
		sess, err := svc.SignInWeb3(c.UserContext(), req.Address)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sess)
	}
}

// ConnectWallet attaches a browser or guest wallet to the session.
//
// @Summary Connect a wallet
// @Tags session
// @Accept json
// @Produce json
// @Param body body walletRequest false "wallet"
// @Success 200 {object} model.Session
// @Router /session/wallet [post]
func ConnectWallet(svc service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req walletRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
			}
		}
		sess, err := svc.ConnectWallet(c.UserContext(), req.Address)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sess)
	}
}

// CurrentSession returns the stored session flags.
//
// @Summary Current session
// @Tags session
// @Produce json
// @Success 200 {object} model.Session
// @Router /session [get]
func CurrentSession(svc service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := svc.Current(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sess)
	}
}

// SignOut clears the session.
//
// @Summary Sign out
// @Tags session
// @Success 204
// @Router /session [delete]
func SignOut(svc service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.SignOut(c.UserContext()); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
